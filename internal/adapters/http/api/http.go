// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/internal/adapters/repository"
	service "github.com/okian/solvemap/internal/app"
	"github.com/okian/solvemap/internal/domain/heatmap"
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProblemDependencies
	ImportDependencies
	HeatmapDependencies
}

// ProblemDependencies covers the stored-problem CRUD surface.
type ProblemDependencies interface {
	Problems(ctx context.Context) ([]model.StoredProblem, error)
	AddProblem(ctx context.Context, p model.SolvedProblem) (int64, error)
	UpdateProblem(ctx context.Context, id int64, patch model.ProblemPatch) error
	DeleteProblem(ctx context.Context, id int64) error
	ClearProblems(ctx context.Context) error
}

// ImportDependencies covers the two-phase judge import flow.
type ImportDependencies interface {
	StartImport(ctx context.Context, judgeName, handle string) (types.ImportStatus, error)
	ConfirmImport(ctx context.Context, clearExisting bool) (int, error)
	SelectJudge(judgeName string) (types.ImportStatus, error)
	ImportStatus() types.ImportStatus
	Judges() []string
}

// HeatmapDependencies covers the calendar aggregation read path.
type HeatmapDependencies interface {
	Heatmap(ctx context.Context, mode heatmap.Mode, start, end time.Time) (heatmap.Grid, error)
	DefaultWindow() (start, end time.Time)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	problemsHandler *ProblemsHandler
	importHandler   *ImportHandler
	heatmapHandler  *HeatmapHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		problemsHandler: NewProblemsHandler(deps),
		importHandler:   NewImportHandler(deps),
		heatmapHandler:  NewHeatmapHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/problems", MetricsMiddleware(s.problemsHandler.HandleProblems, "problems"))
	mux.HandleFunc("/api/problems/", MetricsMiddleware(s.problemsHandler.HandleProblemByID, "problem"))
	mux.HandleFunc("/api/import", MetricsMiddleware(s.importHandler.HandleFetch, "import"))
	mux.HandleFunc("/api/import/confirm", MetricsMiddleware(s.importHandler.HandleConfirm, "import_confirm"))
	mux.HandleFunc("/api/import/judge", MetricsMiddleware(s.importHandler.HandleSelectJudge, "import_judge"))
	mux.HandleFunc("/api/import/status", MetricsMiddleware(s.importHandler.HandleStatus, "import_status"))
	mux.HandleFunc("/api/heatmap", MetricsMiddleware(s.heatmapHandler.HandleGetHeatmap, "heatmap"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer sentinel errors into HTTP
// shapes. This is the only place that mapping lives.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, judge.ErrUnknownJudge):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, service.ErrFetch):
		writeError(w, http.StatusBadGateway, "fetch_error", err)
	case errors.Is(err, service.ErrImportBusy), errors.Is(err, service.ErrNoPreview):
		writeError(w, http.StatusConflict, "import_conflict", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrStore):
		writeError(w, http.StatusInternalServerError, "store_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
