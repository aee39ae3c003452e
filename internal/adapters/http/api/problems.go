// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/solvemap/internal/domain/model"
)

// ProblemsHandler handles stored-problem CRUD requests.
type ProblemsHandler struct {
	deps ProblemDependencies
}

// NewProblemsHandler creates a new problems handler.
func NewProblemsHandler(deps ProblemDependencies) *ProblemsHandler {
	return &ProblemsHandler{deps: deps}
}

// addProblemRequest is the body of POST /api/problems.
type addProblemRequest struct {
	ProblemURL   string `json:"problem_url"`
	Difficulty   string `json:"difficulty"`
	SolutionNote string `json:"solution_note"`
	Tags         string `json:"tags"`
	SolvedAt     string `json:"solved_at"`
}

func (r addProblemRequest) validate() error {
	if strings.TrimSpace(r.ProblemURL) == "" {
		return errors.New("missing problem_url")
	}
	if strings.TrimSpace(r.SolvedAt) == "" {
		return errors.New("missing solved_at")
	}
	return nil
}

type addProblemResponse struct {
	ID int64 `json:"id"`
}

// HandleProblems handles GET, POST, and DELETE on /api/problems.
func (h *ProblemsHandler) HandleProblems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		problems, err := h.deps.Problems(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if problems == nil {
			problems = []model.StoredProblem{}
		}
		writeJSON(w, http.StatusOK, problems)

	case http.MethodPost:
		var req addProblemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err)
			return
		}
		id, err := h.deps.AddProblem(r.Context(), model.SolvedProblem{
			ProblemURL:   req.ProblemURL,
			Difficulty:   req.Difficulty,
			SolutionNote: req.SolutionNote,
			Tags:         req.Tags,
			SolvedAt:     req.SolvedAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, addProblemResponse{ID: id})

	case http.MethodDelete:
		if err := h.deps.ClearProblems(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})

	default:
		http.NotFound(w, r)
	}
}

// HandleProblemByID handles PATCH and DELETE on /api/problems/{id}.
func (h *ProblemsHandler) HandleProblemByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/problems/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var patch model.ProblemPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if err := h.deps.UpdateProblem(r.Context(), id, patch); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})

	case http.MethodDelete:
		if err := h.deps.DeleteProblem(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		http.NotFound(w, r)
	}
}
