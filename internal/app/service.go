// Package service provides the core business service that implements
// the dependencies required by the HTTP API: judge imports, stored-problem
// CRUD, and heatmap aggregation.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/internal/adapters/judge/atcoder"
	"github.com/okian/solvemap/internal/adapters/judge/codeforces"
	"github.com/okian/solvemap/internal/adapters/repository"
	"github.com/okian/solvemap/internal/domain/heatmap"
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/logger"
	"github.com/okian/solvemap/pkg/metrics"
)

// Service implements the API dependencies for the solved-problem tracker.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	registry *judge.Registry

	// Import state machine; guarded by mu. The adapter call itself runs
	// without the lock held.
	imp importSession

	// Configuration
	httpTimeout time.Duration
	now         func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRegistry sets the judge adapter registry.
func WithRegistry(registry *judge.Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for default heatmap windows, mainly
// for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHTTPTimeout bounds judge fetches when the default adapters are built
// by the service. Zero means no timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout >= 0 {
			s.httpTimeout = timeout
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now:         time.Now,
		httpTimeout: 0, // callers bound latency via ctx by default
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components not provided via options.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.registry == nil {
		client := newHTTPClient(s.httpTimeout)
		s.registry = judge.NewRegistry(
			codeforces.New(codeforces.WithHTTPClient(client)),
			atcoder.New(atcoder.WithHTTPClient(client)),
		)
	}

	s.started = true
	s.logger.Info(ctx, "tracker service started",
		logger.Any("judges", s.registry.Names()),
		logger.Int("records", s.store.Count(ctx)),
	)
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		_ = s.store.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "tracker service stopped")
}

// newHTTPClient builds the shared client for judge fetches. A zero timeout
// means unbounded; callers then bound latency through ctx.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return http.DefaultClient
	}
	return &http.Client{Timeout: timeout}
}

// Judges returns the registered judge names.
func (s *Service) Judges() []string {
	return s.registry.Names()
}

// Problems returns all stored records.
func (s *Service) Problems(ctx context.Context) ([]model.StoredProblem, error) {
	out, err := s.store.GetAll(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return out, nil
}

// AddProblem inserts one manually entered record.
func (s *Service) AddProblem(ctx context.Context, p model.SolvedProblem) (int64, error) {
	id, err := s.store.Add(ctx, p)
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return id, nil
}

// UpdateProblem applies a partial update to a stored record.
func (s *Service) UpdateProblem(ctx context.Context, id int64, patch model.ProblemPatch) error {
	err := s.store.Update(ctx, id, patch)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	metrics.RecordStoreError()
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// DeleteProblem removes a stored record.
func (s *Service) DeleteProblem(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	metrics.RecordStoreError()
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// ClearProblems removes all stored records.
func (s *Service) ClearProblems(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

// Heatmap aggregates the full record set into a calendar grid.
func (s *Service) Heatmap(ctx context.Context, mode heatmap.Mode, start, end time.Time) (heatmap.Grid, error) {
	stored, err := s.store.GetAll(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return heatmap.Grid{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	records := make([]model.SolvedProblem, len(stored))
	for i, p := range stored {
		records[i] = p.SolvedProblem
	}

	begin := time.Now()
	grid := heatmap.Aggregate(records, start, end, mode)
	metrics.RecordHeatmapBuild(float64(time.Since(begin).Microseconds()) / 1000.0)
	return grid, nil
}

// DefaultWindow returns the default heatmap window: the first of the month
// eleven months back, through today.
func (s *Service) DefaultWindow() (start, end time.Time) {
	now := s.now()
	start = time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, now.Location())
	return start, now
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"import_state": s.imp.state.String(),
	}
	if s.started {
		stats["judges"] = s.registry.Names()
		stats["records"] = s.store.Count(ctx)
		if s.imp.state == StateFetchedPreview {
			stats["pending_records"] = len(s.imp.preview)
		}
	}
	return stats
}
