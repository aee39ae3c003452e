package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/logger"
)

// SeedFromFile bootstraps an empty store from a JSON file containing an
// array of solved-problem records. A non-empty store is left untouched.
func (s *Service) SeedFromFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if s.store.Count(ctx) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var records []model.SolvedProblem
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	n, err := s.store.ImportBatch(ctx, records, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	s.logger.Info(ctx, "seeded store",
		logger.String("path", path),
		logger.Int("records", n),
	)
	return nil
}
