// Package repository defines the solved-problem store interface and errors.
package repository

import (
	"context"

	"github.com/okian/solvemap/internal/domain/model"
)

// Store provides read/write access to persisted solved-problem records.
// Records are keyed by a store-assigned auto-increment id and carry an
// ingestion timestamp. Each call is atomic: a failed bulk operation leaves
// no partial writes behind.
type Store interface {
	// GetAll returns every stored record ordered by id.
	GetAll(ctx context.Context) ([]model.StoredProblem, error)

	// Add inserts one record and returns its assigned id.
	Add(ctx context.Context, p model.SolvedProblem) (int64, error)

	// AddBatch bulk-inserts records and returns the inserted count.
	AddBatch(ctx context.Context, ps []model.SolvedProblem) (int, error)

	// Update applies a partial update to the record with the given id and
	// refreshes its ingestion timestamp. Returns ErrNotFound for unknown ids.
	Update(ctx context.Context, id int64, patch model.ProblemPatch) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Count returns the number of stored records.
	Count(ctx context.Context) int

	// ImportBatch clears the store first when clearExisting is set, then
	// bulk-inserts records, returning the inserted count. All or nothing.
	ImportBatch(ctx context.Context, ps []model.SolvedProblem, clearExisting bool) (int, error)

	// Close releases store resources.
	Close() error
}
