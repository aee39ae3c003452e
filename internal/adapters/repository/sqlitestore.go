package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS problems (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	problem_url   TEXT    NOT NULL,
	difficulty    TEXT    NOT NULL DEFAULT '',
	solution_note TEXT    NOT NULL DEFAULT '',
	tags          TEXT    NOT NULL DEFAULT '',
	solved_at     TEXT    NOT NULL,
	synced_at     INTEGER NOT NULL
);`

// SQLiteStore is the sqlite-backed Store implementation. The single-table
// schema is created on open; bulk operations run in one transaction.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// SQLiteOption applies a configuration option to the SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteClock overrides the clock used to stamp SyncedAt.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure sqlite schema: %w", err)
	}
	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SQLiteStore) syncedAt() int64 {
	return s.now().UnixMilli()
}

// GetAll returns every stored record ordered by id.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]model.StoredProblem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, problem_url, difficulty, solution_note, tags, solved_at, synced_at
		 FROM problems ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var out []model.StoredProblem
	for rows.Next() {
		var p model.StoredProblem
		if err := rows.Scan(&p.ID, &p.ProblemURL, &p.Difficulty, &p.SolutionNote,
			&p.Tags, &p.SolvedAt, &p.SyncedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	return out, nil
}

// Add inserts one record and returns its assigned id.
func (s *SQLiteStore) Add(ctx context.Context, p model.SolvedProblem) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO problems (problem_url, difficulty, solution_note, tags, solved_at, synced_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ProblemURL, p.Difficulty, p.SolutionNote, p.Tags, p.SolvedAt, s.syncedAt())
	if err != nil {
		return 0, fmt.Errorf("insert problem: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert problem: %w", err)
	}
	metrics.UpdateStoreRecords(s.Count(ctx))
	return id, nil
}

// AddBatch bulk-inserts records in one transaction.
func (s *SQLiteStore) AddBatch(ctx context.Context, ps []model.SolvedProblem) (int, error) {
	return s.ImportBatch(ctx, ps, false)
}

// Update applies a partial update and refreshes the ingestion timestamp.
func (s *SQLiteStore) Update(ctx context.Context, id int64, patch model.ProblemPatch) error {
	sets := []string{"synced_at = ?"}
	args := []any{s.syncedAt()}
	if patch.Difficulty != nil {
		sets = append(sets, "difficulty = ?")
		args = append(args, *patch.Difficulty)
	}
	if patch.SolutionNote != nil {
		sets = append(sets, "solution_note = ?")
		args = append(args, *patch.SolutionNote)
	}
	if patch.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *patch.Tags)
	}
	if patch.SolvedAt != nil {
		sets = append(sets, "solved_at = ?")
		args = append(args, *patch.SolvedAt)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE problems SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record with the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM problems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	metrics.UpdateStoreRecords(s.Count(ctx))
	return nil
}

// Clear removes all records.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM problems"); err != nil {
		return fmt.Errorf("clear problems: %w", err)
	}
	metrics.UpdateStoreRecords(0)
	return nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM problems").Scan(&n); err != nil {
		return 0
	}
	return n
}

// ImportBatch clears first when flagged, then bulk-inserts, in a single
// transaction so a mid-batch failure rolls everything back.
func (s *SQLiteStore) ImportBatch(ctx context.Context, ps []model.SolvedProblem, clearExisting bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if clearExisting {
		if _, err := tx.ExecContext(ctx, "DELETE FROM problems"); err != nil {
			return 0, fmt.Errorf("clear problems: %w", err)
		}
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO problems (problem_url, difficulty, solution_note, tags, solved_at, synced_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	syncedAt := s.syncedAt()
	for _, p := range ps {
		if _, err := stmt.ExecContext(ctx, p.ProblemURL, p.Difficulty,
			p.SolutionNote, p.Tags, p.SolvedAt, syncedAt); err != nil {
			return 0, fmt.Errorf("import problem: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	metrics.UpdateStoreRecords(s.Count(ctx))
	return len(ps), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
