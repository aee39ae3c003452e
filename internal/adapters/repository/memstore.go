package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/metrics"
)

// MemoryStore is the in-memory Store implementation: a mutex-protected map
// keyed by an auto-increment id. The zero value is not usable; construct
// with NewMemoryStore.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[int64]model.StoredProblem
	nextID int64
	closed bool
	now    func() time.Time
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the clock used to stamp SyncedAt, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:   make(map[int64]model.StoredProblem),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) syncedAt() int64 {
	return s.now().UnixMilli()
}

// GetAll returns every stored record ordered by id.
func (s *MemoryStore) GetAll(ctx context.Context) ([]model.StoredProblem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]model.StoredProblem, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Add inserts one record and returns its assigned id.
func (s *MemoryStore) Add(ctx context.Context, p model.SolvedProblem) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	id := s.insertLocked(p)
	metrics.UpdateStoreRecords(len(s.byID))
	return id, nil
}

// AddBatch bulk-inserts records and returns the inserted count.
func (s *MemoryStore) AddBatch(ctx context.Context, ps []model.SolvedProblem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	for _, p := range ps {
		s.insertLocked(p)
	}
	metrics.UpdateStoreRecords(len(s.byID))
	return len(ps), nil
}

// insertLocked assigns the next id and stamps the ingestion time.
// Must be called with s.mu held.
func (s *MemoryStore) insertLocked(p model.SolvedProblem) int64 {
	id := s.nextID
	s.nextID++
	s.byID[id] = model.StoredProblem{
		ID:            id,
		SolvedProblem: p,
		SyncedAt:      s.syncedAt(),
	}
	return id
}

// Update applies a partial update and refreshes the ingestion timestamp.
func (s *MemoryStore) Update(ctx context.Context, id int64, patch model.ProblemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	p, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	patch.Apply(&p)
	p.SyncedAt = s.syncedAt()
	s.byID[id] = p
	return nil
}

// Delete removes the record with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	metrics.UpdateStoreRecords(len(s.byID))
	return nil
}

// Clear removes all records. Ids are not reused within a store lifetime.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.byID = make(map[int64]model.StoredProblem)
	metrics.UpdateStoreRecords(0)
	return nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ImportBatch clears first when flagged, then bulk-inserts, all under one
// lock so readers never observe the intermediate empty state.
func (s *MemoryStore) ImportBatch(ctx context.Context, ps []model.SolvedProblem, clearExisting bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	if clearExisting {
		s.byID = make(map[int64]model.StoredProblem)
	}
	for _, p := range ps {
		s.insertLocked(p)
	}
	metrics.UpdateStoreRecords(len(s.byID))
	return len(ps), nil
}

// Close marks the store closed; subsequent calls fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
