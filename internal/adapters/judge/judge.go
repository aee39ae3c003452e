// Package judge defines the contract for fetching and normalizing a
// handle's submission history from an online judge.
package judge

import (
	"context"
	"sort"

	"github.com/okian/solvemap/internal/domain/model"
)

// Adapter fetches the full submission history for a handle and reduces it
// to canonical solved-problem records: accepted submissions only, one
// record per problem identity, earliest acceptance wins. Adapters perform
// network I/O and nothing else; they never touch the store.
type Adapter interface {
	// Name returns the registry key for this judge.
	Name() string

	// Fetch returns the canonical records for handle. The result order is
	// deterministic. A non-success status envelope surfaces as *FetchError;
	// transport and parse failures propagate as plain errors.
	Fetch(ctx context.Context, handle string) ([]model.SolvedProblem, error)
}

// Registry selects an adapter by judge name.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns the registered judge names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortRecords orders records by solve time, then URL, so repeated fetches
// of the same history produce identical output.
func SortRecords(records []model.SolvedProblem) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].SolvedAt != records[j].SolvedAt {
			return records[i].SolvedAt < records[j].SolvedAt
		}
		return records[i].ProblemURL < records[j].ProblemURL
	})
}
