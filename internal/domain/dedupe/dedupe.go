// Package dedupe reduces a stream of accepted submissions to one entry per
// problem identity, keeping the earliest timestamp.
package dedupe

// Earliest accumulates values keyed by problem identity. Among values
// sharing a key the one with the smallest timestamp wins; on a timestamp
// tie the first observed value is kept.
type Earliest[T any] struct {
	byKey map[string]entry[T]
}

type entry[T any] struct {
	epochSeconds int64
	value        T
}

// NewEarliest creates an empty accumulator.
func NewEarliest[T any]() *Earliest[T] {
	return &Earliest[T]{byKey: make(map[string]entry[T])}
}

// Observe folds one submission into the accumulator.
func (e *Earliest[T]) Observe(key string, epochSeconds int64, value T) {
	cur, ok := e.byKey[key]
	if ok && cur.epochSeconds <= epochSeconds {
		return
	}
	e.byKey[key] = entry[T]{epochSeconds: epochSeconds, value: value}
}

// Len returns the number of unique keys observed.
func (e *Earliest[T]) Len() int {
	return len(e.byKey)
}

// Values returns the surviving value per key in unspecified order.
// Callers that need determinism sort the result themselves.
func (e *Earliest[T]) Values() []T {
	out := make([]T, 0, len(e.byKey))
	for _, v := range e.byKey {
		out = append(out, v.value)
	}
	return out
}
