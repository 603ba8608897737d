// Package rng wraps a single seeded pseudo-random stream so that
// (seed, configuration) deterministically pins every stochastic decision
// in the search core. Callers must thread a *Source explicitly; there is
// no package-level global (see the teacher's engine.Engine.rng field,
// which is likewise constructed once and passed down rather than
// accessed through a singleton).
package rng

import "math/rand"

// Source is the run-wide randomness source. Not safe for concurrent use;
// the single-threaded cooperative core (see internal/search) never calls
// it from more than one goroutine at a time.
type Source struct {
	r *rand.Rand
}

// New creates a seeded source. A seed of 0 is a valid, reproducible seed
// in its own right — callers wanting a fresh run pick their own seed
// (e.g. from time.Now().UnixNano()) before calling New.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// NextFloat64 returns a value in [0,1).
func (s *Source) NextFloat64() float64 {
	return s.r.Float64()
}

// NextIntn returns a value in [lo, hi).
func (s *Source) NextIntn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// NextBool returns a fair coin flip.
func (s *Source) NextBool() bool {
	return s.r.Float64() < 0.5
}

// Shuffle permutes a slice of length n in place using swap(i, j).
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Pick returns a uniformly random element of a non-empty slice.
func Pick[T any](s *Source, items []T) T {
	return items[s.r.Intn(len(items))]
}
