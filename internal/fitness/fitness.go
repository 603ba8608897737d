// Package fitness implements the per-goal fitness function contract:
// one Function instance per coverage goal, mapping a chromosome and its
// execution trace to a maximization-convention score (spec.md §4.3).
// Minimization-shaped metrics (distance-to-target) are negated internally
// so "higher fitness is better" holds uniformly across every Function —
// the convention spec.md §9 asks implementers to fix rather than guess.
package fitness

import (
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/trace"
)

// WorstValue is the fitness assigned to a chromosome whose execution
// failed (errs.ErrExecutionFailure), so the search can continue without
// special-casing failed runs in every algorithm. Mirrors the teacher's
// series.WorstFitness() sentinel in pkg/series/fitness.go, generalized
// from a struct of named components to the single scalar this package's
// maximization convention needs.
const WorstValue = -1e18

// Function computes fitness for a fixed coverage goal.
type Function interface {
	// Goal returns this function's goal identifier.
	Goal() int
	// Fitness computes a maximization-convention score for c, given the
	// trace from its most recent execution. Coverage-oriented functions
	// that have no use for a field of the trace simply ignore it.
	Fitness(c chromosome.Chromosome, tr trace.ExecutionTrace) (float64, error)
	// IsOptimal reports whether f represents full achievement of the
	// goal. Monotone: once true for a value, true for every subsequent
	// value judged an improvement by Compare.
	IsOptimal(f float64) bool
	// Compare returns >0 if a is better than b, <0 if worse, 0 if equal.
	Compare(a, b float64) int
}

// compareFloat64 is the shared maximization-convention comparator: higher
// is better.
func compareFloat64(a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
