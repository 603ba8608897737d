// Package execution defines the boundary between the search core and the
// program under test: the Host interface that replays a TestChromosome
// and reports back an execution trace, and the Program handle used to
// discover the coverage goals available in one program. The bundled
// reference implementation lives in internal/refhost; production callers
// supply their own Host backed by the real interpreter.
package execution

import (
	"context"

	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/fitness"
	"github.com/whiskergen/searchcore/internal/trace"
)

// Program is an opaque handle to one program under test. Hosts define
// their own concrete type satisfying this interface; the core never
// inspects a Program beyond passing it back to the Host that produced
// it.
type Program interface {
	// Name identifies the program, for reporting only.
	Name() string
}

// Host replays chromosomes against a program under test and reports the
// coverage goals available in it.
type Host interface {
	// Evaluate runs c against the program under test and returns the
	// resulting execution trace. Returns an error wrapping
	// errs.ErrExecutionFailure if the run could not complete (a crash, a
	// timeout, an environment fault) rather than a trace.
	Evaluate(ctx context.Context, c *chromosome.TestChromosome) (trace.ExecutionTrace, error)
	// ExtractCoverageGoals analyzes p and returns one fitness.Function
	// per coverage goal, keyed by a stable goal identifier. Order is
	// insertion order of discovery; callers needing a deterministic
	// iteration order should keep a parallel []int slice rather than
	// rely on map order.
	ExtractCoverageGoals(p Program) (map[int]fitness.Function, error)
}
