// Package search implements the five cooperating search algorithms —
// Random, OnePlusOne, SimpleGA, MOSA, and MIO — sharing the Algorithm contract of
// spec.md §4.7: setters returning ErrUnsupportedOperation where
// inapplicable, shared observables, and FindSolution. Population
// evaluation against the ExecutionHost fans out over a bounded worker
// pool the way the teacher's engine.evaluatePopulation does
// (pkg/engine/engine.go); algorithms themselves run single-threaded
// between evaluation barriers (spec.md §5).
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/dominance"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/execution"
	"github.com/whiskergen/searchcore/internal/fitness"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
	"github.com/whiskergen/searchcore/internal/trace"
)

// GoalSet is the ordered collection of coverage goals a run searches
// against. Order is insertion order and is iterated in that order every
// time, per spec.md §3's stability requirement.
type GoalSet struct {
	Order     []int
	Functions map[int]fitness.Function
}

// Values computes every goal's fitness for c against tr, in Order.
// Returns the first error encountered (typically errs.ErrNotYetImplemented
// from a stub goal), which callers must propagate rather than swallow.
func (g GoalSet) Values(c chromosome.Chromosome, tr trace.ExecutionTrace) (map[int]float64, error) {
	values := make(map[int]float64, len(g.Order))
	for _, id := range g.Order {
		v, err := g.Functions[id].Fitness(c, tr)
		if err != nil {
			return nil, err
		}
		values[id] = v
	}
	return values, nil
}

// Comparator adapts this goal set's per-goal Function.Compare into a
// dominance.Comparator.
func (g GoalSet) Comparator() dominance.Comparator {
	return func(goal int, a, b float64) int {
		return g.Functions[goal].Compare(a, b)
	}
}

// Evaluator produces the execution trace a GoalSet needs to score a
// chromosome. Host is nil for chromosome-only goals (OneMax, SingleBit)
// that never touch an ExecutionHost; TestChromosome genotypes run
// through Host when one is configured.
type Evaluator struct {
	Host execution.Host
}

// Trace returns the execution trace for c, or an empty trace if no host
// is configured or c is not a *chromosome.TestChromosome.
func (e Evaluator) Trace(ctx context.Context, c chromosome.Chromosome) (trace.ExecutionTrace, error) {
	if e.Host == nil {
		return trace.NewExecutionTrace(), nil
	}
	tc, ok := c.(*chromosome.TestChromosome)
	if !ok {
		return trace.NewExecutionTrace(), nil
	}
	return e.Host.Evaluate(ctx, tc)
}

// worstValues returns fitness.WorstValue for every goal, the recovery
// value for a chromosome whose execution failed (spec.md §7).
func worstValues(goals GoalSet) map[int]float64 {
	values := make(map[int]float64, len(goals.Order))
	for _, id := range goals.Order {
		values[id] = fitness.WorstValue
	}
	return values
}

// evaluateOne computes tr and then fitness values for a single
// chromosome, recovering ExecutionFailure into worst-case values and
// propagating every other error (notably ErrNotYetImplemented).
func evaluateOne(ctx context.Context, evaluator Evaluator, goals GoalSet, c chromosome.Chromosome, stats *statistics.Collector) (map[int]float64, error) {
	tr, err := evaluator.Trace(ctx, c)
	if err != nil {
		if errors.Is(err, errs.ErrExecutionFailure) {
			if stats != nil {
				stats.Incr("execution_failures", 1)
			}
			return worstValues(goals), nil
		}
		return nil, err
	}
	values, err := goals.Values(c, tr)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// EvaluatePopulation evaluates every member of population concurrently
// across a bounded pool of workers, writing results into a pre-sized
// slice by index exactly the way the teacher's engine.evaluatePopulation
// does (pkg/engine/engine.go): no shared mutable state, one slot per
// index, a channel of jobs, and a sync.WaitGroup barrier.
func EvaluatePopulation(ctx context.Context, workers int, evaluator Evaluator, goals GoalSet, population []chromosome.Chromosome, stats *statistics.Collector) ([]map[int]float64, error) {
	n := len(population)
	results := make([]map[int]float64, n)
	failures := make([]error, n)
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx int
		c   chromosome.Chromosome
	}
	jobs := make(chan job, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				values, err := evaluateOne(ctx, evaluator, goals, j.c, stats)
				if err != nil {
					failures[j.idx] = err
					continue
				}
				results[j.idx] = values
			}
		}()
	}
	for i, c := range population {
		jobs <- job{idx: i, c: c}
	}
	close(jobs)
	wg.Wait()

	if stats != nil {
		stats.Incr("evaluations", int64(n))
	}
	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// considerPopulation offers every optimal member of population to arch.
func considerPopulation(arch *archive.Archive, goals GoalSet, population []chromosome.Chromosome, vectors []map[int]float64) {
	for i, c := range population {
		for _, id := range goals.Order {
			v := vectors[i][id]
			if goals.Functions[id].IsOptimal(v) {
				arch.Consider(id, c, v, true)
			}
		}
	}
}

// distinct removes chromosomes with duplicate gene content, preserving
// first-seen order.
func distinct(chroms []chromosome.Chromosome) []chromosome.Chromosome {
	seen := make(map[string]bool, len(chroms))
	out := make([]chromosome.Chromosome, 0, len(chroms))
	for _, c := range chroms {
		sig := chromosome.Signature(c)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, c)
	}
	return out
}

func lengthsOf(population []chromosome.Chromosome) []int {
	lengths := make([]int, len(population))
	for i, c := range population {
		lengths[i] = c.Len()
	}
	return lengths
}

// runState is the shared observable state embedded by every concrete
// algorithm; it also satisfies stopping.Observer.
type runState struct {
	iterations int
	start      time.Time
	arch       *archive.Archive
	goals      GoalSet
}

func (s *runState) Iterations() int      { return s.iterations }
func (s *runState) StartTime() time.Time { return s.start }
func (s *runState) CoveredGoals() int    { return s.arch.Len() }
func (s *runState) TotalGoals() int      { return len(s.goals.Order) }

// Algorithm is the shared search-algorithm contract (spec.md §4.7).
// Setters that an algorithm does not honour must return an error
// wrapping errs.ErrUnsupportedOperation rather than silently ignoring
// the call.
type Algorithm interface {
	SetChromosomeGenerator(g chromosome.Generator) error
	SetFitnessFunctions(goals GoalSet) error
	SetStoppingCondition(c stopping.Condition) error
	SetSelectionOperator(op selection.Operator) error
	SetProperties(props map[string]any) error

	Iterations() int
	StartTime() time.Time
	CurrentSolution() []chromosome.Chromosome
	FitnessFunctions() GoalSet

	FindSolution(ctx context.Context) ([]chromosome.Chromosome, error)
}

// unsupported builds the standard rejection error for a setter an
// algorithm does not honour.
func unsupported(algorithm, setter string) error {
	return fmt.Errorf("%w: %s does not support %s", errs.ErrUnsupportedOperation, algorithm, setter)
}
