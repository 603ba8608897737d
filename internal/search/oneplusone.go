package search

import (
	"context"
	"fmt"
	"time"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

// OnePlusOne implements spec.md §4.7.2: maintain a single parent,
// replacing it with a mutated child whenever the child's summed fitness
// is at least as good.
type OnePlusOne struct {
	runState

	rng       *rng.Source
	evaluator Evaluator
	stats     *statistics.Collector
	stopCond  stopping.Condition
	generator chromosome.Generator

	parent       chromosome.Chromosome
	parentValues map[int]float64
}

func NewOnePlusOne(r *rng.Source, arch *archive.Archive, evaluator Evaluator, stats *statistics.Collector) *OnePlusOne {
	return &OnePlusOne{runState: runState{arch: arch}, rng: r, evaluator: evaluator, stats: stats}
}

func (a *OnePlusOne) SetChromosomeGenerator(g chromosome.Generator) error {
	a.generator = g
	return nil
}

func (a *OnePlusOne) SetFitnessFunctions(goals GoalSet) error {
	a.goals = goals
	return nil
}

func (a *OnePlusOne) SetStoppingCondition(c stopping.Condition) error {
	a.stopCond = c
	return nil
}

func (a *OnePlusOne) SetSelectionOperator(selection.Operator) error {
	return unsupported("(1+1) EA", "a selection operator")
}

func (a *OnePlusOne) SetProperties(map[string]any) error { return nil }

func (a *OnePlusOne) CurrentSolution() []chromosome.Chromosome {
	if a.parent == nil {
		return nil
	}
	return []chromosome.Chromosome{a.parent}
}

func (a *OnePlusOne) FitnessFunctions() GoalSet { return a.goals }

// scalarize sums a fitness vector across goals in the set's order, the
// "sum over goals" scalarisation spec.md §4.7.2 offers as the default
// acceptance criterion.
func scalarize(values map[int]float64, order []int) float64 {
	var sum float64
	for _, id := range order {
		sum += values[id]
	}
	return sum
}

func (a *OnePlusOne) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if a.generator == nil || a.stopCond == nil {
		return nil, fmt.Errorf("%w: (1+1) EA requires a chromosome generator and a stopping condition", errs.ErrInvalidConfiguration)
	}
	a.start = time.Now()
	a.iterations = 0
	a.arch.Reset()

	a.parent = a.generator.Generate(a.rng)
	parentValues, err := evaluateOne(ctx, a.evaluator, a.goals, a.parent, a.stats)
	if err != nil {
		return nil, err
	}
	a.parentValues = parentValues
	considerOne(a.arch, a.goals, a.parent, a.parentValues)

	for !a.stopCond.IsFinished(&a.runState) {
		child := a.parent.Mutate(a.rng)
		childValues, err := evaluateOne(ctx, a.evaluator, a.goals, child, a.stats)
		if err != nil {
			return nil, err
		}

		if scalarize(childValues, a.goals.Order) >= scalarize(a.parentValues, a.goals.Order) {
			a.parent = child
			a.parentValues = childValues
		}
		considerOne(a.arch, a.goals, child, childValues)

		a.iterations++
		if a.stats != nil {
			a.stats.Incr("iterations", 1)
		}
	}
	return []chromosome.Chromosome{a.parent}, nil
}

// considerOne offers c to arch for every goal it achieves optimally.
func considerOne(arch *archive.Archive, goals GoalSet, c chromosome.Chromosome, values map[int]float64) {
	for _, id := range goals.Order {
		if goals.Functions[id].IsOptimal(values[id]) {
			arch.Consider(id, c, values[id], true)
		}
	}
}
