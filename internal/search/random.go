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

// Random implements spec.md §4.7.1: generate one random chromosome per
// iteration, and keep it exactly once it newly covers at least one
// still-uncovered goal.
type Random struct {
	runState

	rng       *rng.Source
	evaluator Evaluator
	stats     *statistics.Collector
	stopCond  stopping.Condition
	generator chromosome.Generator

	current chromosome.Chromosome
}

// NewRandom constructs a Random search bound to arch and stats, seeded
// from rng.
func NewRandom(r *rng.Source, arch *archive.Archive, evaluator Evaluator, stats *statistics.Collector) *Random {
	return &Random{runState: runState{arch: arch}, rng: r, evaluator: evaluator, stats: stats}
}

func (a *Random) SetChromosomeGenerator(g chromosome.Generator) error {
	a.generator = g
	return nil
}

func (a *Random) SetFitnessFunctions(goals GoalSet) error {
	a.goals = goals
	return nil
}

func (a *Random) SetStoppingCondition(c stopping.Condition) error {
	a.stopCond = c
	return nil
}

func (a *Random) SetSelectionOperator(selection.Operator) error {
	return unsupported("random search", "a selection operator")
}

func (a *Random) SetProperties(map[string]any) error { return nil }

func (a *Random) CurrentSolution() []chromosome.Chromosome {
	if a.current == nil {
		return nil
	}
	return []chromosome.Chromosome{a.current}
}

func (a *Random) FitnessFunctions() GoalSet { return a.goals }

func (a *Random) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if a.generator == nil || a.stopCond == nil {
		return nil, fmt.Errorf("%w: random search requires a chromosome generator and a stopping condition", errs.ErrInvalidConfiguration)
	}
	a.start = time.Now()
	a.iterations = 0
	a.arch.Reset()

	uncovered := make(map[int]bool, len(a.goals.Order))
	for _, id := range a.goals.Order {
		uncovered[id] = true
	}
	var suite []chromosome.Chromosome

	for !a.stopCond.IsFinished(&a.runState) {
		c := a.generator.Generate(a.rng)
		values, err := evaluateOne(ctx, a.evaluator, a.goals, c, a.stats)
		if err != nil {
			return nil, err
		}

		coveredNew := false
		for _, id := range a.goals.Order {
			if !uncovered[id] {
				continue
			}
			if a.goals.Functions[id].IsOptimal(values[id]) {
				a.arch.Consider(id, c, values[id], true)
				uncovered[id] = false
				coveredNew = true
			}
		}
		if coveredNew {
			suite = append(suite, c.Clone())
		}
		a.current = c
		a.iterations++
		if a.stats != nil {
			a.stats.Incr("iterations", 1)
		}
	}
	return suite, nil
}
