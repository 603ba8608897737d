package search

import (
	"context"
	"fmt"
	"time"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/dominance"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

// MOSA implements spec.md §4.7.3: a many-objective genetic algorithm
// driven by preference sorting and sub-vector dominance rather than a
// single scalar fitness.
type MOSA struct {
	runState

	rng       *rng.Source
	evaluator Evaluator
	stats     *statistics.Collector
	stopCond  stopping.Condition
	generator chromosome.Generator

	populationSize int
	crossoverProb  float64
	mutationProb   float64
	workers        int

	population []chromosome.Chromosome
}

func NewMOSA(r *rng.Source, arch *archive.Archive, evaluator Evaluator, stats *statistics.Collector) *MOSA {
	return &MOSA{
		runState:       runState{arch: arch},
		rng:            r,
		evaluator:      evaluator,
		stats:          stats,
		populationSize: 50,
		crossoverProb:  0.7,
		mutationProb:   0.3,
		workers:        1,
	}
}

func (a *MOSA) SetChromosomeGenerator(g chromosome.Generator) error {
	a.generator = g
	return nil
}

func (a *MOSA) SetFitnessFunctions(goals GoalSet) error {
	a.goals = goals
	return nil
}

func (a *MOSA) SetStoppingCondition(c stopping.Condition) error {
	a.stopCond = c
	return nil
}

// SetSelectionOperator is rejected with ErrUnsupportedOperation: MOSA always drives
// selection.RankSelection against its dominance-rank-and-SVD ordering,
// per spec.md §4.7.3 step 2a ("iteration ≥1 uses rank selection").
func (a *MOSA) SetSelectionOperator(selection.Operator) error {
	return unsupported("MOSA", "a configurable selection operator; it always uses rank selection over its dominance ordering")
}

// SetProperties honours "population-size", "crossover.probability",
// "mutation.probability", and "workers" from spec.md §6's configuration
// table.
func (a *MOSA) SetProperties(props map[string]any) error {
	if v, ok := props["population-size"]; ok {
		n, ok := v.(int)
		if !ok || n < 1 {
			return fmt.Errorf("%w: population-size must be a positive int", errs.ErrInvalidConfiguration)
		}
		a.populationSize = n
	}
	if v, ok := props["crossover.probability"]; ok {
		p, ok := v.(float64)
		if !ok || p < 0 || p > 1 {
			return fmt.Errorf("%w: crossover.probability must be in [0,1]", errs.ErrInvalidConfiguration)
		}
		a.crossoverProb = p
	}
	if v, ok := props["mutation.probability"]; ok {
		p, ok := v.(float64)
		if !ok || p < 0 || p > 1 {
			return fmt.Errorf("%w: mutation.probability must be in [0,1]", errs.ErrInvalidConfiguration)
		}
		a.mutationProb = p
	}
	if v, ok := props["workers"]; ok {
		n, ok := v.(int)
		if !ok || n < 1 {
			return fmt.Errorf("%w: workers must be a positive int", errs.ErrInvalidConfiguration)
		}
		a.workers = n
	}
	return nil
}

func (a *MOSA) CurrentSolution() []chromosome.Chromosome {
	return distinct(a.arch.Values())
}

func (a *MOSA) FitnessFunctions() GoalSet { return a.goals }

// positionalRanking treats a population already sorted worst-first (the
// convention spec.md §4.7.3 step 2f leaves P_{t+1} in) as a Ranking: a
// higher index is always the better-ranked member.
type positionalRanking int

func (n positionalRanking) Len() int           { return int(n) }
func (positionalRanking) Better(i, j int) bool { return i > j }

func (a *MOSA) buildOffspring(ctx context.Context, parents []chromosome.Chromosome, rankSelect bool) ([]chromosome.Chromosome, error) {
	n := len(parents)
	offspring := make([]chromosome.Chromosome, 0, n)
	ranking := positionalRanking(n)

	pick := func() chromosome.Chromosome {
		if rankSelect {
			idx := selection.RankSelection{}.Select(a.rng, ranking)
			if idx < 0 {
				idx = a.rng.NextIntn(0, n)
			}
			return parents[idx]
		}
		return parents[a.rng.NextIntn(0, n)]
	}

	for len(offspring) < n {
		p1, p2 := pick(), pick()
		var c1, c2 chromosome.Chromosome
		if a.rng.NextFloat64() < a.crossoverProb {
			c1, c2 = p1.Crossover(a.rng, p2)
		} else {
			c1, c2 = p1, p2
		}
		if a.rng.NextFloat64() < a.mutationProb {
			c1 = c1.Mutate(a.rng)
		}
		if a.rng.NextFloat64() < a.mutationProb {
			c2 = c2.Mutate(a.rng)
		}
		offspring = append(offspring, c1)
		if len(offspring) < n {
			offspring = append(offspring, c2)
		}
	}
	return offspring, nil
}

func (a *MOSA) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if a.generator == nil || a.stopCond == nil {
		return nil, fmt.Errorf("%w: MOSA requires a chromosome generator and a stopping condition", errs.ErrInvalidConfiguration)
	}
	a.start = time.Now()
	a.iterations = 0
	a.arch.Reset()

	population := make([]chromosome.Chromosome, a.populationSize)
	for i := range population {
		population[i] = a.generator.Generate(a.rng)
	}
	values, err := EvaluatePopulation(ctx, a.workers, a.evaluator, a.goals, population, a.stats)
	if err != nil {
		return nil, err
	}
	considerPopulation(a.arch, a.goals, population, values)
	a.population = population

	covered := func(g int) bool { _, ok := a.arch.Get(g); return ok }
	cmp := a.goals.Comparator()

	for !a.stopCond.IsFinished(&a.runState) {
		offspring, err := a.buildOffspring(ctx, population, a.iterations >= 1)
		if err != nil {
			return nil, err
		}
		offspringValues, err := EvaluatePopulation(ctx, a.workers, a.evaluator, a.goals, offspring, a.stats)
		if err != nil {
			return nil, err
		}
		considerPopulation(a.arch, a.goals, offspring, offspringValues)

		combined := append(append([]chromosome.Chromosome{}, population...), offspring...)
		combinedValues := append(append([]map[int]float64{}, values...), offspringValues...)
		lengths := lengthsOf(combined)

		fronts := dominance.PreferenceSort(combinedValues, lengths, a.goals.Order, covered, cmp, a.populationSize)

		var nextIdx []int
		for _, front := range fronts {
			if len(nextIdx) >= a.populationSize {
				break
			}
			sorted := dominance.SortFrontBySVD(a.rng, front, combinedValues, a.goals.Order, cmp)
			remaining := a.populationSize - len(nextIdx)
			if len(sorted) > remaining {
				sorted = sorted[:remaining]
			}
			nextIdx = append(nextIdx, sorted...)
		}

		next := make([]chromosome.Chromosome, len(nextIdx))
		nextValues := make([]map[int]float64, len(nextIdx))
		for i, idx := range nextIdx {
			next[i] = combined[idx]
			nextValues[i] = combinedValues[idx]
		}
		considerPopulation(a.arch, a.goals, next, nextValues)

		// Reverse so the population is sorted ascending by quality
		// (worst first), the convention rank-selection expects for
		// the next iteration (spec.md §4.7.3 step 2f).
		for i, j := 0, len(next)-1; i < j; i, j = i+1, j-1 {
			next[i], next[j] = next[j], next[i]
			nextValues[i], nextValues[j] = nextValues[j], nextValues[i]
		}

		population = next
		values = nextValues
		a.population = population

		a.iterations++
		if a.stats != nil {
			a.stats.Incr("iterations", 1)
		}
	}

	return distinct(a.arch.Values()), nil
}
