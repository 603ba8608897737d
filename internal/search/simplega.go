package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

// SimpleGA is a conventional generational genetic algorithm scalarizing
// every goal's fitness into a single sum (unlike MOSA/MIO, which rank by
// dominance). It is the one algorithm that honours an externally
// configured selection.Operator, grounded on the teacher's elitism +
// tournament-selection generational loop in
// pkg/strategy/tournament.go's TournamentStrategy.Evolve.
type SimpleGA struct {
	runState

	rng       *rng.Source
	evaluator Evaluator
	stats     *statistics.Collector
	stopCond  stopping.Condition
	generator chromosome.Generator
	selector  selection.Operator

	populationSize int
	crossoverProb  float64
	mutationProb   float64
	eliteRate      float64
	workers        int

	population []chromosome.Chromosome
}

func NewSimpleGA(r *rng.Source, arch *archive.Archive, evaluator Evaluator, stats *statistics.Collector) *SimpleGA {
	return &SimpleGA{
		runState:       runState{arch: arch},
		rng:            r,
		evaluator:      evaluator,
		stats:          stats,
		selector:       selection.RankSelection{},
		populationSize: 50,
		crossoverProb:  0.7,
		mutationProb:   0.3,
		eliteRate:      0.05,
		workers:        1,
	}
}

func (a *SimpleGA) SetChromosomeGenerator(g chromosome.Generator) error {
	a.generator = g
	return nil
}

func (a *SimpleGA) SetFitnessFunctions(goals GoalSet) error {
	a.goals = goals
	return nil
}

func (a *SimpleGA) SetStoppingCondition(c stopping.Condition) error {
	a.stopCond = c
	return nil
}

func (a *SimpleGA) SetSelectionOperator(op selection.Operator) error {
	if op == nil {
		return fmt.Errorf("%w: a nil selection operator", errs.ErrInvalidConfiguration)
	}
	a.selector = op
	return nil
}

func (a *SimpleGA) SetProperties(props map[string]any) error {
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
	if v, ok := props["selection.eliteRate"]; ok {
		p, ok := v.(float64)
		if !ok || p < 0 || p > 1 {
			return fmt.Errorf("%w: selection.eliteRate must be in [0,1]", errs.ErrInvalidConfiguration)
		}
		a.eliteRate = p
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

func (a *SimpleGA) CurrentSolution() []chromosome.Chromosome {
	return distinct(a.arch.Values())
}

func (a *SimpleGA) FitnessFunctions() GoalSet { return a.goals }

// scalarRanking exposes a fixed population's summed fitness as a
// selection.Ranking.
type scalarRanking []float64

func (r scalarRanking) Len() int             { return len(r) }
func (r scalarRanking) Better(i, j int) bool { return r[i] > r[j] }

func (a *SimpleGA) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if a.generator == nil || a.stopCond == nil {
		return nil, fmt.Errorf("%w: SimpleGA requires a chromosome generator and a stopping condition", errs.ErrInvalidConfiguration)
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

	for !a.stopCond.IsFinished(&a.runState) {
		n := len(population)
		scores := make(scalarRanking, n)
		for i := range population {
			scores[i] = scalarize(values[i], a.goals.Order)
		}
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		sort.Slice(indices, func(i, j int) bool { return scores[indices[i]] > scores[indices[j]] })

		eliteCount := int(float64(n) * a.eliteRate)
		if eliteCount < 1 {
			eliteCount = 1
		}
		if eliteCount > n {
			eliteCount = n
		}

		next := make([]chromosome.Chromosome, 0, n)
		for i := 0; i < eliteCount; i++ {
			next = append(next, population[indices[i]].Clone())
		}

		for len(next) < n {
			i1 := a.selector.Select(a.rng, scores)
			i2 := a.selector.Select(a.rng, scores)
			if i1 < 0 {
				i1 = a.rng.NextIntn(0, n)
			}
			if i2 < 0 {
				i2 = a.rng.NextIntn(0, n)
			}
			p1, p2 := population[i1], population[i2]

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
			next = append(next, c1)
			if len(next) < n {
				next = append(next, c2)
			}
		}

		nextValues, err := EvaluatePopulation(ctx, a.workers, a.evaluator, a.goals, next, a.stats)
		if err != nil {
			return nil, err
		}
		considerPopulation(a.arch, a.goals, next, nextValues)

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
