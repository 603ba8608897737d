// Package testgen is the test-generator façade of spec.md §4.8: it maps
// a config.Configuration to concrete algorithm wiring, extracts coverage
// goals from the program under test via an execution.Host, runs the
// configured search.Algorithm, and maps the resulting archive into
// WhiskerTest values. Grounded on the teacher's main.go→engine.New→
// engine.Run pipeline (flags/config resolve to one engine, one run, one
// report), generalized from one fixed strategy/pool pairing to five
// interchangeable search.Algorithm implementations.
package testgen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/config"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/execution"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/search"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

// WhiskerTest is one generated test case: the sequence of input events to
// replay against the program under test, plus the coverage goals it was
// archived for.
type WhiskerTest struct {
	Events       []chromosome.InputEvent
	CoveredGoals []int
}

// TestSuite is the façade's final output: every generated test plus the
// run's identity and final statistics snapshot.
type TestSuite struct {
	RunID      uuid.UUID
	Tests      []WhiskerTest
	Statistics statistics.Snapshot
}

// TestGenerator wires a Configuration into a runnable search.Algorithm
// against one program's coverage goals.
type TestGenerator struct {
	cfg       config.Configuration
	algorithm search.Algorithm
	arch      *archive.Archive
	stats     *statistics.Collector
	goals     search.GoalSet
}

// New resolves cfg into a concrete TestGenerator. The façade only
// supports the "test" and "variablelengthtest" chromosome kinds, since
// its entire purpose is replaying InputEvent sequences against host and
// program; configurations wanting the bitstring/integerlist genotypes
// (the OneMax/SingleBit smoke-test goals) drive internal/search directly
// instead of going through this façade.
func New(cfg config.Configuration, host execution.Host, program execution.Program) (*TestGenerator, error) {
	if cfg.Chromosome != "test" && cfg.Chromosome != "variablelengthtest" {
		return nil, fmt.Errorf("%w: test generator façade requires chromosome \"test\" or \"variablelengthtest\", got %q", errs.ErrInvalidConfiguration, cfg.Chromosome)
	}
	if host == nil || program == nil {
		return nil, fmt.Errorf("%w: test generator façade requires an ExecutionHost and a program", errs.ErrInvalidConfiguration)
	}

	functions, err := host.ExtractCoverageGoals(program)
	if err != nil {
		return nil, fmt.Errorf("extracting coverage goals: %w", err)
	}
	order := make([]int, 0, len(functions))
	for id := range functions {
		order = append(order, id)
	}
	sort.Ints(order)
	goals := search.GoalSet{Order: order, Functions: functions}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rng.New(seed)
	arch := archive.New()
	stats := statistics.New()
	evaluator := search.Evaluator{Host: host}

	algorithm, err := buildAlgorithm(cfg, r, arch, evaluator, stats)
	if err != nil {
		return nil, err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}
	if err := algorithm.SetChromosomeGenerator(generator); err != nil {
		return nil, err
	}
	if err := algorithm.SetFitnessFunctions(goals); err != nil {
		return nil, err
	}
	if err := algorithm.SetStoppingCondition(buildStoppingCondition(cfg)); err != nil {
		return nil, err
	}
	// Only SimpleGA honours an externally configured selection operator;
	// every other algorithm rejects the setter with
	// errs.ErrUnsupportedOperation, so there is nothing to wire for them.
	if cfg.Algorithm == "simplega" {
		sel, _ := buildSelectionOperator(cfg)
		if err := algorithm.SetSelectionOperator(sel); err != nil {
			return nil, err
		}
	}
	if err := algorithm.SetProperties(buildProperties(cfg)); err != nil {
		return nil, err
	}

	return &TestGenerator{cfg: cfg, algorithm: algorithm, arch: arch, stats: stats, goals: goals}, nil
}

func buildAlgorithm(cfg config.Configuration, r *rng.Source, arch *archive.Archive, evaluator search.Evaluator, stats *statistics.Collector) (search.Algorithm, error) {
	switch cfg.Algorithm {
	case "random":
		return search.NewRandom(r, arch, evaluator, stats), nil
	case "one-plus-one":
		return search.NewOnePlusOne(r, arch, evaluator, stats), nil
	case "simplega":
		return search.NewSimpleGA(r, arch, evaluator, stats), nil
	case "mosa":
		return search.NewMOSA(r, arch, evaluator, stats), nil
	case "mio":
		return search.NewMIO(r, arch, evaluator, stats), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", errs.ErrInvalidConfiguration, cfg.Algorithm)
	}
}

func buildMutation(cfg config.Configuration) (chromosome.Mutation, error) {
	switch cfg.MutationOperator {
	case "bitflip":
		return chromosome.BitflipMutation{}, nil
	case "integerlist":
		return chromosome.IntegerListMutation{}, nil
	case "variablelength":
		alpha := cfg.MutationAlpha
		return chromosome.VariableLengthMutation{ReplaceP: 0.34, InsertP: 0.33, DeleteP: 0.33, Alpha: alpha}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mutation operator %q", errs.ErrInvalidConfiguration, cfg.MutationOperator)
	}
}

func buildCrossover(cfg config.Configuration) (chromosome.Crossover, error) {
	switch cfg.CrossoverOperator {
	case "singlepoint":
		return chromosome.SinglePointCrossover{}, nil
	case "singlepointrelative":
		return chromosome.SinglePointRelativeCrossover{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown crossover operator %q", errs.ErrInvalidConfiguration, cfg.CrossoverOperator)
	}
}

func buildGenerator(cfg config.Configuration) (chromosome.Generator, error) {
	mutation, err := buildMutation(cfg)
	if err != nil {
		return nil, err
	}
	crossover, err := buildCrossover(cfg)
	if err != nil {
		return nil, err
	}
	return chromosome.TestChromosomeGenerator{
		InitLength:  cfg.ChromosomeLength,
		ActuatorIDs: cfg.ActuatorIDs,
		EventKinds:  []chromosome.EventKind{chromosome.EventClick, chromosome.EventKeyPress, chromosome.EventSlider, chromosome.EventBoolToggle},
		Mutation:    mutation,
		Crossover:   crossover,
	}, nil
}

func buildStoppingCondition(cfg config.Configuration) stopping.Condition {
	switch cfg.StoppingCondition {
	case "fixed-time":
		return stopping.FixedTime{Budget: cfg.FixedTime}
	case "optimal-solution":
		return stopping.OptimalSolution{}
	case "fixed-iterations-or-optimal":
		return stopping.OneOf{Conditions: []stopping.Condition{
			stopping.FixedIterations{Limit: cfg.FixedIterations},
			stopping.OptimalSolution{},
		}}
	default:
		return stopping.FixedIterations{Limit: cfg.FixedIterations}
	}
}

func buildSelectionOperator(cfg config.Configuration) (selection.Operator, bool) {
	switch cfg.SelectionOperator {
	case "tournament":
		return selection.TournamentSelection{K: cfg.TournamentK}, true
	case "rank":
		return selection.RankSelection{}, true
	default:
		return nil, false
	}
}

func buildProperties(cfg config.Configuration) map[string]any {
	return map[string]any{
		"population-size":                                cfg.PopulationSize,
		"crossover.probability":                           cfg.CrossoverProbability,
		"mutation.probability":                             cfg.MutationProbability,
		"startOfFocusedPhase":                              cfg.StartOfFocusedPhase,
		"selection.randomSelectionProbabilityStart":        cfg.RandomSelectionProbabilityStart,
		"selection.randomSelectionProbabilityFocusedPhase": cfg.RandomSelectionProbabilityFocusedPhase,
		"archive.maxArchiveSizeStart":                      cfg.ArchiveMaxSizeStart,
		"archive.maxArchiveSizeFocusedPhase":                cfg.ArchiveMaxSizeFocusedPhase,
		"mutation.maxMutationCountStart":                   cfg.MutationMaxCountStart,
		"mutation.maxMutationCountFocusedPhase":             cfg.MutationMaxCountFocusedPhase,
		"totalIterationBudget":                              cfg.FixedIterations,
		"totalTimeBudget":                                   cfg.FixedTime,
		"workers":                                           cfg.Workers,
	}
}

// perGoalReporter is implemented by algorithms whose canonical output
// names a best-effort chromosome per goal directly, rather than relying
// solely on the shared optimal-only archive (currently only *search.MIO:
// spec.md §4.7.4's per-goal bucket may hold a goal's best attempt long
// before that goal reaches optimality, and that attempt would otherwise
// never surface in the façade's TestSuite).
type perGoalReporter interface {
	BestPerGoalChromosomes() map[int]chromosome.Chromosome
}

// Run executes the configured algorithm to completion and maps its
// output into a TestSuite. Each WhiskerTest's CoveredGoals lists every
// goal ID attributed to that exact chromosome (a chromosome can cover,
// or stand as the best attempt at, more than one goal). For every
// algorithm except MIO this attribution comes from the shared archive,
// so CoveredGoals always means "optimally covers"; for MIO it comes from
// perGoalReporter, so CoveredGoals can also mean "best attempt so far"
// for goals not yet solved to optimality.
func (g *TestGenerator) Run(ctx context.Context) (TestSuite, error) {
	if _, err := g.algorithm.FindSolution(ctx); err != nil {
		return TestSuite{}, err
	}

	coveredBy := make(map[string][]int)
	chromosomeByKey := make(map[string]*chromosome.TestChromosome)
	assign := func(goal int, c chromosome.Chromosome) {
		tc, ok := c.(*chromosome.TestChromosome)
		if !ok {
			return
		}
		key := chromosome.Signature(tc)
		coveredBy[key] = append(coveredBy[key], goal)
		chromosomeByKey[key] = tc
	}

	if reporter, ok := g.algorithm.(perGoalReporter); ok {
		for goal, c := range reporter.BestPerGoalChromosomes() {
			assign(goal, c)
		}
	} else {
		for _, goal := range g.arch.Goals() {
			c, ok := g.arch.Get(goal)
			if !ok {
				continue
			}
			assign(goal, c)
		}
	}

	tests := make([]WhiskerTest, 0, len(chromosomeByKey))
	for key, tc := range chromosomeByKey {
		goals := coveredBy[key]
		sort.Ints(goals)
		tests = append(tests, WhiskerTest{Events: tc.Events, CoveredGoals: goals})
	}
	sort.Slice(tests, func(i, j int) bool {
		if len(tests[i].CoveredGoals) == 0 || len(tests[j].CoveredGoals) == 0 {
			return len(tests[i].CoveredGoals) > len(tests[j].CoveredGoals)
		}
		return tests[i].CoveredGoals[0] < tests[j].CoveredGoals[0]
	})

	return TestSuite{
		RunID:      g.stats.RunID(),
		Tests:      tests,
		Statistics: g.stats.Snapshot(),
	}, nil
}

// Archive exposes the underlying archive for callers that want direct
// per-goal access alongside the mapped TestSuite.
func (g *TestGenerator) Archive() *archive.Archive { return g.arch }
