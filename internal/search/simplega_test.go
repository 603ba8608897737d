package search

import (
	"context"
	"testing"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/fitness"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

func TestSimpleGAHonoursConfiguredSelectionOperator(t *testing.T) {
	a := NewSimpleGA(rng.New(1), archive.New(), Evaluator{}, statistics.New())
	op := selection.TournamentSelection{K: 3}
	if err := a.SetSelectionOperator(op); err != nil {
		t.Fatalf("SetSelectionOperator: %v", err)
	}
	if a.selector != op {
		t.Fatalf("expected the configured tournament operator to be stored")
	}
}

func TestSimpleGAConvergesOnOneMax(t *testing.T) {
	r := rng.New(11)
	arch := archive.New()
	a := NewSimpleGA(r, arch, Evaluator{}, statistics.New())

	const length = 10
	if err := a.SetChromosomeGenerator(chromosome.BitStringGenerator{Length: length}); err != nil {
		t.Fatalf("SetChromosomeGenerator: %v", err)
	}
	if err := a.SetProperties(map[string]any{"population-size": 30}); err != nil {
		t.Fatalf("SetProperties: %v", err)
	}
	goals := GoalSet{
		Order:     []int{0},
		Functions: map[int]fitness.Function{0: fitness.OneMax{GoalID: 0, Length: length}},
	}
	if err := a.SetFitnessFunctions(goals); err != nil {
		t.Fatalf("SetFitnessFunctions: %v", err)
	}
	if err := a.SetStoppingCondition(stopping.OneOf{Conditions: []stopping.Condition{
		stopping.FixedIterations{Limit: 200},
		stopping.OptimalSolution{},
	}}); err != nil {
		t.Fatalf("SetStoppingCondition: %v", err)
	}

	if _, err := a.FindSolution(context.Background()); err != nil {
		t.Fatalf("FindSolution: %v", err)
	}
	if _, ok := arch.Get(0); !ok {
		t.Fatalf("expected the archive to hold an optimal OneMax chromosome")
	}
}
