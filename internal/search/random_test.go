package search

import (
	"context"
	"testing"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/fitness"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

func TestRandomSearchSingleBitScenario(t *testing.T) {
	r := rng.New(1)
	arch := archive.New()
	a := NewRandom(r, arch, Evaluator{}, statistics.New())

	const length = 10
	if err := a.SetChromosomeGenerator(chromosome.BitStringGenerator{Length: length}); err != nil {
		t.Fatalf("SetChromosomeGenerator: %v", err)
	}
	if err := a.SetFitnessFunctions(tenSingleBitGoals(length)); err != nil {
		t.Fatalf("SetFitnessFunctions: %v", err)
	}
	if err := a.SetStoppingCondition(stopping.FixedIterations{Limit: 1000}); err != nil {
		t.Fatalf("SetStoppingCondition: %v", err)
	}

	suite, err := a.FindSolution(context.Background())
	if err != nil {
		t.Fatalf("FindSolution: %v", err)
	}
	if len(suite) > 10 {
		t.Fatalf("expected at most 10 tests, got %d", len(suite))
	}

	// Every returned test must cover at least one goal not already
	// covered by an earlier test (spec.md §8's Random scenario).
	seen := make(map[int]bool)
	for i, c := range suite {
		b := c.(*chromosome.BitString)
		coveredNewGoal := false
		for k := 0; k < length; k++ {
			if b.Genes[k] && !seen[k] {
				coveredNewGoal = true
				seen[k] = true
			} else if b.Genes[k] {
				seen[k] = true
			}
		}
		if !coveredNewGoal {
			t.Fatalf("test %d covers no goal uncovered by earlier tests", i)
		}
	}
}

func TestRandomSearchDeduplicatesOneGoalPerCover(t *testing.T) {
	r := rng.New(2)
	arch := archive.New()
	a := NewRandom(r, arch, Evaluator{}, statistics.New())

	const length = 1
	if err := a.SetChromosomeGenerator(chromosome.BitStringGenerator{Length: length}); err != nil {
		t.Fatalf("SetChromosomeGenerator: %v", err)
	}
	goals := GoalSet{
		Order:     []int{0},
		Functions: map[int]fitness.Function{0: fitness.SingleBit{GoalID: 0, K: 0}},
	}
	if err := a.SetFitnessFunctions(goals); err != nil {
		t.Fatalf("SetFitnessFunctions: %v", err)
	}
	if err := a.SetStoppingCondition(stopping.FixedIterations{Limit: 200}); err != nil {
		t.Fatalf("SetStoppingCondition: %v", err)
	}

	suite, err := a.FindSolution(context.Background())
	if err != nil {
		t.Fatalf("FindSolution: %v", err)
	}
	if len(suite) != 1 {
		t.Fatalf("expected exactly one test once the single goal is covered, got %d", len(suite))
	}
	if _, ok := arch.Get(0); !ok {
		t.Fatalf("expected the archive to hold the covering chromosome")
	}
}

func TestRandomSearchRejectsSelectionOperator(t *testing.T) {
	a := NewRandom(rng.New(1), archive.New(), Evaluator{}, statistics.New())
	if err := a.SetSelectionOperator(nil); err == nil {
		t.Fatalf("expected an error rejecting a selection operator")
	}
}

func TestRandomSearchRequiresGeneratorAndStoppingCondition(t *testing.T) {
	a := NewRandom(rng.New(1), archive.New(), Evaluator{}, statistics.New())
	if _, err := a.FindSolution(context.Background()); err == nil {
		t.Fatalf("expected an error when generator and stopping condition are unset")
	}
}
