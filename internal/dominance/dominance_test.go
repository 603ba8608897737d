package dominance

import (
	"testing"

	"github.com/whiskergen/searchcore/internal/rng"
)

func higherIsBetter(_ int, a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func TestDominatesIsStrictPartialOrder(t *testing.T) {
	goals := []int{0, 1}
	a := map[int]float64{0: 3, 1: 1}
	b := map[int]float64{0: 1, 1: 1}

	if !Dominates(a, b, goals, nil, higherIsBetter) {
		t.Fatalf("expected a to dominate b")
	}
	if Dominates(b, a, goals, nil, higherIsBetter) {
		t.Fatalf("domination must not be symmetric: b should not also dominate a")
	}
	if Dominates(a, a, goals, nil, higherIsBetter) {
		t.Fatalf("a chromosome must not dominate itself")
	}
}

func TestDominatesExcludesSkippedGoals(t *testing.T) {
	goals := []int{0, 1}
	a := map[int]float64{0: 1, 1: 5}
	b := map[int]float64{0: 2, 1: 1}
	skipGoal0 := func(g int) bool { return g == 0 }

	if !Dominates(a, b, goals, skipGoal0, higherIsBetter) {
		t.Fatalf("excluding goal 0 should let a dominate purely on goal 1")
	}
}

func TestFastNonDominatedSortProducesDisjointFronts(t *testing.T) {
	goals := []int{0, 1}
	vectors := []map[int]float64{
		{0: 5, 1: 5}, // front 0: dominates everything else
		{0: 4, 1: 3}, // front 1
		{0: 1, 1: 1}, // front 2
	}
	fronts := FastNonDominatedSort([]int{0, 1, 2}, vectors, goals, nil, higherIsBetter)
	if len(fronts) != 3 {
		t.Fatalf("expected 3 fronts, got %d: %v", len(fronts), fronts)
	}
	if fronts[0][0] != 0 {
		t.Fatalf("expected index 0 in the first front, got %v", fronts[0])
	}
}

func TestSVDScorePrefersNonDominated(t *testing.T) {
	goals := []int{0, 1}
	vectors := []map[int]float64{
		{0: 5, 1: 5},
		{0: 1, 1: 1},
	}
	front := []int{0, 1}
	if SVDScore(0, front, vectors, goals, higherIsBetter) != 0 {
		t.Fatalf("expected the best vector to have SVD score 0")
	}
	if SVDScore(1, front, vectors, goals, higherIsBetter) != 2 {
		t.Fatalf("expected the worst vector to be beaten on both goals")
	}
}

func TestSortFrontBySVDIsAscending(t *testing.T) {
	goals := []int{0, 1}
	vectors := []map[int]float64{
		{0: 1, 1: 1},
		{0: 5, 1: 5},
		{0: 3, 1: 3},
	}
	sorted := SortFrontBySVD(rng.New(7), []int{0, 1, 2}, vectors, goals, higherIsBetter)
	prev := -1
	for _, idx := range sorted {
		score := SVDScore(idx, []int{0, 1, 2}, vectors, goals, higherIsBetter)
		if score < prev {
			t.Fatalf("expected ascending SVD order, got %v", sorted)
		}
		prev = score
	}
}

func TestPreferenceSortOverflowEdgeCase(t *testing.T) {
	goals := []int{0, 1, 2}
	population := []map[int]float64{
		{0: 1, 1: 0, 2: 0},
		{0: 0, 1: 1, 2: 0},
		{0: 0, 1: 0, 2: 1},
	}
	lengths := []int{1, 1, 1}
	fronts := PreferenceSort(population, lengths, goals, nil, higherIsBetter, 2)
	if len(fronts) != 2 {
		t.Fatalf("expected the overflow case to produce exactly 2 fronts, got %d", len(fronts))
	}
	if len(fronts[0]) != 3 {
		t.Fatalf("expected all 3 distinct best individuals in the preferred front, got %v", fronts[0])
	}
	if len(fronts[1]) != 0 {
		t.Fatalf("expected no remaining members once every index is preferred, got %v", fronts[1])
	}
}

func TestPreferenceSortSortsRemainderWhenNoOverflow(t *testing.T) {
	goals := []int{0}
	population := []map[int]float64{
		{0: 5},
		{0: 1},
		{0: 3},
	}
	lengths := []int{1, 1, 1}
	fronts := PreferenceSort(population, lengths, goals, nil, higherIsBetter, 10)
	if len(fronts[0]) != 1 || fronts[0][0] != 0 {
		t.Fatalf("expected index 0 (fitness 5) as the sole preferred member, got %v", fronts[0])
	}
	if len(fronts) < 2 {
		t.Fatalf("expected at least one more front for the remaining members")
	}
}
