package selection

import (
	"testing"

	"github.com/whiskergen/searchcore/internal/rng"
)

type floatRanking []float64

func (f floatRanking) Len() int           { return len(f) }
func (f floatRanking) Better(i, j int) bool { return f[i] > f[j] }

func TestTournamentSelectionPrefersBetter(t *testing.T) {
	r := rng.New(1)
	ranking := floatRanking{0, 1, 2, 3, 100}
	op := TournamentSelection{K: 5}
	idx := op.Select(r, ranking)
	if idx != 4 {
		t.Fatalf("a five-draw tournament with this seed should return the best index 4, got %d", idx)
	}
}

func TestRankSelectionReturnsValidIndex(t *testing.T) {
	r := rng.New(2)
	ranking := floatRanking{5, 1, 9, 3}
	op := RankSelection{}
	for i := 0; i < 20; i++ {
		idx := op.Select(r, ranking)
		if idx < 0 || idx >= ranking.Len() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

// TestRankSelectionFavoursRankOverRawBest checks that rank selection
// spreads its picks by rank instead of always returning the top member:
// over 64 members the best has weight 64 of 2080 (about 3%), well under
// the 15% bound, whereas a knockout bracket over the whole population
// would return the best every time.
func TestRankSelectionFavoursRankOverRawBest(t *testing.T) {
	r := rng.New(11)
	const n = 64
	ranking := make(floatRanking, n)
	for i := range ranking {
		ranking[i] = float64(i)
	}
	op := RankSelection{}

	const trials = 4000
	bestCount := 0
	for i := 0; i < trials; i++ {
		if op.Select(r, ranking) == n-1 {
			bestCount++
		}
	}
	bestFraction := float64(bestCount) / float64(trials)
	if bestFraction > 0.15 {
		t.Fatalf("best-ranked member selected in %.2f%% of %d trials over a population of %d; "+
			"rank-proportional selection picks the single best with probability 2/(n+1), "+
			"far below the 15%% bound", bestFraction*100, trials, n)
	}
}

// TestRankSelectionHandlesSingleMember checks the smallest non-empty
// ranking: a one-member population must always yield index 0.
func TestRankSelectionHandlesSingleMember(t *testing.T) {
	r := rng.New(4)
	ranking := floatRanking{42}
	if idx := (RankSelection{}).Select(r, ranking); idx != 0 {
		t.Fatalf("expected the only index 0, got %d", idx)
	}
}

func TestSelectOnEmptyRanking(t *testing.T) {
	r := rng.New(3)
	empty := floatRanking{}
	if idx := (TournamentSelection{K: 3}).Select(r, empty); idx != -1 {
		t.Fatalf("expected -1 for an empty ranking, got %d", idx)
	}
	if idx := (RankSelection{}).Select(r, empty); idx != -1 {
		t.Fatalf("expected -1 for an empty ranking, got %d", idx)
	}
}
