// Package selection implements the parent-selection operators used by
// search.MOSA, search.SimpleGA, and any algorithm that must pick one
// member of a ranked population (spec.md §4.5). Both operators work
// against a Ranking accessor rather than a concrete Fitness struct,
// since MOSA orders its population by dominance rank and sub-vector
// dominance score while SimpleGA orders by a single scalar —
// grounded on the teacher's sort.Slice-driven tournamentSelect in
// pkg/strategy/tournament.go, generalized from "sort by one float field"
// to "compare any two indices".
package selection

import (
	"sort"

	"github.com/whiskergen/searchcore/internal/rng"
)

// Ranking exposes a population of size Len, ordered by Better: Better(i,
// j) reports whether population member i should be preferred over j.
type Ranking interface {
	Len() int
	Better(i, j int) bool
}

// Operator picks one member index from a Ranking.
type Operator interface {
	Select(r *rng.Source, ranking Ranking) int
}

// RankSelection sorts the population best-first via Ranking.Better and
// picks one member with probability proportional to its rank position:
// of n members the best has weight n, the next n-1, down to 1 for the
// worst, so the best is picked with probability 2/(n+1). One draw in
// [0, n(n+1)/2) is walked down the sorted pool.
type RankSelection struct{}

func (RankSelection) Select(r *rng.Source, ranking Ranking) int {
	n := ranking.Len()
	if n <= 0 {
		return -1
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	sort.SliceStable(pool, func(i, j int) bool { return ranking.Better(pool[i], pool[j]) })
	pick := r.NextIntn(0, n*(n+1)/2)
	for len(pool) > 1 && pick >= len(pool) {
		pick -= len(pool)
		pool = pool[1:]
	}
	return pool[0]
}

// TournamentSelection draws K candidates uniformly at random (with
// replacement) and returns the best of them, per spec.md §4.5. Grounded
// on the teacher's tournamentSelect in pkg/strategy/tournament.go.
type TournamentSelection struct {
	K int
}

func (t TournamentSelection) Select(r *rng.Source, ranking Ranking) int {
	n := ranking.Len()
	if n <= 0 {
		return -1
	}
	k := t.K
	if k < 1 {
		k = 1
	}
	best := r.NextIntn(0, n)
	for i := 1; i < k; i++ {
		candidate := r.NextIntn(0, n)
		if ranking.Better(candidate, best) {
			best = candidate
		}
	}
	return best
}
