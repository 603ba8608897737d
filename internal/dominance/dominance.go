// Package dominance implements preference-restricted dominance, fast
// non-dominated sorting, and sub-vector dominance (SVD) scoring — the
// many-objective machinery MOSA needs to rank a population by more than
// one goal at once (spec.md §4.7.3). It operates on raw fitness vectors
// (map[int]float64 keyed by goal) rather than on chromosome.Chromosome
// or fitness.Function directly, so it carries no dependency on either:
// the caller supplies a Comparator closing over whichever
// fitness.Function.Compare applies to each goal.
package dominance

import "github.com/whiskergen/searchcore/internal/rng"

// Comparator reports whether a is better than b for goal: >0 means a is
// better, <0 means b is better, 0 means equal. Callers typically close
// over a map[int]fitness.Function and delegate to Function.Compare.
type Comparator func(goal int, a, b float64) int

// Dominates reports whether vector a dominates vector b restricted to
// goals: a is no worse than b on every listed goal and strictly better
// on at least one. Goals for which skip reports true are excluded from
// the comparison entirely — the defining property of preference
// sorting, which restricts dominance to goals without an archive entry.
func Dominates(a, b map[int]float64, goals []int, skip func(goal int) bool, cmp Comparator) bool {
	betterOnAtLeastOne := false
	for _, g := range goals {
		if skip != nil && skip(g) {
			continue
		}
		switch c := cmp(g, a[g], b[g]); {
		case c < 0:
			return false
		case c > 0:
			betterOnAtLeastOne = true
		}
	}
	return betterOnAtLeastOne
}

// FastNonDominatedSort partitions indices into successive fronts: front 0
// is dominated by nothing in indices, front 1 is dominated only by
// members of front 0, and so on. vectors is indexed by the values found
// in indices, not by position.
func FastNonDominatedSort(indices []int, vectors []map[int]float64, goals []int, skip func(goal int) bool, cmp Comparator) [][]int {
	n := len(indices)
	dominatedCount := make([]int, n)
	dominatesSet := make([][]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch {
			case Dominates(vectors[indices[i]], vectors[indices[j]], goals, skip, cmp):
				dominatesSet[i] = append(dominatesSet[i], j)
			case Dominates(vectors[indices[j]], vectors[indices[i]], goals, skip, cmp):
				dominatedCount[i]++
			}
		}
	}

	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if dominatedCount[i] == 0 {
			current = append(current, i)
		}
	}

	var fronts [][]int
	for len(current) > 0 {
		front := make([]int, len(current))
		for k, i := range current {
			front[k] = indices[i]
		}
		fronts = append(fronts, front)

		var next []int
		for _, i := range current {
			for _, j := range dominatesSet[i] {
				dominatedCount[j]--
				if dominatedCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}
	return fronts
}

// SVDScore computes the sub-vector dominance score of population member
// idx against its peers in front: for every other member b, count the
// goals on which b beats idx, then take the maximum such count across
// all peers. Lower is better (spec.md §4.7.3, GLOSSARY).
func SVDScore(idx int, front []int, vectors []map[int]float64, goals []int, cmp Comparator) int {
	maxCount := 0
	for _, peer := range front {
		if peer == idx {
			continue
		}
		count := 0
		for _, g := range goals {
			if cmp(g, vectors[peer][g], vectors[idx][g]) > 0 {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
		}
	}
	return maxCount
}

// SortFrontBySVD shuffles front with r and then stable-sorts it ascending
// by SVD score, so ties that SVDScore cannot break are resolved by the
// run's single PRNG rather than by index order (spec.md §4.7.3: "ties on
// SVD are broken by a prior random shuffle").
func SortFrontBySVD(r *rng.Source, front []int, vectors []map[int]float64, goals []int, cmp Comparator) []int {
	shuffled := append([]int{}, front...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	scores := make(map[int]int, len(shuffled))
	for _, idx := range shuffled {
		scores[idx] = SVDScore(idx, shuffled, vectors, goals, cmp)
	}
	stableInsertionSortBySVD(shuffled, scores)
	return shuffled
}

// stableInsertionSortBySVD sorts in place, ascending by score, preserving
// the relative order of equal-scoring elements from the pre-shuffled
// input (insertion sort is the simplest stable sort for the population
// sizes MOSA fronts actually reach).
func stableInsertionSortBySVD(items []int, scores map[int]int) {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && scores[items[j-1]] > scores[items[j]] {
			items[j-1], items[j] = items[j], items[j-1]
			j--
		}
	}
}

// PreferenceSort implements MOSA's preference sorting (spec.md §4.7.3):
// for every goal not in covered, the single best member of the
// population (by cmp, ties broken by shorter length) joins the preferred
// front, each member appearing at most once even if it is best for
// several goals. If the preferred front already exceeds targetSize, the
// spec's preserved edge case applies: every remaining member is appended
// as one unsorted trailing front instead of being non-dominated sorted.
// Otherwise the remaining members are fast non-dominated sorted
// restricted to the uncovered goals, and those fronts follow the
// preferred front.
func PreferenceSort(population []map[int]float64, lengths []int, goals []int, covered func(goal int) bool, cmp Comparator, targetSize int) [][]int {
	n := len(population)
	inPreferred := make([]bool, n)
	var preferred []int

	for _, g := range goals {
		if covered != nil && covered(g) {
			continue
		}
		best := -1
		for i := 0; i < n; i++ {
			if best == -1 {
				best = i
				continue
			}
			c := cmp(g, population[i][g], population[best][g])
			if c > 0 || (c == 0 && lengths[i] < lengths[best]) {
				best = i
			}
		}
		if best >= 0 && !inPreferred[best] {
			inPreferred[best] = true
			preferred = append(preferred, best)
		}
	}

	var remaining []int
	for i := 0; i < n; i++ {
		if !inPreferred[i] {
			remaining = append(remaining, i)
		}
	}

	fronts := [][]int{preferred}
	if len(preferred) > targetSize {
		fronts = append(fronts, remaining)
		return fronts
	}

	skip := func(g int) bool { return covered != nil && covered(g) }
	fronts = append(fronts, FastNonDominatedSort(remaining, population, goals, skip, cmp)...)
	return fronts
}
