package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// SinglePointCrossover picks one cut point in the shorter parent and
// swaps tails, producing two offspring of the original parent lengths
// (spec.md §4.2). Grounded on the teacher's crossoverTrees node-swap in
// pkg/strategy/crossover.go, generalized from swapping one tree node to
// splicing a slice at a cut point.
type SinglePointCrossover struct{}

func (SinglePointCrossover) Cross(r *rng.Source, a, b Chromosome) (Chromosome, Chromosome) {
	switch x := a.(type) {
	case *BitString:
		y, ok := b.(*BitString)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := singlePointSplice(r, x.Genes, y.Genes)
		return x.withGenes(g1), y.withGenes(g2)
	case *IntegerList:
		y, ok := b.(*IntegerList)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := singlePointSplice(r, x.Genes, y.Genes)
		return x.withGenes(g1), y.withGenes(g2)
	case *TestChromosome:
		y, ok := b.(*TestChromosome)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := singlePointSplice(r, x.Events, y.Events)
		return x.withEvents(g1), y.withEvents(g2)
	default:
		return a.Clone(), b.Clone()
	}
}

// singlePointSplice implements the shared single-point cut-and-swap for
// any gene slice type: pick a cut point bounded by the shorter parent,
// then exchange the genes before the cut, so each offspring keeps its own
// parent's tail and therefore that parent's length.
func singlePointSplice[T any](r *rng.Source, p1, p2 []T) ([]T, []T) {
	shorter := len(p1)
	if len(p2) < shorter {
		shorter = len(p2)
	}
	if shorter == 0 {
		return append([]T{}, p1...), append([]T{}, p2...)
	}
	cut := r.NextIntn(0, shorter)

	o1 := make([]T, 0, len(p1))
	o1 = append(o1, p2[:cut]...)
	o1 = append(o1, p1[cut:]...)

	o2 := make([]T, 0, len(p2))
	o2 = append(o2, p1[:cut]...)
	o2 = append(o2, p2[cut:]...)

	return o1, o2
}

// SinglePointRelativeCrossover picks a relative cut point r in (0,1) and
// cuts each parent at floor(r*len(parent)), so offspring lengths satisfy
// |o1|+|o2| = |p1|+|p2| and neither offspring exceeds max(|p1|,|p2|), with
// the gene multiset of the two parents conserved across the two
// offspring (spec.md §4.2, testable property 3).
type SinglePointRelativeCrossover struct{}

func (SinglePointRelativeCrossover) Cross(r *rng.Source, a, b Chromosome) (Chromosome, Chromosome) {
	switch x := a.(type) {
	case *BitString:
		y, ok := b.(*BitString)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := relativeSplice(r, x.Genes, y.Genes)
		return x.withGenes(g1), y.withGenes(g2)
	case *IntegerList:
		y, ok := b.(*IntegerList)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := relativeSplice(r, x.Genes, y.Genes)
		return x.withGenes(g1), y.withGenes(g2)
	case *TestChromosome:
		y, ok := b.(*TestChromosome)
		if !ok {
			return a.Clone(), b.Clone()
		}
		g1, g2 := relativeSplice(r, x.Events, y.Events)
		return x.withEvents(g1), y.withEvents(g2)
	default:
		return a.Clone(), b.Clone()
	}
}

// relativeSplice cuts each parent at floor(ratio*len(parent)) for a single
// shared ratio, then swaps tails: o1 = p1[:cut1]+p2[cut2:], o2 =
// p2[:cut2]+p1[cut1:]. This conserves the total gene count across the two
// offspring (|o1|+|o2| = |p1|+|p2|) and bounds each offspring by
// max(|p1|,|p2|), since every offspring gene comes from exactly one
// parent position and no position is used twice.
func relativeSplice[T any](r *rng.Source, p1, p2 []T) ([]T, []T) {
	ratio := r.NextFloat64()
	for ratio == 0 {
		ratio = r.NextFloat64()
	}
	cut1 := int(ratio * float64(len(p1)))
	cut2 := int(ratio * float64(len(p2)))

	o1 := make([]T, 0, len(p1))
	o1 = append(o1, p1[:cut1]...)
	o1 = append(o1, p2[cut2:]...)

	o2 := make([]T, 0, len(p2))
	o2 = append(o2, p2[:cut2]...)
	o2 = append(o2, p1[cut1:]...)

	return o1, o2
}
