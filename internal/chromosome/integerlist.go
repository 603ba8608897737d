package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// IntegerList is a fixed-length sequence of integer genes drawn from a
// closed-open range [Min, Max).
type IntegerList struct {
	Genes     []int
	Min, Max  int
	mutation  Mutation
	crossover Crossover
}

// NewIntegerList constructs an IntegerList wired to the given operators.
// A nil mutation or crossover defaults to IntegerListMutation/SinglePointCrossover.
func NewIntegerList(genes []int, min, max int, mutation Mutation, crossover Crossover) *IntegerList {
	if mutation == nil {
		mutation = IntegerListMutation{}
	}
	if crossover == nil {
		crossover = SinglePointCrossover{}
	}
	copied := make([]int, len(genes))
	copy(copied, genes)
	return &IntegerList{Genes: copied, Min: min, Max: max, mutation: mutation, crossover: crossover}
}

func (l *IntegerList) Len() int { return len(l.Genes) }

func (l *IntegerList) Clone() Chromosome {
	return NewIntegerList(l.Genes, l.Min, l.Max, l.mutation, l.crossover)
}

func (l *IntegerList) Mutate(r *rng.Source) Chromosome {
	return l.mutation.Mutate(r, l)
}

func (l *IntegerList) Crossover(r *rng.Source, other Chromosome) (Chromosome, Chromosome) {
	return l.crossover.Cross(r, l, other)
}

func (l *IntegerList) withGenes(genes []int) *IntegerList {
	return NewIntegerList(genes, l.Min, l.Max, l.mutation, l.crossover)
}
