package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// BitString is a fixed-length sequence of boolean genes.
type BitString struct {
	Genes     []bool
	mutation  Mutation
	crossover Crossover
}

// NewBitString constructs a BitString wired to the given operators. A nil
// mutation or crossover defaults to BitflipMutation/SinglePointCrossover,
// the canonical pairing for this genotype.
func NewBitString(genes []bool, mutation Mutation, crossover Crossover) *BitString {
	if mutation == nil {
		mutation = BitflipMutation{}
	}
	if crossover == nil {
		crossover = SinglePointCrossover{}
	}
	copied := make([]bool, len(genes))
	copy(copied, genes)
	return &BitString{Genes: copied, mutation: mutation, crossover: crossover}
}

func (b *BitString) Len() int { return len(b.Genes) }

func (b *BitString) Clone() Chromosome {
	return NewBitString(b.Genes, b.mutation, b.crossover)
}

func (b *BitString) Mutate(r *rng.Source) Chromosome {
	return b.mutation.Mutate(r, b)
}

func (b *BitString) Crossover(r *rng.Source, other Chromosome) (Chromosome, Chromosome) {
	return b.crossover.Cross(r, b, other)
}

// withGenes returns a new BitString sharing this one's operators.
func (b *BitString) withGenes(genes []bool) *BitString {
	return NewBitString(genes, b.mutation, b.crossover)
}
