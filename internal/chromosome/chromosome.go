// Package chromosome implements the genotype model shared by every search
// algorithm: immutable, variable- or fixed-length gene sequences, their
// variation operators, and the generators that produce random initial
// chromosomes. Chromosomes carry references to their mutation and
// crossover operators purely for dispatch on variant — the operators
// themselves are stateless — mirroring how the teacher's expr.ExprNode
// variants dispatch through a shared interface rather than a type switch
// at every call site.
package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// Chromosome is a candidate solution: an ordered sequence of genes.
// Implementations are immutable after construction; Mutate and Crossover
// always return fresh values.
type Chromosome interface {
	// Len returns the number of genes.
	Len() int
	// Mutate returns a new chromosome produced by this chromosome's
	// mutation operator.
	Mutate(r *rng.Source) Chromosome
	// Crossover returns two offspring produced by this chromosome's
	// crossover operator, recombining with other.
	Crossover(r *rng.Source, other Chromosome) (Chromosome, Chromosome)
	// Clone returns a deep, independent copy.
	Clone() Chromosome
}

// Mutation is a stateless mutation operator dispatched on chromosome
// variant.
type Mutation interface {
	Mutate(r *rng.Source, c Chromosome) Chromosome
}

// Crossover is a stateless crossover operator dispatched on chromosome
// variant.
type Crossover interface {
	Cross(r *rng.Source, a, b Chromosome) (Chromosome, Chromosome)
}

// Generator produces random initial chromosomes of one genotype.
type Generator interface {
	Generate(r *rng.Source) Chromosome
}
