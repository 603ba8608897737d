package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// BitStringGenerator produces random fixed-length BitStrings.
type BitStringGenerator struct {
	Length    int
	Mutation  Mutation
	Crossover Crossover
}

func (g BitStringGenerator) Generate(r *rng.Source) Chromosome {
	genes := make([]bool, g.Length)
	for i := range genes {
		genes[i] = r.NextBool()
	}
	return NewBitString(genes, g.Mutation, g.Crossover)
}

// IntegerListGenerator produces random fixed-length IntegerLists with
// genes drawn from [Min, Max).
type IntegerListGenerator struct {
	Length, Min, Max int
	Mutation         Mutation
	Crossover        Crossover
}

func (g IntegerListGenerator) Generate(r *rng.Source) Chromosome {
	genes := make([]int, g.Length)
	for i := range genes {
		genes[i] = r.NextIntn(g.Min, g.Max)
	}
	return NewIntegerList(genes, g.Min, g.Max, g.Mutation, g.Crossover)
}

// TestChromosomeGenerator produces random variable-length TestChromosomes
// seeded at InitLength, drawing events from the configured actuator/kind
// universe. Mutation and Crossover are forwarded to NewTestChromosome
// unchanged (nil picks that constructor's defaults), so callers wiring a
// Configuration's chosen operators need only set these two fields.
type TestChromosomeGenerator struct {
	InitLength  int
	ActuatorIDs []string
	EventKinds  []EventKind
	Mutation    Mutation
	Crossover   Crossover
}

func (g TestChromosomeGenerator) Generate(r *rng.Source) Chromosome {
	t := NewTestChromosome(nil, g.ActuatorIDs, g.EventKinds, g.Mutation, g.Crossover)
	events := make([]InputEvent, g.InitLength)
	for i := range events {
		events[i] = t.randomEvent(r)
	}
	return t.withEvents(events)
}
