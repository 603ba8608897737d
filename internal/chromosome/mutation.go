package chromosome

import "github.com/whiskergen/searchcore/internal/rng"

// BitflipMutation flips each gene independently with probability 1/n,
// where n is the chromosome length (spec.md §4.2).
type BitflipMutation struct{}

func (BitflipMutation) Mutate(r *rng.Source, c Chromosome) Chromosome {
	b, ok := c.(*BitString)
	if !ok {
		return c.Clone()
	}
	n := len(b.Genes)
	if n == 0 {
		return b.Clone()
	}
	p := 1.0 / float64(n)
	genes := make([]bool, n)
	copy(genes, b.Genes)
	for i := range genes {
		if r.NextFloat64() < p {
			genes[i] = !genes[i]
		}
	}
	return b.withGenes(genes)
}

// IntegerListMutation replaces each gene with a uniform draw in [Min,Max)
// with probability 1/n (spec.md §4.2).
type IntegerListMutation struct{}

func (IntegerListMutation) Mutate(r *rng.Source, c Chromosome) Chromosome {
	l, ok := c.(*IntegerList)
	if !ok {
		return c.Clone()
	}
	n := len(l.Genes)
	if n == 0 {
		return l.Clone()
	}
	p := 1.0 / float64(n)
	genes := make([]int, n)
	copy(genes, l.Genes)
	for i := range genes {
		if r.NextFloat64() < p {
			genes[i] = r.NextIntn(l.Min, l.Max)
		}
	}
	return l.withGenes(genes)
}

// VariableLengthMutation may replace a gene, insert a new random gene at
// a random index, or delete a gene, bounded by the chromosome's current
// length and biased by Alpha toward growth (Alpha>0.5) or shrinkage
// (Alpha<0.5) (spec.md §4.2). Probabilities are evaluated once per call,
// matching the reference algorithm's "pick one of three actions" shape
// rather than a per-gene sweep, since insertion/deletion change length
// and a per-gene sweep would have to re-derive n mid-iteration.
type VariableLengthMutation struct {
	ReplaceP, InsertP, DeleteP float64
	Alpha                      float64
}

func (m VariableLengthMutation) Mutate(r *rng.Source, c Chromosome) Chromosome {
	t, ok := c.(*TestChromosome)
	if !ok {
		return c.Clone()
	}
	n := len(t.Events)
	total := m.ReplaceP + m.InsertP + m.DeleteP
	if total <= 0 {
		total = 1
	}
	roll := r.NextFloat64() * total

	events := make([]InputEvent, n)
	copy(events, t.Events)

	switch {
	case roll < m.ReplaceP && n > 0:
		idx := r.NextIntn(0, n)
		events[idx] = t.randomEvent(r)
	case roll < m.ReplaceP+m.InsertP:
		// Bias toward insertion when Alpha favours growth; always allowed
		// to insert into an empty chromosome regardless of Alpha.
		if n > 0 && r.NextFloat64() > m.Alpha {
			break
		}
		idx := r.NextIntn(0, n+1)
		newEvent := t.randomEvent(r)
		grown := make([]InputEvent, 0, n+1)
		grown = append(grown, events[:idx]...)
		grown = append(grown, newEvent)
		grown = append(grown, events[idx:]...)
		events = grown
	default:
		if n == 0 {
			break
		}
		// Bias toward deletion when Alpha favours shrinkage.
		if r.NextFloat64() > 1-m.Alpha {
			break
		}
		idx := r.NextIntn(0, n)
		events = append(events[:idx], events[idx+1:]...)
	}
	return t.withEvents(events)
}
