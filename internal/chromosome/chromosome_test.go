package chromosome

import (
	"testing"

	"github.com/whiskergen/searchcore/internal/rng"
)

func TestBitStringLenAndClone(t *testing.T) {
	b := NewBitString([]bool{true, false, true}, nil, nil)
	if b.Len() != 3 {
		t.Fatalf("expected length 3, got %d", b.Len())
	}
	clone := b.Clone().(*BitString)
	clone.Genes[0] = false
	if b.Genes[0] != true {
		t.Fatalf("Clone must be independent of the original's gene slice")
	}
}

func TestBitflipMutationPreservesLength(t *testing.T) {
	r := rng.New(1)
	b := NewBitString([]bool{true, true, true, true, true}, nil, nil)
	for i := 0; i < 20; i++ {
		m := b.Mutate(r)
		if m.Len() != b.Len() {
			t.Fatalf("mutation must preserve length, got %d want %d", m.Len(), b.Len())
		}
	}
}

func TestBitflipMutationOnEmptyChromosome(t *testing.T) {
	r := rng.New(1)
	b := NewBitString(nil, nil, nil)
	m := b.Mutate(r)
	if m.Len() != 0 {
		t.Fatalf("mutating an empty chromosome should stay empty, got %d", m.Len())
	}
}

func TestIntegerListMutationStaysInRange(t *testing.T) {
	r := rng.New(2)
	l := NewIntegerList([]int{5, 6, 7, 8}, 5, 10, nil, nil)
	for i := 0; i < 50; i++ {
		m := l.Mutate(r).(*IntegerList)
		for _, g := range m.Genes {
			if g < 5 || g >= 10 {
				t.Fatalf("mutated gene %d outside [5,10)", g)
			}
		}
	}
}

func TestSinglePointCrossoverPreservesParentLengths(t *testing.T) {
	r := rng.New(3)
	a := NewBitString([]bool{true, true, true, true}, nil, nil)
	b := NewBitString([]bool{false, false, false, false, false, false}, nil, nil)

	o1, o2 := a.Crossover(r, b)
	if o1.Len() != a.Len() {
		t.Fatalf("first offspring should keep first parent's length, got %d want %d", o1.Len(), a.Len())
	}
	if o2.Len() != b.Len() {
		t.Fatalf("second offspring should keep second parent's length, got %d want %d", o2.Len(), b.Len())
	}
}

func TestSinglePointRelativeCrossoverConservesGeneCount(t *testing.T) {
	r := rng.New(4)
	p1 := NewBitString([]bool{true, true}, nil, SinglePointRelativeCrossover{})
	p2 := NewBitString([]bool{false, false, false, false}, nil, SinglePointRelativeCrossover{})

	for i := 0; i < 50; i++ {
		o1, o2 := p1.Crossover(r, p2)
		totalLen := o1.Len() + o2.Len()
		if totalLen != p1.Len()+p2.Len() {
			t.Fatalf("expected |o1|+|o2| = %d, got %d", p1.Len()+p2.Len(), totalLen)
		}
		maxParent := p1.Len()
		if p2.Len() > maxParent {
			maxParent = p2.Len()
		}
		if o1.Len() > maxParent || o2.Len() > maxParent {
			t.Fatalf("offspring must not exceed max parent length %d, got %d and %d", maxParent, o1.Len(), o2.Len())
		}

		trueCount := 0
		falseCount := 0
		for _, b := range o1.(*BitString).Genes {
			if b {
				trueCount++
			} else {
				falseCount++
			}
		}
		for _, b := range o2.(*BitString).Genes {
			if b {
				trueCount++
			} else {
				falseCount++
			}
		}
		if trueCount != 2 || falseCount != 4 {
			t.Fatalf("gene multiset must be conserved: expected 2 true, 4 false, got %d true, %d false", trueCount, falseCount)
		}
	}
}

func TestVariableLengthMutationStaysBounded(t *testing.T) {
	r := rng.New(5)
	events := []InputEvent{{Kind: EventClick}, {Kind: EventClick}, {Kind: EventClick}}
	tc := NewTestChromosome(events, []string{"sprite1"}, []EventKind{EventClick, EventKeyPress}, nil, nil)

	mut := VariableLengthMutation{ReplaceP: 0.34, InsertP: 0.33, DeleteP: 0.33, Alpha: 0.5}
	cur := Chromosome(tc)
	for i := 0; i < 30; i++ {
		cur = mut.Mutate(r, cur)
		if cur.Len() < 0 {
			t.Fatalf("length cannot go negative")
		}
	}
}

func TestVariableLengthMutationOnEmptyChromosomeCanOnlyInsert(t *testing.T) {
	r := rng.New(6)
	tc := NewTestChromosome(nil, []string{"s"}, []EventKind{EventClick}, nil, nil)
	mut := VariableLengthMutation{ReplaceP: 0.34, InsertP: 0.33, DeleteP: 0.33, Alpha: 0.0}
	m := mut.Mutate(r, tc)
	if m.Len() > 1 {
		t.Fatalf("a single mutation of an empty chromosome can grow it by at most one gene, got %d", m.Len())
	}
}

func TestBitStringGeneratorProducesRequestedLength(t *testing.T) {
	r := rng.New(7)
	g := BitStringGenerator{Length: 12}
	c := g.Generate(r)
	if c.Len() != 12 {
		t.Fatalf("expected generated length 12, got %d", c.Len())
	}
}

func TestIntegerListGeneratorRespectsRange(t *testing.T) {
	r := rng.New(8)
	g := IntegerListGenerator{Length: 20, Min: -5, Max: 5}
	c := g.Generate(r).(*IntegerList)
	for _, v := range c.Genes {
		if v < -5 || v >= 5 {
			t.Fatalf("generated gene %d outside [-5,5)", v)
		}
	}
}

func TestTestChromosomeGeneratorRespectsInitLength(t *testing.T) {
	r := rng.New(9)
	g := TestChromosomeGenerator{
		InitLength:  5,
		ActuatorIDs: []string{"a", "b"},
		EventKinds:  []EventKind{EventClick, EventKeyPress, EventSlider, EventBoolToggle},
	}
	c := g.Generate(r)
	if c.Len() != 5 {
		t.Fatalf("expected init length 5, got %d", c.Len())
	}
}

func TestSignatureIsStableAcrossClones(t *testing.T) {
	a := NewBitString([]bool{true, false, true}, nil, nil)
	b := a.Clone()
	if Signature(a) != Signature(b) {
		t.Fatalf("equal-gene chromosomes must share a signature")
	}

	diff := NewBitString([]bool{true, false, false}, nil, nil)
	if Signature(a) == Signature(diff) {
		t.Fatalf("differing genes must not share a signature")
	}
}

func TestSignatureDistinguishesVariants(t *testing.T) {
	bs := NewBitString([]bool{true}, nil, nil)
	il := NewIntegerList([]int{1}, 0, 2, nil, nil)
	if Signature(bs) == Signature(il) {
		t.Fatalf("different genotypes must not collide in signature space")
	}
}
