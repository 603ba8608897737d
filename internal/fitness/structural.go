package fitness

import (
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/trace"
)

// OneMax rewards a BitString for the count of true genes: the canonical
// smoke-test goal for the chromosome and variation-operator machinery,
// independent of any ExecutionHost. Fitness equals the number of set
// bits, optimal once every gene is true.
type OneMax struct {
	GoalID int
	Length int
}

func (g OneMax) Goal() int { return g.GoalID }

func (g OneMax) Fitness(c chromosome.Chromosome, _ trace.ExecutionTrace) (float64, error) {
	b, ok := c.(*chromosome.BitString)
	if !ok {
		return WorstValue, nil
	}
	count := 0
	for _, gene := range b.Genes {
		if gene {
			count++
		}
	}
	return float64(count), nil
}

func (g OneMax) IsOptimal(f float64) bool { return f >= float64(g.Length) }

func (g OneMax) Compare(a, b float64) int { return compareFloat64(a, b) }

// SingleBit rewards a BitString for the value of one specific gene,
// independent of every other gene: the standard counterexample goal used
// to exercise per-goal independence in an archive (one per bit position).
type SingleBit struct {
	GoalID int
	K      int
}

func (g SingleBit) Goal() int { return g.GoalID }

func (g SingleBit) Fitness(c chromosome.Chromosome, _ trace.ExecutionTrace) (float64, error) {
	b, ok := c.(*chromosome.BitString)
	if !ok || g.K < 0 || g.K >= len(b.Genes) {
		return WorstValue, nil
	}
	if b.Genes[g.K] {
		return 1, nil
	}
	return 0, nil
}

func (g SingleBit) IsOptimal(f float64) bool { return f >= 1 }

func (g SingleBit) Compare(a, b float64) int { return compareFloat64(a, b) }
