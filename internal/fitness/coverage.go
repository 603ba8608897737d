package fitness

import (
	"fmt"
	"math"
	"strings"

	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/trace"
)

// unreachedPenalty is the approach-level contribution assigned when a
// trace carries no approach-level fact for a statement at all (the
// statement's control-dependent region was never reached by any
// instrumented ancestor). Large enough to always rank below any trace
// that reached at least one control-dependent branch.
const unreachedPenalty = 1 << 20

// StatementCoverage rewards executing one statement, scored by the
// standard approach-level-plus-normalized-branch-distance metric:
// fitness is 0 (optimal) once the statement is executed, and grows more
// negative the further the closest miss was from triggering it.
//
// Statement IDs with the "float:" prefix name a guard over a
// floating-point comparison, which the reference host does not yet
// instrument with a branch-distance oracle; those are a genuine stub
// returning errs.ErrNotYetImplemented rather than a silent wrong answer.
type StatementCoverage struct {
	GoalID    int
	Statement trace.StatementID
}

func (g StatementCoverage) Goal() int { return g.GoalID }

func (g StatementCoverage) Fitness(_ chromosome.Chromosome, tr trace.ExecutionTrace) (float64, error) {
	if strings.HasPrefix(string(g.Statement), "float:") {
		return WorstValue, fmt.Errorf("%w: floating-point guard %q", errs.ErrNotYetImplemented, g.Statement)
	}
	if tr.Executed(g.Statement) {
		return 0, nil
	}
	level, ok := tr.ApproachLevels[g.Statement]
	if !ok {
		level = unreachedPenalty
	}
	distance := tr.GuardDistances[g.Statement]
	normalized := distance / (distance + 1)
	return -(float64(level) + normalized), nil
}

func (g StatementCoverage) IsOptimal(f float64) bool { return f >= 0 }

func (g StatementCoverage) Compare(a, b float64) int { return compareFloat64(a, b) }

// BranchCoverage rewards taking one specific arm of one guard, scored by
// the same approach-level-plus-normalized-branch-distance metric as
// StatementCoverage. Added to supplement the coverage-goal taxonomy:
// statement coverage of a guard's own statement is satisfied by reaching
// the guard at all, regardless of which arm is taken, so a complete
// generator needs a distinct goal per arm to ever cover an "else" branch.
type BranchCoverage struct {
	GoalID int
	Branch trace.BranchID
}

func (g BranchCoverage) Goal() int { return g.GoalID }

func (g BranchCoverage) Fitness(_ chromosome.Chromosome, tr trace.ExecutionTrace) (float64, error) {
	if tr.Taken(g.Branch) {
		return 0, nil
	}
	level, ok := tr.ApproachLevels[g.Branch.Statement]
	if !ok {
		level = unreachedPenalty
	}
	// GuardDistances stores how far the guard's condition missed being
	// true; missing the false arm (the guard evaluated true) is the same
	// miss viewed from the opposite arm, so both arms normalize the same
	// unsigned magnitude.
	distance := math.Abs(tr.GuardDistances[g.Branch.Statement])
	normalized := distance / (distance + 1)
	return -(float64(level) + normalized), nil
}

func (g BranchCoverage) IsOptimal(f float64) bool { return f >= 0 }

func (g BranchCoverage) Compare(a, b float64) int { return compareFloat64(a, b) }
