package fitness

import (
	"errors"
	"testing"

	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/trace"
)

func TestOneMax(t *testing.T) {
	g := OneMax{GoalID: 0, Length: 4}
	c := chromosome.NewBitString([]bool{true, true, false, true}, nil, nil)
	f, err := g.Fitness(c, trace.NewExecutionTrace())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 3 {
		t.Fatalf("got %v, want 3", f)
	}
	if g.IsOptimal(f) {
		t.Fatalf("3/4 set bits should not be optimal")
	}
	full := chromosome.NewBitString([]bool{true, true, true, true}, nil, nil)
	f2, _ := g.Fitness(full, trace.NewExecutionTrace())
	if !g.IsOptimal(f2) {
		t.Fatalf("4/4 set bits should be optimal")
	}
	if g.Compare(f2, f) <= 0 {
		t.Fatalf("expected %v to be better than %v", f2, f)
	}
}

func TestSingleBit(t *testing.T) {
	g := SingleBit{GoalID: 1, K: 2}
	c := chromosome.NewBitString([]bool{false, false, true, false}, nil, nil)
	f, err := g.Fitness(c, trace.NewExecutionTrace())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsOptimal(f) {
		t.Fatalf("expected gene 2 to satisfy the goal")
	}
}

func TestStatementCoverageExecuted(t *testing.T) {
	g := StatementCoverage{GoalID: 2, Statement: "s1"}
	tr := trace.NewExecutionTrace()
	tr.ExecutedStatements["s1"] = struct{}{}
	f, err := g.Fitness(nil, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsOptimal(f) {
		t.Fatalf("executed statement should be optimal, got %v", f)
	}
}

func TestStatementCoverageMissed(t *testing.T) {
	g := StatementCoverage{GoalID: 2, Statement: "s2"}
	tr := trace.NewExecutionTrace()
	tr.ApproachLevels["s2"] = 1
	tr.GuardDistances["s2"] = 3
	f, err := g.Fitness(nil, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsOptimal(f) {
		t.Fatalf("missed statement should not be optimal")
	}
	if f >= 0 {
		t.Fatalf("expected negative fitness for a miss, got %v", f)
	}
}

func TestStatementCoverageFloatGuardNotYetImplemented(t *testing.T) {
	g := StatementCoverage{GoalID: 3, Statement: "float:guard7"}
	_, err := g.Fitness(nil, trace.NewExecutionTrace())
	if !errors.Is(err, errs.ErrNotYetImplemented) {
		t.Fatalf("expected ErrNotYetImplemented, got %v", err)
	}
}

func TestBranchCoverage(t *testing.T) {
	branch := trace.BranchID{Statement: "s3", TrueArm: true}
	g := BranchCoverage{GoalID: 4, Branch: branch}

	tr := trace.NewExecutionTrace()
	tr.TakenBranches[branch] = struct{}{}
	f, err := g.Fitness(nil, tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsOptimal(f) {
		t.Fatalf("taken branch should be optimal")
	}

	missedTrace := trace.NewExecutionTrace()
	missedTrace.GuardDistances["s3"] = 2
	fMissed, err := g.Fitness(nil, missedTrace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsOptimal(fMissed) {
		t.Fatalf("untaken branch should not be optimal")
	}
	if g.Compare(f, fMissed) <= 0 {
		t.Fatalf("taken branch fitness %v should beat missed branch fitness %v", f, fMissed)
	}
}
