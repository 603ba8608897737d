// Package refhost is the bundled reference ExecutionHost: a small
// interpreter over a toy block-program IR (a flat list of guarded
// statements over integer and boolean input events) used by the test
// suite and the CLI's simulate subcommand. It is not the real
// Scratch/Whisker VM — production callers supply their own
// execution.Host backed by the real interpreter.
package refhost

import (
	"context"
	"fmt"
	"math"

	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/execution"
	"github.com/whiskergen/searchcore/internal/fitness"
	"github.com/whiskergen/searchcore/internal/trace"
)

// Comparator identifies the relational test a Guard performs.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNeq
	CmpLt
	CmpLte
	CmpGt
	CmpGte
	CmpIsTrue
	CmpIsFalse
)

// Guard is a single relational test over one actuator's current value,
// the toy analogue of a Scratch "if" block's boolean reporter.
type Guard struct {
	ActuatorID string
	Comparator Comparator
	Operand    int
}

// Statement is one guarded block in the program: its body is considered
// executed whenever Guard evaluates true (or always, if Guard is nil).
type Statement struct {
	ID    trace.StatementID
	Guard *Guard
}

// Program is a flat sequence of Statements: every statement's guard is
// re-checked against the current actuator state after each replayed
// input event. Flat by design, so there is no control-dependent ancestor
// to count an approach level over: refhost leaves a trace's
// ApproachLevels unset, and internal/fitness then scores every missed
// goal with the same constant unreached penalty plus the normalized
// branch distance, so misses are ordered by branch distance alone.
type Program struct {
	ProgramName string
	Statements  []Statement
}

func (p *Program) Name() string { return p.ProgramName }

// Host evaluates TestChromosomes against one Program.
type Host struct {
	program     *Program
	includeStub bool
}

// Option configures optional Host behaviour beyond the defaults New
// applies.
type Option func(*Host)

// WithFloatStub opts a Host into also reporting a
// fitness.StatementCoverage goal over a "float:"-prefixed statement ID
// that this reference host has no branch-distance oracle for: its
// Fitness always returns errs.ErrNotYetImplemented, exercising that
// error path deliberately rather than by accident. Off by default —
// every ordinary caller (the CLI, the façade, the search algorithms)
// wants a goal set it can actually make progress on.
func WithFloatStub(include bool) Option {
	return func(h *Host) { h.includeStub = include }
}

// New constructs a Host bound to p.
func New(p *Program, opts ...Option) *Host {
	h := &Host{program: p}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Evaluate(ctx context.Context, c *chromosome.TestChromosome) (trace.ExecutionTrace, error) {
	tr := trace.NewExecutionTrace()
	ints := make(map[string]int)
	bools := make(map[string]bool)
	minDistance := make(map[trace.StatementID]float64)

	for _, ev := range c.Events {
		select {
		case <-ctx.Done():
			return trace.ExecutionTrace{}, fmt.Errorf("%w: %v", errs.ErrExecutionFailure, ctx.Err())
		default:
		}

		clickedActuator, wasClick := applyEvent(ev, ints, bools)

		for _, stmt := range h.program.Statements {
			ok, dist := true, 0.0
			if stmt.Guard != nil {
				ok, dist = evalGuard(stmt.Guard, ints, bools)
			}
			if ok {
				tr.ExecutedStatements[stmt.ID] = struct{}{}
				if stmt.Guard != nil {
					tr.TakenBranches[trace.BranchID{Statement: stmt.ID, TrueArm: true}] = struct{}{}
				}
				continue
			}
			tr.TakenBranches[trace.BranchID{Statement: stmt.ID, TrueArm: false}] = struct{}{}
			if cur, seen := minDistance[stmt.ID]; !seen || dist < cur {
				minDistance[stmt.ID] = dist
			}
		}

		if wasClick {
			bools[clickedActuator] = false
		}
	}

	for id, d := range minDistance {
		if _, executed := tr.ExecutedStatements[id]; !executed {
			tr.GuardDistances[id] = d
		}
	}
	return tr, nil
}

// applyEvent folds one InputEvent into the running actuator state.
// EventClick is a momentary pulse: the caller resets it to false once
// every statement has been checked for this step, mirroring a Scratch
// "when clicked" hat that is true only for the instant of the click.
func applyEvent(ev chromosome.InputEvent, ints map[string]int, bools map[string]bool) (clickedActuator string, wasClick bool) {
	switch ev.Kind {
	case chromosome.EventKeyPress, chromosome.EventSlider:
		ints[ev.ActuatorID] = ev.IntArg
	case chromosome.EventBoolToggle:
		bools[ev.ActuatorID] = ev.BoolArg
	case chromosome.EventClick:
		bools[ev.ActuatorID] = true
		return ev.ActuatorID, true
	}
	return "", false
}

// evalGuard reports whether g currently holds, and if not, the standard
// branch-distance by which it missed.
func evalGuard(g *Guard, ints map[string]int, bools map[string]bool) (bool, float64) {
	switch g.Comparator {
	case CmpEq:
		x := ints[g.ActuatorID]
		if x == g.Operand {
			return true, 0
		}
		return false, math.Abs(float64(x - g.Operand))
	case CmpNeq:
		x := ints[g.ActuatorID]
		if x != g.Operand {
			return true, 0
		}
		return false, 1
	case CmpLt:
		x := ints[g.ActuatorID]
		if x < g.Operand {
			return true, 0
		}
		return false, float64(x-g.Operand) + 1
	case CmpLte:
		x := ints[g.ActuatorID]
		if x <= g.Operand {
			return true, 0
		}
		return false, float64(x - g.Operand)
	case CmpGt:
		x := ints[g.ActuatorID]
		if x > g.Operand {
			return true, 0
		}
		return false, float64(g.Operand-x) + 1
	case CmpGte:
		x := ints[g.ActuatorID]
		if x >= g.Operand {
			return true, 0
		}
		return false, float64(g.Operand - x)
	case CmpIsTrue:
		if bools[g.ActuatorID] {
			return true, 0
		}
		return false, 1
	case CmpIsFalse:
		if !bools[g.ActuatorID] {
			return true, 0
		}
		return false, 1
	default:
		return false, math.MaxFloat64
	}
}

// ExtractCoverageGoals builds one fitness.StatementCoverage goal per
// statement plus one fitness.BranchCoverage goal per arm of every guarded
// statement. p must be a *Program produced by this package.
func (h *Host) ExtractCoverageGoals(p execution.Program) (map[int]fitness.Function, error) {
	program, ok := p.(*Program)
	if !ok {
		return nil, fmt.Errorf("%w: refhost.Host requires a *refhost.Program", errs.ErrInvalidConfiguration)
	}
	goals := make(map[int]fitness.Function)
	nextID := 0
	add := func(f fitness.Function) {
		goals[nextID] = f
		nextID++
	}
	for _, stmt := range program.Statements {
		add(fitness.StatementCoverage{GoalID: nextID, Statement: stmt.ID})
		if stmt.Guard != nil {
			add(fitness.BranchCoverage{GoalID: nextID, Branch: trace.BranchID{Statement: stmt.ID, TrueArm: true}})
			add(fitness.BranchCoverage{GoalID: nextID, Branch: trace.BranchID{Statement: stmt.ID, TrueArm: false}})
		}
	}
	// Only a Host explicitly opted in via WithFloatStub carries the
	// floating-point precision guard this host has no sensor type for;
	// see WithFloatStub's doc comment for why this is not unconditional.
	if h.includeStub {
		add(fitness.StatementCoverage{GoalID: nextID, Statement: trace.StatementID("float:" + program.ProgramName + "-precision-guard")})
	}
	return goals, nil
}
