// Package stopping implements the stopping conditions that decide when
// a search algorithm's main loop ends (spec.md §4.4). Every Condition is
// monotone: once IsFinished returns true for an Observer snapshot, it
// returns true for every later snapshot of the same run, so algorithms
// can poll it once per iteration without re-deriving history.
package stopping

import "time"

// Observer exposes the run state a Condition needs to decide.
type Observer interface {
	// Iterations is the number of completed search iterations so far.
	Iterations() int
	// StartTime is when the run began.
	StartTime() time.Time
	// CoveredGoals is the number of goals currently archived as optimal.
	CoveredGoals() int
	// TotalGoals is the number of goals the run started with.
	TotalGoals() int
}

// Condition decides whether a run should stop.
type Condition interface {
	IsFinished(o Observer) bool
}

// FixedIterations stops once Iterations() reaches Limit.
type FixedIterations struct {
	Limit int
}

func (c FixedIterations) IsFinished(o Observer) bool {
	return o.Iterations() >= c.Limit
}

// FixedTime stops once Budget has elapsed since StartTime().
type FixedTime struct {
	Budget time.Duration
}

func (c FixedTime) IsFinished(o Observer) bool {
	return time.Since(o.StartTime()) >= c.Budget
}

// OptimalSolution stops once every goal has been covered.
type OptimalSolution struct{}

func (OptimalSolution) IsFinished(o Observer) bool {
	total := o.TotalGoals()
	return total > 0 && o.CoveredGoals() >= total
}

// OneOf stops once any one of its child conditions is finished.
// Monotone because each child is monotone and a logical OR of monotone
// predicates is itself monotone.
type OneOf struct {
	Conditions []Condition
}

func (c OneOf) IsFinished(o Observer) bool {
	for _, cond := range c.Conditions {
		if cond.IsFinished(o) {
			return true
		}
	}
	return false
}
