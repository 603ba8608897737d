// Package archive implements the best-known-solution-per-goal archive
// shared by every search algorithm: for each coverage goal, the shortest
// chromosome that has ever achieved it, with ties broken by discovery
// order (the earliest chromosome of the minimal length is kept, matching
// the teacher's straightforward "keep the best seen" bookkeeping in
// pkg/engine/engine.go's hall-of-fame tracking).
package archive

import (
	"sync"

	"github.com/whiskergen/searchcore/internal/chromosome"
)

type entry struct {
	chromosome chromosome.Chromosome
	length     int
	fitness    float64
}

// Archive records the best chromosome found so far for each goal.
// Safe for concurrent use: every method guards its state with a mutex.
// The search algorithms call Consider from their own loop, after each
// evaluation barrier, not from the evaluation workers.
type Archive struct {
	mu      sync.Mutex
	entries map[int]entry
	order   []int
}

// New returns an empty Archive.
func New() *Archive {
	return &Archive{entries: make(map[int]entry)}
}

// Consider offers c as a candidate solution for goal, with its fitness
// value f and IsOptimal verdict optimal for that goal. Only chromosomes
// judged optimal for their goal are archived — the archive records
// achieved goals, not merely improved-upon ones. Among optimal
// candidates for the same goal, the shortest chromosome wins; ties keep
// the existing entry. Reports whether c replaced or newly occupied the
// goal's slot.
func (a *Archive) Consider(goal int, c chromosome.Chromosome, f float64, optimal bool) bool {
	if !optimal {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	length := c.Len()
	existing, ok := a.entries[goal]
	if ok && existing.length <= length {
		return false
	}
	if !ok {
		a.order = append(a.order, goal)
	}
	a.entries[goal] = entry{chromosome: c.Clone(), length: length, fitness: f}
	return true
}

// Get returns the archived chromosome for goal, if any.
func (a *Archive) Get(goal int) (chromosome.Chromosome, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.entries[goal]
	if !ok {
		return nil, false
	}
	return e.chromosome.Clone(), true
}

// Goals returns the archived goal identifiers in the order they were
// first covered.
func (a *Archive) Goals() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]int, len(a.order))
	copy(out, a.order)
	return out
}

// Values returns every archived chromosome, in goal-coverage order. A
// chromosome covering multiple goals appears once per goal it is
// archived under.
func (a *Archive) Values() []chromosome.Chromosome {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]chromosome.Chromosome, 0, len(a.order))
	for _, goal := range a.order {
		out = append(out, a.entries[goal].chromosome.Clone())
	}
	return out
}

// Len reports the number of goals currently archived.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Reset clears every archived entry.
func (a *Archive) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = make(map[int]entry)
	a.order = nil
}
