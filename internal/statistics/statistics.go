// Package statistics implements the monotone counters and timers that
// search algorithms report progress through (spec.md §2, component 8),
// generalized from the teacher's GenerationReport/FinalReport
// snapshotting (pkg/engine/output.go) from a fixed set of named fields
// (BestFitness, AvgFitness, ...) to an open map of named metrics, so
// Random, OnePlusOne, MOSA, and MIO can all report through the same
// Collector without algorithm-specific fields.
package statistics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Collector accumulates named counters and gauges for one run. Safe for
// concurrent use: evaluation workers (spec.md §5) may report from
// separate goroutines between barriers.
type Collector struct {
	mu       sync.Mutex
	runID    uuid.UUID
	start    time.Time
	counters map[string]int64
	gauges   map[string]float64
}

// New starts a Collector, stamping it with a fresh run identifier so a
// caller running the façade repeatedly can tell snapshots apart.
func New() *Collector {
	return &Collector{
		runID:    uuid.New(),
		start:    time.Now(),
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
	}
}

// RunID returns this collector's run identifier.
func (c *Collector) RunID() uuid.UUID { return c.runID }

// Incr increments the named counter by delta. Counters only ever grow
// over a run: resetting belongs to a new Collector, not a mutation of
// this one.
func (c *Collector) Incr(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[name] += delta
}

// Set records the current value of the named gauge, overwriting any
// prior value.
func (c *Collector) Set(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gauges[name] = value
}

// Counter returns the current value of a named counter.
func (c *Collector) Counter(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

// Gauge returns the current value of a named gauge.
func (c *Collector) Gauge(name string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gauges[name]
}

// Elapsed returns the wall-clock time since the collector was created.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Snapshot is an immutable point-in-time copy of a Collector, suitable
// for attaching to a TestSuite or writing as a report.
type Snapshot struct {
	RunID    uuid.UUID          `json:"run_id"`
	Elapsed  time.Duration      `json:"elapsed"`
	Counters map[string]int64   `json:"counters"`
	Gauges   map[string]float64 `json:"gauges"`
}

// Snapshot captures the collector's current state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	counters := make(map[string]int64, len(c.counters))
	for k, v := range c.counters {
		counters[k] = v
	}
	gauges := make(map[string]float64, len(c.gauges))
	for k, v := range c.gauges {
		gauges[k] = v
	}
	return Snapshot{
		RunID:    c.runID,
		Elapsed:  time.Since(c.start),
		Counters: counters,
		Gauges:   gauges,
	}
}
