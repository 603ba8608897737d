package search

import (
	"context"
	"fmt"
	"time"

	"github.com/whiskergen/searchcore/internal/archive"
	"github.com/whiskergen/searchcore/internal/chromosome"
	"github.com/whiskergen/searchcore/internal/errs"
	"github.com/whiskergen/searchcore/internal/phase"
	"github.com/whiskergen/searchcore/internal/rng"
	"github.com/whiskergen/searchcore/internal/selection"
	"github.com/whiskergen/searchcore/internal/statistics"
	"github.com/whiskergen/searchcore/internal/stopping"
)

// bucketEntry is one candidate held in a goal's exploration bucket. MIO's
// buckets are a separate, non-optimal-only structure from the shared
// archive: they exist purely to drive sampling (spec.md §4.7.4), while
// archive.Archive still holds the literal, invariant-bearing per-goal
// optimum exactly as Random/OnePlusOne/MOSA maintain it.
type bucketEntry struct {
	chromosome chromosome.Chromosome
	length     int
	heuristic  float64
}

// MIO implements spec.md §4.7.4: a many-objective interactive optimizer
// that samples from per-goal exploration buckets and collapses its
// exploration parameters toward pure exploitation as the run progresses
// through a "focused phase".
type MIO struct {
	runState

	rng       *rng.Source
	evaluator Evaluator
	stats     *statistics.Collector
	stopCond  stopping.Condition
	generator chromosome.Generator

	startOfFocusedPhase float64

	randomSelectionProbabilityStart   float64
	randomSelectionProbabilityFocused float64
	maxArchiveSizeStart               int
	maxArchiveSizeFocused             int
	maxMutationCountStart             int
	maxMutationCountFocused           int

	// totalIterationBudget/totalTimeBudget give MIO its own view of the
	// run's budget for phase-progress purposes, independent of whatever
	// opaque stopping.Condition governs termination (spec.md §9's MIO
	// phase-progress open question; stopping.Condition exposes only
	// IsFinished, not the configured limit, so MIO needs these supplied
	// redundantly via SetProperties).
	totalIterationBudget int
	totalTimeBudget      time.Duration

	heuristics map[int]func(fitnessValue float64) float64

	buckets map[int][]bucketEntry
}

func NewMIO(r *rng.Source, arch *archive.Archive, evaluator Evaluator, stats *statistics.Collector) *MIO {
	return &MIO{
		runState:                          runState{arch: arch},
		rng:                               r,
		evaluator:                         evaluator,
		stats:                             stats,
		startOfFocusedPhase:               0.5,
		randomSelectionProbabilityStart:   0.5,
		randomSelectionProbabilityFocused: 0.0,
		maxArchiveSizeStart:               10,
		maxArchiveSizeFocused:             1,
		maxMutationCountStart:             1,
		maxMutationCountFocused:           10,
		buckets:                           make(map[int][]bucketEntry),
	}
}

func (a *MIO) SetChromosomeGenerator(g chromosome.Generator) error {
	a.generator = g
	return nil
}

func (a *MIO) SetFitnessFunctions(goals GoalSet) error {
	a.goals = goals
	return nil
}

func (a *MIO) SetStoppingCondition(c stopping.Condition) error {
	a.stopCond = c
	return nil
}

func (a *MIO) SetSelectionOperator(selection.Operator) error {
	return unsupported("MIO", "a selection operator; it samples from per-goal buckets instead")
}

// SetProperties honours MIO's phase-interpolation parameters from
// spec.md §6 (the "*Start/FocusedPhase" and "startOfFocusedPhase" keys),
// plus the iteration/time budgets used only to compute phase progress.
func (a *MIO) SetProperties(props map[string]any) error {
	getFloat := func(key string, dst *float64) error {
		v, ok := props[key]
		if !ok {
			return nil
		}
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: %s must be a float64", errs.ErrInvalidConfiguration, key)
		}
		*dst = f
		return nil
	}
	getInt := func(key string, dst *int) error {
		v, ok := props[key]
		if !ok {
			return nil
		}
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("%w: %s must be an int", errs.ErrInvalidConfiguration, key)
		}
		*dst = n
		return nil
	}

	if err := getFloat("startOfFocusedPhase", &a.startOfFocusedPhase); err != nil {
		return err
	}
	if a.startOfFocusedPhase <= 0 || a.startOfFocusedPhase > 1 {
		if _, ok := props["startOfFocusedPhase"]; ok {
			return fmt.Errorf("%w: startOfFocusedPhase must be in (0,1]", errs.ErrInvalidConfiguration)
		}
	}
	if err := getFloat("selection.randomSelectionProbabilityStart", &a.randomSelectionProbabilityStart); err != nil {
		return err
	}
	if err := getFloat("selection.randomSelectionProbabilityFocusedPhase", &a.randomSelectionProbabilityFocused); err != nil {
		return err
	}
	if err := getInt("archive.maxArchiveSizeStart", &a.maxArchiveSizeStart); err != nil {
		return err
	}
	if err := getInt("archive.maxArchiveSizeFocusedPhase", &a.maxArchiveSizeFocused); err != nil {
		return err
	}
	if err := getInt("mutation.maxMutationCountStart", &a.maxMutationCountStart); err != nil {
		return err
	}
	if err := getInt("mutation.maxMutationCountFocusedPhase", &a.maxMutationCountFocused); err != nil {
		return err
	}
	if err := getInt("totalIterationBudget", &a.totalIterationBudget); err != nil {
		return err
	}
	if v, ok := props["totalTimeBudget"]; ok {
		d, ok := v.(time.Duration)
		if !ok {
			return fmt.Errorf("%w: totalTimeBudget must be a time.Duration", errs.ErrInvalidConfiguration)
		}
		a.totalTimeBudget = d
	}
	if v, ok := props["heuristics"]; ok {
		h, ok := v.(map[int]func(float64) float64)
		if !ok {
			return fmt.Errorf("%w: heuristics must be a map[int]func(float64) float64", errs.ErrInvalidConfiguration)
		}
		a.heuristics = h
	}
	return nil
}

func (a *MIO) CurrentSolution() []chromosome.Chromosome {
	return distinct(a.bestPerGoal())
}

// BestPerGoalChromosomes exposes bestPerGoal's per-goal attribution
// directly, keyed by goal, for callers (internal/testgen's façade) that
// need to know which goal a given best-effort chromosome stands for
// rather than just the deduplicated chromosome list FindSolution
// returns.
func (a *MIO) BestPerGoalChromosomes() map[int]chromosome.Chromosome {
	out := make(map[int]chromosome.Chromosome, len(a.goals.Order))
	for _, goal := range a.goals.Order {
		if top, ok := a.bucketTop(goal); ok {
			out[goal] = top.chromosome
			continue
		}
		if c, ok := a.arch.Get(goal); ok {
			out[goal] = c
		}
	}
	return out
}

func (a *MIO) FitnessFunctions() GoalSet { return a.goals }

func (a *MIO) progress() phase.Progress {
	var p phase.Progress
	if a.totalIterationBudget > 0 {
		p.IterationFraction = float64(a.iterations) / float64(a.totalIterationBudget)
	}
	if a.totalTimeBudget > 0 {
		p.TimeFraction = time.Since(a.start).Seconds() / a.totalTimeBudget.Seconds()
	}
	return p
}

func (a *MIO) maxArchiveSize() int {
	return int(phase.Interpolate(a.progress(), a.startOfFocusedPhase, float64(a.maxArchiveSizeStart), float64(a.maxArchiveSizeFocused)))
}

func (a *MIO) maxMutationCount() int {
	n := int(phase.Interpolate(a.progress(), a.startOfFocusedPhase, float64(a.maxMutationCountStart), float64(a.maxMutationCountFocused)))
	if n < 1 {
		return 1
	}
	return n
}

func (a *MIO) randomSelectionProbability() float64 {
	return phase.Interpolate(a.progress(), a.startOfFocusedPhase, a.randomSelectionProbabilityStart, a.randomSelectionProbabilityFocused)
}

// heuristicValue maps a goal's raw fitness to the normalised priority
// MIO's buckets rank by: the configured heuristic if present, else the
// raw fitness itself.
func (a *MIO) heuristicValue(goal int, value float64) float64 {
	if h, ok := a.heuristics[goal]; ok {
		return h(value)
	}
	return value
}

// insertIntoBucket honours the per-goal size cap: it adds candidate, then
// evicts the worst entry (lowest heuristic value, ties broken by longer
// length, a full tie going against the candidate) until the bucket is
// within the cap, so a bucket filled under a larger cap shrinks once the
// cap drops. A cap of zero or below leaves the bucket unchanged.
func insertIntoBucket(bucket []bucketEntry, candidate bucketEntry, limit int) []bucketEntry {
	if limit <= 0 {
		return bucket
	}
	bucket = append(bucket, candidate)
	for len(bucket) > limit {
		worst := 0
		for i := 1; i < len(bucket); i++ {
			if bucket[i].heuristic < bucket[worst].heuristic ||
				(bucket[i].heuristic == bucket[worst].heuristic && bucket[i].length >= bucket[worst].length) {
				worst = i
			}
		}
		bucket = append(bucket[:worst], bucket[worst+1:]...)
	}
	return bucket
}

// bucketTop returns the best entry of goal's bucket by heuristic value,
// ties broken by shorter length (the mirror image of
// insertIntoBucket's eviction rule), or false if the bucket is empty.
func (a *MIO) bucketTop(goal int) (bucketEntry, bool) {
	bucket := a.buckets[goal]
	if len(bucket) == 0 {
		return bucketEntry{}, false
	}
	best := bucket[0]
	for _, e := range bucket[1:] {
		if e.heuristic > best.heuristic || (e.heuristic == best.heuristic && e.length < best.length) {
			best = e
		}
	}
	return best, true
}

// bestPerGoal returns, for each goal, the single best-known candidate:
// the bucket's own top heuristic entry, per spec.md §4.7.4's "archive of
// candidates ranked by heuristic value" and "findSolution() returns one
// chromosome per goal (the archive's per-goal top)" (that "archive" is
// MIO's per-goal bucket, not the shared optimal-only archive every
// other algorithm writes to). Falls back to the shared archive only
// once a goal has actually reached optimality and its bucket happens to
// be empty (a bucket that never received an entry because the archive
// cap was zero from the start, say) — the shared archive's invariant guarantees that fallback
// entry is optimal, even though it may differ from whatever the bucket
// last held for this goal.
func (a *MIO) bestPerGoal() []chromosome.Chromosome {
	var out []chromosome.Chromosome
	for _, goal := range a.goals.Order {
		if top, ok := a.bucketTop(goal); ok {
			out = append(out, top.chromosome)
			continue
		}
		if c, ok := a.arch.Get(goal); ok {
			out = append(out, c)
		}
	}
	return out
}

func (a *MIO) nonEmptyBucketGoals() []int {
	var goals []int
	for _, id := range a.goals.Order {
		if len(a.buckets[id]) > 0 {
			goals = append(goals, id)
		}
	}
	return goals
}

func (a *MIO) sample(ctx context.Context) (chromosome.Chromosome, map[int]float64, error) {
	if a.rng.NextFloat64() < a.randomSelectionProbability() {
		c := a.generator.Generate(a.rng)
		values, err := evaluateOne(ctx, a.evaluator, a.goals, c, a.stats)
		return c, values, err
	}

	nonEmpty := a.nonEmptyBucketGoals()
	if len(nonEmpty) == 0 {
		c := a.generator.Generate(a.rng)
		values, err := evaluateOne(ctx, a.evaluator, a.goals, c, a.stats)
		return c, values, err
	}
	goal := rng.Pick(a.rng, nonEmpty)
	bucket := a.buckets[goal]
	base := rng.Pick(a.rng, bucket).chromosome

	best := base
	bestValues, err := evaluateOne(ctx, a.evaluator, a.goals, base, a.stats)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < a.maxMutationCount(); i++ {
		candidate := best.Mutate(a.rng)
		values, err := evaluateOne(ctx, a.evaluator, a.goals, candidate, a.stats)
		if err != nil {
			return nil, nil, err
		}
		if a.goals.Functions[goal].Compare(values[goal], bestValues[goal]) > 0 {
			best, bestValues = candidate, values
		}
	}
	return best, bestValues, nil
}

func (a *MIO) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if a.generator == nil || a.stopCond == nil {
		return nil, fmt.Errorf("%w: MIO requires a chromosome generator and a stopping condition", errs.ErrInvalidConfiguration)
	}
	a.start = time.Now()
	a.iterations = 0
	a.arch.Reset()
	a.buckets = make(map[int][]bucketEntry)

	for !a.stopCond.IsFinished(&a.runState) {
		candidate, values, err := a.sample(ctx)
		if err != nil {
			return nil, err
		}

		bucketLimit := a.maxArchiveSize()
		for _, goal := range a.goals.Order {
			fn := a.goals.Functions[goal]
			v := values[goal]
			a.arch.Consider(goal, candidate, v, fn.IsOptimal(v))

			entry := bucketEntry{chromosome: candidate.Clone(), length: candidate.Len(), heuristic: a.heuristicValue(goal, v)}
			a.buckets[goal] = insertIntoBucket(a.buckets[goal], entry, bucketLimit)
		}

		a.iterations++
		if a.stats != nil {
			a.stats.Incr("iterations", 1)
		}
	}

	return distinct(a.bestPerGoal()), nil
}
