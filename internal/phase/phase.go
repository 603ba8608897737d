// Package phase implements MIO's focused-phase progress interpolation
// (spec.md §4.7.4). Progress is measured as
// max(iterationFraction, timeFraction) — spec.md §9's resolved open
// question for behavior under a OneOf(time, iterations) stopping
// condition, where neither fraction alone is authoritative.
package phase

// Progress reports a run's fractional advancement toward its budget,
// each field in [0,1]. A budget that does not apply (e.g. no fixed
// iteration count configured) reports 0 for that fraction.
type Progress struct {
	IterationFraction float64
	TimeFraction      float64
}

// Fraction returns the combined progress fraction MIO interpolates
// against, clamped to [0,1].
func (p Progress) Fraction() float64 {
	f := p.IterationFraction
	if p.TimeFraction > f {
		f = p.TimeFraction
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Interpolate linearly blends start and focused across the run's
// progress relative to startOfFocusedPhase: before that boundary, the
// value ramps from start toward focused; at and after it, focused holds.
func Interpolate(progress Progress, startOfFocusedPhase, start, focused float64) float64 {
	if startOfFocusedPhase <= 0 {
		return focused
	}
	fraction := progress.Fraction()
	if fraction >= startOfFocusedPhase {
		return focused
	}
	t := fraction / startOfFocusedPhase
	return start + t*(focused-start)
}

// InFocusedPhase reports whether progress has passed the focused-phase
// boundary.
func InFocusedPhase(progress Progress, startOfFocusedPhase float64) bool {
	return progress.Fraction() >= startOfFocusedPhase
}
