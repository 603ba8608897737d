package phase

import "testing"

func TestFractionTakesTheMax(t *testing.T) {
	p := Progress{IterationFraction: 0.2, TimeFraction: 0.6}
	if p.Fraction() != 0.6 {
		t.Fatalf("expected max(0.2, 0.6) = 0.6, got %v", p.Fraction())
	}
}

func TestInterpolateRampsThenHolds(t *testing.T) {
	mid := Interpolate(Progress{IterationFraction: 0.25}, 0.5, 1.0, 0.0)
	if mid != 0.5 {
		t.Fatalf("expected halfway interpolation to be 0.5, got %v", mid)
	}
	past := Interpolate(Progress{IterationFraction: 0.9}, 0.5, 1.0, 0.0)
	if past != 0.0 {
		t.Fatalf("expected focused-phase value once past the boundary, got %v", past)
	}
}

func TestInFocusedPhase(t *testing.T) {
	if InFocusedPhase(Progress{IterationFraction: 0.4}, 0.5) {
		t.Fatalf("should not be in focused phase yet")
	}
	if !InFocusedPhase(Progress{IterationFraction: 0.5}, 0.5) {
		t.Fatalf("should enter focused phase exactly at the boundary")
	}
}
