package emotion

import "math"

// Target is a raw valence/arousal/dominance triple as supplied by a source.
// Each axis is nominally in [-1, 1]; use Clamped before trusting the range.
type Target struct {
	Valence   float64
	Arousal   float64
	Dominance float64
}

// Smoothed is a temporally filtered emotional state produced by a Filter.
// It shares Target's layout but is a distinct type, so a raw setpoint can
// never be handed to code that expects filtered state without an explicit
// conversion.
type Smoothed struct {
	Valence   float64
	Arousal   float64
	Dominance float64
}

// Clamped returns t with every axis clamped to [-1, 1].
func (t Target) Clamped() Target {
	return Target{
		Valence:   clamp(t.Valence, -1.0, 1.0),
		Arousal:   clamp(t.Arousal, -1.0, 1.0),
		Dominance: clamp(t.Dominance, -1.0, 1.0),
	}
}

// Finite reports whether all three axes are finite numbers.
func (t Target) Finite() bool {
	return !math.IsNaN(t.Valence) && !math.IsInf(t.Valence, 0) &&
		!math.IsNaN(t.Arousal) && !math.IsInf(t.Arousal, 0) &&
		!math.IsNaN(t.Dominance) && !math.IsInf(t.Dominance, 0)
}

// Normalized remaps each axis from [-1, 1] to [0, 1] and returns the triple
// as (valence, arousal, dominance). Visual mapping works entirely in this
// normalized space.
func (s Smoothed) Normalized() (nv, na, nd float64) {
	return (s.Valence + 1.0) / 2.0, (s.Arousal + 1.0) / 2.0, (s.Dominance + 1.0) / 2.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
