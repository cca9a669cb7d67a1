package emotion

import "math"

// Filter smooths raw targets into a slowly moving emotional state.
//
// Each axis follows a first-order lag with its own time constant, and every
// update is rate-limited to MaxStep so a wild sample cannot teleport the
// state. The smoothed state always stays inside [-1, 1] per axis.
type Filter struct {
	TauValence   float64 // seconds
	TauArousal   float64
	TauDominance float64
	MaxStep      float64 // max per-axis approach per update, pre-blend

	state Smoothed
}

// NewFilter returns a filter tuned so valence drifts, dominance follows,
// and arousal snaps.
func NewFilter() *Filter {
	return &Filter{
		TauValence:   2.0,
		TauArousal:   0.6,
		TauDominance: 1.2,
		MaxStep:      0.25,
	}
}

// State returns the current smoothed emotion without advancing the filter.
func (f *Filter) State() Smoothed {
	return f.state
}

// Reset returns the filter to the neutral origin.
func (f *Filter) Reset() {
	f.state = Smoothed{}
}

// Update advances the filter toward target over dt seconds and returns the
// new smoothed state. dt <= 0 leaves the state untouched.
func (f *Filter) Update(target Target, dt float64) Smoothed {
	if dt <= 0 {
		return f.state
	}
	f.state.Valence = f.step(f.state.Valence, target.Valence, f.TauValence, dt)
	f.state.Arousal = f.step(f.state.Arousal, target.Arousal, f.TauArousal, dt)
	f.state.Dominance = f.step(f.state.Dominance, target.Dominance, f.TauDominance, dt)
	return f.state
}

func (f *Filter) step(cur, target, tau, dt float64) float64 {
	alpha := 1.0 - math.Exp(-dt/tau)
	// Bound the approach first, then blend: a distant target moves the
	// state by at most MaxStep regardless of dt.
	bounded := cur + clamp(target-cur, -f.MaxStep, f.MaxStep)
	next := cur + (bounded-cur)*alpha
	return clamp(next, -1.0, 1.0)
}
