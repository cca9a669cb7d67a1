package emotion

import "math"

// EnergyModel accumulates emotional agitation. Every tick it measures how
// far the requested target sits from the smoothed state and folds that
// divergence into a decaying reservoir. Sudden swings or sustained tension
// pump the level up; agreement lets it bleed away.
//
// The level is clamped to [0, 10] and is consumed downstream purely as a
// turbulence and sway modifier.
type EnergyModel struct {
	Decay float64

	energy float64
}

// NewEnergyModel returns an energy accumulator at rest.
func NewEnergyModel() *EnergyModel {
	return &EnergyModel{Decay: 0.995}
}

// Value returns the current energy level.
func (m *EnergyModel) Value() float64 {
	return m.energy
}

// Reset drains the reservoir.
func (m *EnergyModel) Reset() {
	m.energy = 0
}

// Update folds one tick of target/smoothed divergence into the reservoir
// and returns the new level.
func (m *EnergyModel) Update(target Target, smoothed Smoothed) float64 {
	delta := (math.Abs(target.Valence-smoothed.Valence) +
		math.Abs(target.Arousal-smoothed.Arousal) +
		math.Abs(target.Dominance-smoothed.Dominance)) / 3.0
	m.energy = clamp((m.energy+delta)*m.Decay, 0.0, 10.0)
	return m.energy
}
