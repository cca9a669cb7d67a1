// Package emotion models a slowly evolving emotional state driven by
// valence/arousal/dominance (VAD) samples.
//
// The package defines the input side of the lamp pipeline:
//
//   - [Target]: raw VAD setpoint delivered by a source
//   - [Smoothed]: temporally filtered state, the only thing consumers read
//   - [Filter]: per-axis exponential smoothing with rate limiting
//   - [EnergyModel]: accumulated target/state divergence, bounded [0, 10]
//
// Valence carries the longest time constant so mood shifts feel gradual;
// arousal reacts fastest so agitation shows up almost immediately. The
// energy level is a side channel: it measures how hard the target has been
// pulling away from the smoothed state, and downstream it only ever adds
// turbulence and sway.
package emotion
