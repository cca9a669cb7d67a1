// Package signal provides built-in VAD sources for driving a lamp without
// real affect input: deterministic arcs, jittery emotional weather, hard
// mood flips and a steerable manual source.
//
// Every generator advances an internal clock by its frame period before
// producing a sample, and all of them satisfy the engine's Source contract.
// None of them are safe for concurrent use; sample from the loop that ticks
// the engine.
package signal

import (
	"math"
	"math/rand"

	"github.com/solhav/moodlamp/internal/emotion"
)

// DefaultPeriod is the clock advance per sample: one 60 fps frame.
const DefaultPeriod = 0.016

// Sine sweeps each axis on its own sinusoid. The rates are incommensurate,
// so the mood arc takes a long time to visibly repeat.
type Sine struct {
	Period float64

	t float64
}

// NewSine returns a sine source advancing by period per sample.
func NewSine(period float64) *Sine {
	return &Sine{Period: period}
}

func (s *Sine) Next() (emotion.Target, bool) {
	s.t += s.Period
	return emotion.Target{
		Valence:   math.Sin(s.t * 0.5),
		Arousal:   math.Sin(s.t * 1.4),
		Dominance: math.Sin(s.t*0.8 + 1.2),
	}.Clamped(), true
}

// Noise rides slow sine carriers with uniform jitter on top: emotional
// weather rather than an arc.
type Noise struct {
	Period float64

	t   float64
	rng *rand.Rand
}

// NewNoise returns a jittery source. The generator drives the jitter; pass
// a seeded one for reproducible weather.
func NewNoise(period float64, rng *rand.Rand) *Noise {
	return &Noise{Period: period, rng: rng}
}

func (n *Noise) Next() (emotion.Target, bool) {
	n.t += n.Period
	return emotion.Target{
		Valence:   math.Sin(n.t*0.25)*0.5 + n.uniform(-0.5, 0.5),
		Arousal:   math.Sin(n.t*0.9)*0.4 + n.uniform(-0.6, 0.6),
		Dominance: math.Sin(n.t*0.45+1.0)*0.3 + n.uniform(-0.4, 0.4),
	}.Clamped(), true
}

func (n *Noise) uniform(lo, hi float64) float64 {
	return lo + n.rng.Float64()*(hi-lo)
}

// Step slams the mood between a withdrawn corner and an eager one whenever
// its clock crosses the next flip boundary. Good for watching the filter's
// step response with bare eyes.
type Step struct {
	Period   float64
	Interval float64

	t        float64
	nextFlip float64
	state    emotion.Target
}

// NewStep returns a step source flipping every 1.5 simulated seconds.
func NewStep(period float64) *Step {
	return &Step{
		Period:   period,
		Interval: 1.5,
		nextFlip: 1.5,
		state:    emotion.Target{Valence: -0.8, Arousal: -0.6, Dominance: -0.6},
	}
}

func (s *Step) Next() (emotion.Target, bool) {
	s.t += s.Period
	if s.t > s.nextFlip {
		s.nextFlip += s.Interval
		s.state = emotion.Target{
			Valence:   -s.state.Valence,
			Arousal:   -s.state.Arousal,
			Dominance: -s.state.Dominance,
		}
	}
	return s.state, true
}

// Still pins the target. Useful for calibration and soak runs.
type Still struct {
	Target emotion.Target
}

// NewStill returns a source that repeats target forever.
func NewStill(target emotion.Target) *Still {
	return &Still{Target: target}
}

func (s *Still) Next() (emotion.Target, bool) {
	return s.Target, true
}

// Manual is steered from the outside: key bindings, sliders, a phone app.
type Manual struct {
	target emotion.Target
}

// NewManual returns a manual source resting at neutral.
func NewManual() *Manual {
	return &Manual{}
}

// Set replaces the steering target, clamped to the legal cube.
func (m *Manual) Set(t emotion.Target) {
	m.target = t.Clamped()
}

// Nudge moves the steering target by the given deltas and returns where it
// landed.
func (m *Manual) Nudge(dv, da, dd float64) emotion.Target {
	m.target = emotion.Target{
		Valence:   m.target.Valence + dv,
		Arousal:   m.target.Arousal + da,
		Dominance: m.target.Dominance + dd,
	}.Clamped()
	return m.target
}

// Target returns the current steering target.
func (m *Manual) Target() emotion.Target {
	return m.target
}

func (m *Manual) Next() (emotion.Target, bool) {
	return m.target, true
}
