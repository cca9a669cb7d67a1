package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/solhav/moodlamp/internal/emotion"
	"github.com/solhav/moodlamp/internal/fluid"
	"github.com/solhav/moodlamp/internal/visual"
)

// Source supplies at most one raw emotion sample per tick. The bool reports
// whether a sample was delivered; on false the engine keeps steering toward
// whatever it heard last, which starts out neutral.
type Source interface {
	Next() (emotion.Target, bool)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() (emotion.Target, bool)

func (f SourceFunc) Next() (emotion.Target, bool) {
	return f()
}

// Engine drives one lamp. The exported components are live: tuning their
// fields between ticks is supported, swapping the pointers is not.
type Engine struct {
	Filter *emotion.Filter
	Energy *emotion.EnergyModel
	Mapper *visual.Mapper
	Sim    *fluid.Sim

	src     Source
	seed    int64
	target  emotion.Target
	elapsed float64
	params  visual.Params
}

// Telemetry is a status snapshot: everything a HUD line or a recorder
// needs, nothing a renderer draws from.
type Telemetry struct {
	Smoothed   emotion.Smoothed
	Energy     float64
	BlobCount  int
	Turbulence float64
	GravityX   float64
	Merges     int
	Splits     int
	Elapsed    float64
}

// New builds an engine around src. A single generator derived from seed is
// threaded through the mapper and the tank, so two engines with the same
// seed fed the same samples tick identically.
func New(src Source, seed int64) *Engine {
	rng := rand.New(rand.NewSource(seed))
	return &Engine{
		Filter: emotion.NewFilter(),
		Energy: emotion.NewEnergyModel(),
		Mapper: visual.NewMapper(rng),
		Sim:    fluid.New(rng),
		src:    src,
		seed:   seed,
	}
}

// Tick advances the lamp by dt seconds and returns the snapshot a renderer
// should draw. A malformed step or sample fails the tick before any engine
// state moves.
func (e *Engine) Tick(dt float64) (visual.Params, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return visual.Params{}, fmt.Errorf("%w: dt=%v", ErrBadStep, dt)
	}

	if sample, ok := e.src.Next(); ok {
		if !sample.Finite() {
			return visual.Params{}, fmt.Errorf("%w: %+v", ErrBadSample, sample)
		}
		e.target = sample.Clamped()
	}

	smoothed := e.Filter.Update(e.target, dt)
	energy := e.Energy.Update(e.target, smoothed)
	e.elapsed += dt

	p := e.Mapper.Map(smoothed, energy, e.elapsed)
	_, na, nd := smoothed.Normalized()
	e.Sim.Step(p, nd, na, dt, e.elapsed)

	e.params = p
	return p, nil
}

// SetSource swaps the sample source. The held target survives the swap, so
// the lamp drifts from where it is rather than snapping.
func (e *Engine) SetSource(src Source) {
	e.src = src
}

// Seed returns the seed the engine's generator was derived from.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Target returns the raw setpoint the engine is currently steering toward.
func (e *Engine) Target() emotion.Target {
	return e.target
}

// Elapsed returns total simulated time in seconds.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Blobs returns the live population, valid to read until the next Tick.
func (e *Engine) Blobs() []fluid.Blob {
	return e.Sim.Blobs()
}

// Params returns the most recent visual snapshot.
func (e *Engine) Params() visual.Params {
	return e.params
}

// Telemetry snapshots the engine for status lines and recorders.
func (e *Engine) Telemetry() Telemetry {
	return Telemetry{
		Smoothed:   e.Filter.State(),
		Energy:     e.Energy.Value(),
		BlobCount:  len(e.Sim.Blobs()),
		Turbulence: e.params.Turbulence,
		GravityX:   e.params.GravityX,
		Merges:     e.Sim.Merges(),
		Splits:     e.Sim.Splits(),
		Elapsed:    e.elapsed,
	}
}

// Reset returns the engine to its initial state. The generator is re-derived
// from the construction seed, so a reset run replays exactly (given the
// source also starts over).
func (e *Engine) Reset() {
	rng := rand.New(rand.NewSource(e.seed))
	e.Mapper.Reseed(rng)
	e.Sim.Reseed(rng)
	e.Sim.Reset()
	e.Filter.Reset()
	e.Energy.Reset()
	e.target = emotion.Target{}
	e.elapsed = 0
	e.params = visual.Params{}
}
