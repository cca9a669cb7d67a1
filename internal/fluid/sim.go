package fluid

import (
	"math"
	"math/rand"

	"github.com/solhav/moodlamp/internal/visual"
)

// Sim advances the blob population one tick at a time. It owns no emotional
// state: everything it needs arrives through the visual snapshot plus the
// normalized dominance/arousal pair, so the tank can be driven standalone.
type Sim struct {
	Width       float64
	Height      float64
	DampingBase float64

	blobs  []Blob
	merges int
	splits int

	rng *rand.Rand
}

// New returns an empty tank with the stock 1x1 extent. The generator drives
// seeding, merge rolls and split rolls; pass a seeded one for reproducible
// runs.
func New(rng *rand.Rand) *Sim {
	return &Sim{
		Width:       1.0,
		Height:      1.0,
		DampingBase: 0.995,
		rng:         rng,
	}
}

// Blobs returns the live population. The slice is owned by the sim and is
// valid to read until the next Step.
func (s *Sim) Blobs() []Blob {
	return s.blobs
}

// Merges reports cumulative merge events since the last Reset.
func (s *Sim) Merges() int {
	return s.merges
}

// Splits reports cumulative split events since the last Reset.
func (s *Sim) Splits() int {
	return s.splits
}

// Reset drops the population and zeroes the event counters.
func (s *Sim) Reset() {
	s.blobs = nil
	s.merges = 0
	s.splits = 0
}

// Reseed swaps the random source for subsequent seeding and topology rolls.
func (s *Sim) Reseed(rng *rand.Rand) {
	s.rng = rng
}

// Step advances the tank by dt seconds. p is the tick's visual snapshot,
// nd and na are normalized dominance and arousal from the smoothed state,
// and t is total elapsed time, which phases the flow field.
//
// Order matters: an empty tank is seeded, the population is reconciled to
// p.BlobCount, every blob is integrated, then merges and splits run. A zero
// or negative BlobCount degenerates to an empty tank; never an error.
func (s *Sim) Step(p visual.Params, nd, na, dt, t float64) {
	if len(s.blobs) == 0 {
		s.seedPopulation(p)
	}
	s.reconcile(p)
	s.integrate(p, dt, t)
	s.mergePass(nd)
	s.splitPass(p, na)
}

func (s *Sim) seedPopulation(p visual.Params) {
	n := p.BlobCount
	if n < 0 {
		n = 0
	}
	s.blobs = make([]Blob, 0, n)
	for i := 0; i < n; i++ {
		pos := Vec2{X: s.rng.Float64() * s.Width, Y: s.rng.Float64() * s.Height}
		vel := Vec2{X: s.uniform(-0.05, 0.05), Y: s.uniform(-0.05, 0.05)}
		r := math.Max(0.01, p.BlobSizeMean+s.rng.NormFloat64()*0.015)
		s.blobs = append(s.blobs, Blob{Pos: pos, Vel: vel, Radius: r, Color: p.RGBPrimary})
	}
}

// reconcile drifts the population toward the target count: latecomers spawn
// at rest with exactly the mean radius, extras drop from the end.
func (s *Sim) reconcile(p visual.Params) {
	n := p.BlobCount
	if n < 0 {
		n = 0
	}
	for len(s.blobs) < n {
		s.blobs = append(s.blobs, Blob{
			Pos:    Vec2{X: s.rng.Float64() * s.Width, Y: s.rng.Float64() * s.Height},
			Radius: p.BlobSizeMean,
			Color:  p.RGBPrimary,
		})
	}
	if len(s.blobs) > n {
		s.blobs = s.blobs[:n]
	}
}

func (s *Sim) integrate(p visual.Params, dt, t float64) {
	// Thin fluid damps harder than syrup.
	damping := s.DampingBase - (1.0-p.Viscosity)*0.02
	for i := range s.blobs {
		b := &s.blobs[i]
		fx, fy := curlField(b.Pos.X, b.Pos.Y, t)
		b.Vel.X += (fx*p.Turbulence + p.GravityX) * dt
		b.Vel.Y += (fy*p.Turbulence + p.Buoyancy) * dt
		b.Vel.X *= damping
		b.Vel.Y *= damping
		b.Pos.X = wrap(b.Pos.X+b.Vel.X*dt, s.Width)
		b.Pos.Y = clamp(b.Pos.Y+b.Vel.Y*dt, 0, s.Height)
		b.Color = p.RGBPrimary
	}
}

// mergePass fuses overlapping pairs. Dominance widens the contact reach and
// gates the roll, so an assertive state runs a coherent few-blob lamp. The
// inner index is not advanced after a removal: the shifted-down neighbor
// gets its own roll, and one blob may absorb several in a single tick.
func (s *Sim) mergePass(nd float64) {
	reach := 1.5 - 0.5*nd
	for i := 0; i < len(s.blobs); i++ {
		for j := i + 1; j < len(s.blobs); {
			a := &s.blobs[i]
			b := s.blobs[j]
			dx := a.Pos.X - b.Pos.X
			dy := a.Pos.Y - b.Pos.Y
			thresh := (a.Radius + b.Radius) * reach
			if dx*dx+dy*dy < thresh*thresh && s.rng.Float64() < nd {
				a.Radius = math.Sqrt(a.Radius*a.Radius + b.Radius*b.Radius)
				a.Vel.X = (a.Vel.X + b.Vel.X) / 2.0
				a.Vel.Y = (a.Vel.Y + b.Vel.Y) / 2.0
				s.blobs = append(s.blobs[:j], s.blobs[j+1:]...)
				s.merges++
				continue
			}
			j++
		}
	}
}

// splitPass breaks up oversized blobs. Children are appended and revisited
// in the same scan, so a huge blob can cascade down to size in one tick;
// every division conserves total area.
func (s *Sim) splitPass(p visual.Params, na float64) {
	for i := 0; i < len(s.blobs); i++ {
		if s.blobs[i].Radius > p.BlobSizeMean*1.8 && s.rng.Float64() < na {
			s.blobs[i].Radius /= math.Sqrt2
			parent := s.blobs[i]
			s.blobs = append(s.blobs, Blob{
				Pos:    Vec2{X: wrap(parent.Pos.X+0.03, s.Width), Y: clamp(parent.Pos.Y+0.03, 0, s.Height)},
				Vel:    Vec2{X: -parent.Vel.X, Y: parent.Vel.Y},
				Radius: parent.Radius,
				Color:  parent.Color,
			})
			s.splits++
		}
	}
}

func (s *Sim) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// wrap maps x onto [0, w), handling negatives the way a torus does.
func wrap(x, w float64) float64 {
	x = math.Mod(x, w)
	if x < 0 {
		x += w
	}
	return x
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
