package visual

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/solhav/moodlamp/internal/emotion"
)

// Mapper converts a smoothed emotional state plus the current energy level
// into a Params snapshot.
//
// The mapping vocabulary: valence owns the palette and the vertical feel
// (warm rising colors when positive, cold sinking ones when negative),
// arousal owns activity (population, brightness, turbulence, sway rate),
// dominance owns coherence (hue spread, tension, merge appetite).
type Mapper struct {
	BaseTurbulence float64
	ArousalGain    float64
	EnergyGain     float64

	rng *rand.Rand
}

// NewMapper returns a mapper with the stock gains. The generator drives the
// secondary-hue jitter; pass a seeded one for reproducible palettes.
func NewMapper(rng *rand.Rand) *Mapper {
	return &Mapper{
		BaseTurbulence: 0.1,
		ArousalGain:    0.9,
		EnergyGain:     0.4,
		rng:            rng,
	}
}

// Reseed swaps the random source used for hue jitter.
func (m *Mapper) Reseed(rng *rand.Rand) {
	m.rng = rng
}

// Map builds the visual parameter snapshot for one tick. energy is the
// current accumulator level and elapsed is total engine time in seconds,
// which phases the gravity sway.
func (m *Mapper) Map(s emotion.Smoothed, energy, elapsed float64) Params {
	nv, na, nd := s.Normalized()

	// Palette: cold blue at the miserable end, warm orange at the happy one.
	hue := lerp(220.0, 20.0, nv)
	sat := 0.3 + 0.7*na
	val := 0.4 + 0.6*na

	// Low dominance lets the secondary hue wander; high dominance locks the
	// palette together.
	jitter := (m.rng.Float64()*48.0 - 24.0) * (1.0 - nd)
	hue2 := wrapHue(hue + jitter)

	freq := 0.1 + na*1.5
	amp := 0.02 + energy*0.05

	return Params{
		HSVPrimary:   HSV{H: hue, S: sat, V: val},
		HSVSecondary: HSV{H: hue2, S: math.Min(1.0, sat*1.1), V: math.Min(1.0, val*1.1)},
		RGBPrimary:   colorful.Hsv(hue, sat, val),

		BlobCount:    3 + int(na*10.0),
		BlobSizeMean: lerp(0.14, 0.05, na),

		SurfaceTension: lerp(0.2, 1.0, nd),
		Viscosity:      lerp(1.0, 0.2, nv),
		Buoyancy:       lerp(-0.3, 0.3, nv),
		Turbulence:     m.BaseTurbulence + m.ArousalGain*na + m.EnergyGain*energy,
		SplitThreshold: lerp(1.2, 0.9, nd),
		GravityX:       math.Sin(elapsed*freq*2.0*math.Pi) * amp,
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360.0)
	if h < 0 {
		h += 360.0
	}
	return h
}
