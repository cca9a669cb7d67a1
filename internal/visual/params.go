// Package visual maps smoothed emotion onto the knobs a lava lamp exposes:
// palette, blob population, and the fluid shaping factors.
package visual

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a hue/saturation/value color. H is in degrees, S and V in [0, 1].
type HSV struct {
	H float64
	S float64
	V float64
}

// RGB converts the color to sRGB.
func (c HSV) RGB() colorful.Color {
	return colorful.Hsv(c.H, c.S, c.V)
}

// Hex returns a display-ready "#rrggbb" string.
func (c HSV) Hex() string {
	return colorful.Hsv(c.H, c.S, c.V).Clamped().Hex()
}

// Params is one tick's worth of lamp appearance and fluid shaping. The
// mapper builds a fresh value every tick and consumers read it by value;
// nothing downstream ever mutates a snapshot.
type Params struct {
	HSVPrimary   HSV
	HSVSecondary HSV
	RGBPrimary   colorful.Color

	BlobCount    int     // target population
	BlobSizeMean float64 // target mean radius, domain units

	SurfaceTension float64 // 0.2 (slack) .. 1.0 (taut)
	Viscosity      float64 // 1.0 (syrup) .. 0.2 (thin)
	Buoyancy       float64 // negative sinks, positive rises
	Turbulence     float64 // flow-field drive
	SplitThreshold float64 // size-ratio shaping factor for renderers
	GravityX       float64 // lateral sway, oscillates with time
}
