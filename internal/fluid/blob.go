package fluid

import colorful "github.com/lucasb-eyer/go-colorful"

// Vec2 is a position or velocity in tank coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// Blob is one lump of wax: a wrapped position, a velocity, a radius and the
// palette color it was last painted with. Radius shares the tank's units.
type Blob struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  colorful.Color
}

// Area returns the squared radius, proportional to the blob's disc area.
// Merge and split both conserve the sum of these across the population.
func (b Blob) Area() float64 {
	return b.Radius * b.Radius
}
