package fluid

import "math"

// curlField is a cheap divergence-free-looking flow: two incommensurate
// sine bands per axis so the motion never visibly loops. Each component is
// bounded by [-1, 1]; turbulence scales it outside.
func curlField(x, y, t float64) (fx, fy float64) {
	fx = math.Sin(3.0*y+1.7*t)*0.5 + math.Sin(7.0*y-0.6*t)*0.5
	fy = math.Cos(3.0*x-1.3*t)*0.5 + math.Cos(5.0*x+0.8*t)*0.5
	return fx, fy
}
