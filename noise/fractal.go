package noise

import "github.com/aquilax/go-perlin"

// Fractal sums several octaves of Perlin noise.
type Fractal struct {
	noise *perlin.Perlin
}

// NewFractal creates an octave-summed field. alpha weight falloff per octave,
// beta frequency growth per octave. Non-positive values fall back to 2, 2, 3.
func NewFractal(alpha, beta float64, octaves int32, seed int64) *Fractal {
	if alpha <= 0 {
		alpha = 2
	}
	if beta <= 0 {
		beta = 2
	}
	if octaves <= 0 {
		octaves = 3
	}
	return &Fractal{noise: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Sample returns the octave sum at (x, y).
func (f *Fractal) Sample(x, y float64) float64 {
	return f.noise.Noise2D(x, y)
}
