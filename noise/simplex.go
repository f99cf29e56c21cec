package noise

import "github.com/ojrac/opensimplex-go"

// Simplex is 2D OpenSimplex noise.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates a simplex field from seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// Sample returns a value in [-1, 1].
func (s *Simplex) Sample(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}
