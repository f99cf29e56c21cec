package field

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
)

// newRand returns a Mersenne Twister backed generator. A nil seed draws one
// from the clock, so positions are not reproducible.
func newRand(seed *uint64) *rand.Rand {
	src := prng.NewMT19937()
	if seed != nil {
		src.Seed(*seed)
	} else {
		src.Seed(uint64(time.Now().UnixNano()))
	}
	return rand.New(src)
}

// Seed places count particles uniformly inside the margin-inset rectangle of a
// width x height space. Draws are sequential (x then y per particle), so a
// fixed seed reproduces the same positions.
func Seed(count int, width, height, margin float64, seed *uint64) []Particle {
	if count <= 0 {
		return []Particle{}
	}

	rng := newRand(seed)
	b := NewBounds(width, height, margin)
	particles := make([]Particle, 0, count)

	for i := 0; i < count; i++ {
		x := openUniform(rng, b.MinWidth, b.MaxWidth)
		y := openUniform(rng, b.MinHeight, b.MaxHeight)
		particles = append(particles, NewParticle(x, y))
	}

	return particles
}

// maxRedraws bounds the retries for intervals too narrow to hold a float
// strictly between their ends.
const maxRedraws = 64

// openUniform draws from (lo, hi). An empty or non-finite interval yields lo.
func openUniform(rng *rand.Rand, lo, hi float64) float64 {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return lo
	}
	for i := 0; i < maxRedraws; i++ {
		v := lo + rng.Float64()*span
		if v > lo && v < hi {
			return v
		}
	}
	return lo + span/2
}
