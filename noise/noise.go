// Package noise provides the 2D scalar noise fields that steer flow particles.
//
// A field is built once at startup and shared by every generation run. All
// implementations are read-only after construction and safe for concurrent use.
package noise

import (
	"fmt"
	"time"
)

// Sampler returns a smooth, deterministic value in roughly [-1, 1] for any point.
type Sampler interface {
	Sample(x, y float64) float64
}

// Func adapts a plain function to a Sampler.
type Func func(x, y float64) float64

// Sample calls f(x, y).
func (f Func) Sample(x, y float64) float64 {
	return f(x, y)
}

// Constant returns a Sampler that yields v everywhere.
func Constant(v float64) Sampler {
	return Func(func(_, _ float64) float64 { return v })
}

// Kind selects a noise implementation.
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
	KindFractal Kind = "fractal"
)

// Options configures New.
type Options struct {
	Kind Kind
	Seed int64 // 0 = seed from the clock

	// Fractal only
	Alpha   float64 // amplitude divisor per octave
	Beta    float64 // frequency multiplier per octave
	Octaves int32
}

// New builds the sampler described by opts.
func New(opts Options) (Sampler, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch opts.Kind {
	case KindSimplex, "":
		return NewSimplex(seed), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	case KindFractal:
		return NewFractal(opts.Alpha, opts.Beta, opts.Octaves, seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", opts.Kind)
	}
}
