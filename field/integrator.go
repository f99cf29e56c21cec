package field

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/noise"
)

// Params are the per-step integration constants.
type Params struct {
	Amplitude  float64 // noise-to-angle scale (radians per unit noise)
	Damping    float64 // velocity decay applied after each move, expected in (0, 1]
	Frequency  float64 // noise sampling frequency
	StepLength float64 // velocity added per step
}

// Step advances p by one step and returns the new state. The returned line
// never shares spare capacity with p.Line, so p stays valid and can be
// stepped again.
func Step(p Particle, n noise.Sampler, prm Params) Particle {
	p.Line = slices.Clip(p.Line)
	return step(p, n, prm)
}

// step is Step without the clip. It appends into p.Line's spare capacity, so
// only callers that own the line may use it.
func step(p Particle, n noise.Sampler, prm Params) Particle {
	angle := n.Sample(p.Pos.X*prm.Frequency, p.Pos.Y*prm.Frequency) * prm.Amplitude

	p.Vel = r2.Add(p.Vel, r2.Vec{
		X: math.Cos(angle) * prm.StepLength,
		Y: math.Sin(angle) * prm.StepLength,
	})
	p.Pos = r2.Add(p.Pos, p.Vel)

	// Damping lags the move by one step
	p.Vel = r2.Scale(prm.Damping, p.Vel)

	p.Line = append(p.Line, p.Pos)
	return p
}

// Integrate steps p until its line holds at least steps points. The line is
// copied before growing, so p.Line is left as it was.
func Integrate(p Particle, n noise.Sampler, prm Params, steps int) Particle {
	missing := steps - len(p.Line)
	if missing <= 0 {
		return p
	}
	line := make([]r2.Vec, len(p.Line), steps)
	copy(line, p.Line)
	p.Line = line
	for len(p.Line) < steps {
		p = step(p, n, prm)
	}
	return p
}
