// Package field generates flow-field geometry: particles seeded inside a
// margin-inset rectangle, steered step by step by a noise field, and traced
// into polylines trimmed to the rectangle.
package field

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is a point mass advanced through the field.
type Particle struct {
	Pos   r2.Vec   // current position
	Vel   r2.Vec   // current velocity
	Start r2.Vec   // position before the first step
	Line  []r2.Vec // visited positions, one per step

	// Runs is the number of contiguous in-bounds stretches the line had
	// before filtering. More than one means the filtered line is fragmented.
	Runs int
}

// NewParticle returns a particle at rest at (x, y) with an empty line.
func NewParticle(x, y float64) Particle {
	pos := r2.Vec{X: x, Y: y}
	return Particle{Pos: pos, Start: pos}
}

// Clone returns a copy that shares no memory with p.
func (p Particle) Clone() Particle {
	p.Line = slices.Clone(p.Line)
	return p
}
