package field

import "gonum.org/v1/gonum/spatial/r2"

// Bounds is the margin-inset rectangle particles are seeded in and lines are
// trimmed to.
type Bounds struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// NewBounds insets a width x height space by margin*dimension on each side.
// margin is expected in [0, 0.5); nothing is validated.
func NewBounds(width, height, margin float64) Bounds {
	marginWidth := width * margin
	marginHeight := height * margin

	return Bounds{
		MinWidth:  marginWidth,
		MaxWidth:  width - marginWidth,
		MinHeight: marginHeight,
		MaxHeight: height - marginHeight,
	}
}

// Contains reports whether p lies strictly inside the rectangle.
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X > b.MinWidth &&
		p.X < b.MaxWidth &&
		p.Y > b.MinHeight &&
		p.Y < b.MaxHeight
}

// Box returns the rectangle as an r2.Box.
func (b Bounds) Box() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.MinWidth, Y: b.MinHeight},
		Max: r2.Vec{X: b.MaxWidth, Y: b.MaxHeight},
	}
}

// Filter returns the points of line that lie inside b, in order, and the
// number of contiguous inside runs. Points are tested one by one, so a line
// that leaves and re-enters keeps both sides with nothing in between.
func (b Bounds) Filter(line []r2.Vec) (kept []r2.Vec, runs int) {
	kept = make([]r2.Vec, 0, len(line))
	inside := false
	for _, p := range line {
		if !b.Contains(p) {
			inside = false
			continue
		}
		if !inside {
			runs++
			inside = true
		}
		kept = append(kept, p)
	}
	return kept, runs
}
