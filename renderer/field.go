// Package renderer draws generated fields with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/raster"
)

// FieldRenderer strokes particle lines onto the window.
type FieldRenderer struct {
	background rl.Color
	stroke     rl.Color
	lineWidth  float32
	points     []rl.Vector2 // scratch for one line
}

// NewFieldRenderer creates a renderer for style. Colours are parsed once; a
// bad colour string is returned as an error.
func NewFieldRenderer(style raster.Style) (*FieldRenderer, error) {
	r := &FieldRenderer{}
	if err := r.SetStyle(style); err != nil {
		return nil, err
	}
	return r, nil
}

// SetStyle replaces the colours and line width.
func (r *FieldRenderer) SetStyle(style raster.Style) error {
	bg, err := raster.RGBA(style.Background, 1)
	if err != nil {
		return err
	}
	stroke, err := raster.RGBA(style.Stroke, style.StrokeAlpha)
	if err != nil {
		return err
	}
	r.background = rl.Color{R: bg.R, G: bg.G, B: bg.B, A: 255}
	r.stroke = rl.Color{R: stroke.R, G: stroke.G, B: stroke.B, A: stroke.A}
	r.lineWidth = float32(style.LineWidth)
	return nil
}

// Draw clears to the background and strokes every line with two or more
// points as a single strip, jumps across trimmed gaps included.
func (r *FieldRenderer) Draw(particles []field.Particle) {
	rl.ClearBackground(r.background)

	for i := range particles {
		line := particles[i].Line
		if len(line) < 2 {
			continue
		}
		r.points = r.points[:0]
		for _, p := range line {
			r.points = append(r.points, rl.Vector2{X: float32(p.X), Y: float32(p.Y)})
		}
		rl.DrawSplineLinear(r.points, r.lineWidth, r.stroke)
	}
}

// DrawBounds outlines the rectangle lines are trimmed to.
func (r *FieldRenderer) DrawBounds(b field.Bounds) {
	box := b.Box()
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(box.Min.X),
		Y:      float32(box.Min.Y),
		Width:  float32(box.Max.X - box.Min.X),
		Height: float32(box.Max.Y - box.Min.Y),
	}, 1, rl.Fade(r.stroke, 0.4))
}
