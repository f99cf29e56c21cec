// Package raster draws generated fields to images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/flowfield/field"
)

// Style controls how lines are stroked.
type Style struct {
	Background  string  // #rrggbb
	Stroke      string  // #rrggbb
	StrokeAlpha float64 // [0, 1]
	LineWidth   float64
}

// DefaultStyle is white hairlines on black.
func DefaultStyle() Style {
	return Style{
		Background:  "#000000",
		Stroke:      "#ffffff",
		StrokeAlpha: 1,
		LineWidth:   0.9,
	}
}

// ParseColor parses a #rrggbb string into an opaque colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	return c, nil
}

// RGBA parses hex and applies alpha, clamped to [0, 1].
func RGBA(hex string, alpha float64) (color.NRGBA, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Drawable reports whether a line has enough points to stroke.
func Drawable(p field.Particle) bool {
	return len(p.Line) > 1
}

// Draw clears dc with the background and strokes every drawable line.
// Surviving points are joined with straight segments, so a fragmented line
// shows a jump across the gap.
func Draw(dc *gg.Context, particles []field.Particle, style Style) error {
	bg, err := ParseColor(style.Background)
	if err != nil {
		return err
	}
	stroke, err := RGBA(style.Stroke, style.StrokeAlpha)
	if err != nil {
		return err
	}

	dc.SetColor(bg)
	dc.Clear()

	dc.SetColor(stroke)
	dc.SetLineWidth(style.LineWidth)
	dc.SetLineCapRound()

	for _, p := range particles {
		if !Drawable(p) {
			continue
		}
		dc.MoveTo(p.Line[0].X, p.Line[0].Y)
		for _, pt := range p.Line[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
	}
	return nil
}

// Render draws particles onto a new width x height image.
func Render(width, height int, particles []field.Particle, style Style) (image.Image, error) {
	dc := gg.NewContext(width, height)
	if err := Draw(dc, particles, style); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders particles and encodes the result as PNG.
func WritePNG(w io.Writer, width, height int, particles []field.Particle, style Style) error {
	dc := gg.NewContext(width, height)
	if err := Draw(dc, particles, style); err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG renders particles to a PNG file.
func SavePNG(path string, width, height int, particles []field.Particle, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePNG(f, width, height, particles, style); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
