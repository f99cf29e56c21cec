// Package export writes and reads the JSON document describing a generated
// field: when it was made, the parameters used, and every particle's start
// point and trimmed polyline.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/field"
)

// Point is an [x, y] pair.
type Point [2]float64

// Parameters are the settings a field was generated and drawn with.
type Parameters struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Count     int     `json:"count"`
	Amplitude float64 `json:"amplitude"`
	Damping   float64 `json:"damping"`
	Margin    float64 `json:"margin"`
	Scale     float64 `json:"scale"`
	Seed      *uint64 `json:"seed,omitempty"`

	StrokeAlpha     float64 `json:"strokeAlpha,omitempty"`
	LineWidth       float64 `json:"lineWidth,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	StrokeColor     string  `json:"strokeColor,omitempty"`
}

// FromConfig copies the generation settings of cfg.
func FromConfig(cfg field.Config) Parameters {
	return Parameters{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Count:     cfg.Count,
		Amplitude: cfg.Amplitude,
		Damping:   cfg.Damping,
		Margin:    cfg.Margin,
		Scale:     cfg.Scale,
		Seed:      cfg.Seed,
	}
}

// Config returns the generation settings as a field.Config.
func (p Parameters) Config() field.Config {
	return field.Config{
		Width:     p.Width,
		Height:    p.Height,
		Count:     p.Count,
		Amplitude: p.Amplitude,
		Damping:   p.Damping,
		Margin:    p.Margin,
		Scale:     p.Scale,
		Seed:      p.Seed,
	}
}

// Particle is one exported trajectory.
type Particle struct {
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	Points []Point `json:"points"`
}

// Document is the exported field.
type Document struct {
	Timestamp  time.Time  `json:"timestamp"`
	Parameters Parameters `json:"parameters"`
	Particles  []Particle `json:"particles"`
}

// NewDocument builds a document from generated particles.
func NewDocument(now time.Time, params Parameters, particles []field.Particle) *Document {
	doc := &Document{
		Timestamp:  now.UTC(),
		Parameters: params,
		Particles:  make([]Particle, len(particles)),
	}
	for i, p := range particles {
		points := make([]Point, len(p.Line))
		for j, v := range p.Line {
			points[j] = Point{v.X, v.Y}
		}
		doc.Particles[i] = Particle{StartX: p.Start.X, StartY: p.Start.Y, Points: points}
	}
	return doc
}

// StartParticles returns particles at rest on each exported start point, for
// re-running the export through a field.Provided source. With the same noise
// field this reproduces the exported lines.
func (d *Document) StartParticles() []field.Particle {
	out := make([]field.Particle, len(d.Particles))
	for i, p := range d.Particles {
		out[i] = field.NewParticle(p.StartX, p.StartY)
	}
	return out
}

// Lines returns the exported polylines.
func (d *Document) Lines() [][]r2.Vec {
	lines := make([][]r2.Vec, len(d.Particles))
	for i, p := range d.Particles {
		line := make([]r2.Vec, len(p.Points))
		for j, pt := range p.Points {
			line[j] = r2.Vec{X: pt[0], Y: pt[1]}
		}
		lines[i] = line
	}
	return lines
}

// FileName returns the conventional export name for a document made at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("flow-field-%d.json", now.UnixMilli())
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding field document: %w", err)
	}
	return nil
}

// WriteFile writes doc to path.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding field document: %w", err)
	}
	return &doc, nil
}

// ReadFile reads a document from path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
