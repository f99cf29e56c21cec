package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/field"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p90", []float64{1, 2, 3, 4, 5}, 0.9, 5.0},
		{"clamped above", []float64{1, 2}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	tests := []struct {
		name string
		line []r2.Vec
		want float64
	}{
		{"empty", nil, 0},
		{"single point", []r2.Vec{{X: 1, Y: 1}}, 0},
		{"3-4-5", []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 4}}, 5},
		{"two segments", []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathLength(tt.line); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PathLength = %v, want %v", got, tt.want)
			}
		})
	}
}

func particleWith(n, runs int) field.Particle {
	p := field.NewParticle(0, 0)
	p.Line = make([]r2.Vec, n)
	for i := range p.Line {
		p.Line[i] = r2.Vec{X: float64(i), Y: 0}
	}
	p.Runs = runs
	return p
}

func TestSummarize(t *testing.T) {
	particles := []field.Particle{
		particleWith(0, 0),
		particleWith(1, 1),
		particleWith(10, 1),
		particleWith(9, 2),
	}

	s := Summarize(particles, 10)

	if s.Particles != 4 || s.Steps != 10 {
		t.Errorf("particles/steps = %d/%d", s.Particles, s.Steps)
	}
	if s.RetainedPoints != 20 {
		t.Errorf("retained = %d, want 20", s.RetainedPoints)
	}
	if math.Abs(s.RetentionRatio-0.5) > 1e-12 {
		t.Errorf("retention = %v, want 0.5", s.RetentionRatio)
	}
	if s.EmptyLines != 1 || s.DegenerateLines != 2 || s.FragmentedLines != 1 {
		t.Errorf("empty/degenerate/fragmented = %d/%d/%d, want 1/2/1",
			s.EmptyLines, s.DegenerateLines, s.FragmentedLines)
	}
	if math.Abs(s.MeanPoints-5) > 1e-12 {
		t.Errorf("mean points = %v, want 5", s.MeanPoints)
	}
	if s.StdPoints <= 0 {
		t.Errorf("std points = %v, want > 0", s.StdPoints)
	}
	// Lengths 0, 0, 9, 8
	if math.Abs(s.MeanPathLength-4.25) > 1e-12 {
		t.Errorf("mean path length = %v, want 4.25", s.MeanPathLength)
	}
	if s.PathLengthP90 != 9 {
		t.Errorf("p90 path length = %v, want 9", s.PathLengthP90)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil, 30); s.Particles != 0 || s.RetentionRatio != 0 {
		t.Errorf("empty summary = %+v", s)
	}

	s := Summarize([]field.Particle{particleWith(3, 1)}, 30)
	if s.MeanPoints != 3 || s.StdPoints != 0 {
		t.Errorf("single particle mean/std = %v/%v, want 3/0", s.MeanPoints, s.StdPoints)
	}

	if s := Summarize([]field.Particle{particleWith(0, 0)}, 0); s.RetentionRatio != 0 {
		t.Errorf("zero steps retention = %v, want 0", s.RetentionRatio)
	}
}

func TestParticleRows(t *testing.T) {
	p := particleWith(4, 1)
	p.Pos = r2.Vec{X: 7, Y: 8}

	rows := ParticleRows(3, []field.Particle{p})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	if r.Generation != 3 || r.Index != 0 || r.Points != 4 || r.Runs != 1 || r.EndX != 7 || r.EndY != 8 || r.PathLength != 3 {
		t.Errorf("row = %+v", r)
	}
}
