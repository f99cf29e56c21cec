// Package telemetry summarizes generated fields and writes run outputs.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flowfield/field"
)

// FieldStats holds aggregated statistics for one generated field.
type FieldStats struct {
	Generation int     `csv:"generation"`
	Particles  int     `csv:"particles"`
	Steps      int     `csv:"steps"`
	DurationMs float64 `csv:"duration_ms"`

	// Points surviving the bounds filter
	RetainedPoints int     `csv:"retained_points"`
	RetentionRatio float64 `csv:"retention_ratio"` // retained / (particles * steps)
	MeanPoints     float64 `csv:"mean_points"`
	StdPoints      float64 `csv:"std_points"`

	// Line shape
	EmptyLines      int `csv:"empty_lines"`
	DegenerateLines int `csv:"degenerate_lines"` // fewer than 2 points, not drawable
	FragmentedLines int `csv:"fragmented_lines"` // more than one in-bounds run

	// Drawn length, jumps across gaps included
	MeanPathLength float64 `csv:"mean_path_length"`
	PathLengthP50  float64 `csv:"path_length_p50"`
	PathLengthP90  float64 `csv:"path_length_p90"`
}

// PathLength returns the summed segment length of a polyline.
func PathLength(line []r2.Vec) float64 {
	var total float64
	for i := 1; i < len(line); i++ {
		total += r2.Norm(r2.Sub(line[i], line[i-1]))
	}
	return total
}

// Quantile returns the empirical p-quantile of sorted values, 0 if empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summarize computes statistics over trimmed particles. steps is the
// per-particle line length before trimming.
func Summarize(particles []field.Particle, steps int) FieldStats {
	s := FieldStats{Particles: len(particles), Steps: steps}
	if len(particles) == 0 {
		return s
	}

	points := make([]float64, len(particles))
	lengths := make([]float64, len(particles))
	for i, p := range particles {
		n := len(p.Line)
		points[i] = float64(n)
		lengths[i] = PathLength(p.Line)
		s.RetainedPoints += n

		if n == 0 {
			s.EmptyLines++
		}
		if n < 2 {
			s.DegenerateLines++
		}
		if p.Runs > 1 {
			s.FragmentedLines++
		}
	}

	if total := len(particles) * steps; total > 0 {
		s.RetentionRatio = float64(s.RetainedPoints) / float64(total)
	}

	if len(points) > 1 {
		s.MeanPoints, s.StdPoints = stat.MeanStdDev(points, nil)
	} else {
		s.MeanPoints = points[0]
	}
	s.MeanPathLength = stat.Mean(lengths, nil)

	sort.Float64s(lengths)
	s.PathLengthP50 = Quantile(lengths, 0.5)
	s.PathLengthP90 = Quantile(lengths, 0.9)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("particles", s.Particles),
		slog.Int("steps", s.Steps),
		slog.Float64("duration_ms", s.DurationMs),
		slog.Int("retained_points", s.RetainedPoints),
		slog.Float64("retention_ratio", s.RetentionRatio),
		slog.Int("degenerate_lines", s.DegenerateLines),
		slog.Int("fragmented_lines", s.FragmentedLines),
		slog.Float64("mean_path_length", s.MeanPathLength),
	)
}

// ParticleRow is one particles.csv record.
type ParticleRow struct {
	Generation int     `csv:"generation"`
	Index      int     `csv:"index"`
	StartX     float64 `csv:"start_x"`
	StartY     float64 `csv:"start_y"`
	EndX       float64 `csv:"end_x"`
	EndY       float64 `csv:"end_y"`
	Points     int     `csv:"points"`
	Runs       int     `csv:"runs"`
	PathLength float64 `csv:"path_length"`
}

// ParticleRows flattens particles into CSV records.
func ParticleRows(generation int, particles []field.Particle) []ParticleRow {
	rows := make([]ParticleRow, len(particles))
	for i, p := range particles {
		rows[i] = ParticleRow{
			Generation: generation,
			Index:      i,
			StartX:     p.Start.X,
			StartY:     p.Start.Y,
			EndX:       p.Pos.X,
			EndY:       p.Pos.Y,
			Points:     len(p.Line),
			Runs:       p.Runs,
			PathLength: PathLength(p.Line),
		}
	}
	return rows
}
