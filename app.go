package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/export"
	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/raster"
	"github.com/pthm-cable/flowfield/telemetry"
)

// app owns one generator and the most recent field it produced.
type app struct {
	cfg    *config.Config
	gen    *field.Generator
	out    *telemetry.OutputManager
	perf   *telemetry.PerfStats
	starts []field.Particle // provided start points, nil = seed fresh particles
	seed   uint64           // fixed particle seed, 0 = new seed per generation

	generation int
	lastSeed   uint64
	current    field.Config
	particles  []field.Particle
	stats      telemetry.FieldStats
}

func newApp(cfg *config.Config, gen *field.Generator, out *telemetry.OutputManager) *app {
	return &app{
		cfg:  cfg,
		gen:  gen,
		out:  out,
		perf: telemetry.NewPerfStats(120),
	}
}

// nextSeed returns the particle seed for the next run.
func (a *app) nextSeed() uint64 {
	if a.seed != 0 {
		return a.seed
	}
	if a.cfg.Field.Seed != nil {
		return *a.cfg.Field.Seed
	}
	return uint64(time.Now().UnixMilli())
}

// regenerate builds a new field at the given size from the current config.
func (a *app) regenerate(width, height float64) error {
	fc := a.cfg.FieldParams()
	fc.Width = width
	fc.Height = height
	seed := a.nextSeed()
	fc.Seed = &seed

	var src field.Source = field.Seeded{}
	if a.starts != nil {
		src = field.Provided{Particles: a.starts}
	}

	var particles []field.Particle
	d := a.perf.Time(telemetry.PhaseGenerate, func() {
		particles = a.gen.Generate(fc, src)
	})

	a.generation++
	a.lastSeed = seed
	a.current = fc
	a.particles = particles
	a.stats = telemetry.Summarize(particles, fc.MaxSteps())
	a.stats.Generation = a.generation
	a.stats.DurationMs = float64(d) / float64(time.Millisecond)

	slog.Info("field generated", "stats", a.stats, "seed", seed)

	if err := a.out.WriteStats(a.stats); err != nil {
		return err
	}
	return a.out.WriteParticles(telemetry.ParticleRows(a.generation, particles))
}

// style returns the raster style from the render config. Unset colours fall
// back to the default style.
func (a *app) style() raster.Style {
	r := a.cfg.Render
	s := raster.DefaultStyle()
	if r.Background != "" {
		s.Background = r.Background
	}
	if r.Stroke != "" {
		s.Stroke = r.Stroke
	}
	s.StrokeAlpha = r.StrokeAlpha
	s.LineWidth = r.LineWidth
	return s
}

// document snapshots the current field for export.
func (a *app) document() *export.Document {
	params := export.FromConfig(a.current)
	style := a.style()
	params.StrokeAlpha = style.StrokeAlpha
	params.LineWidth = style.LineWidth
	params.BackgroundColor = style.Background
	params.StrokeColor = style.Stroke
	return export.NewDocument(time.Now(), params, a.particles)
}

// download writes the current field as JSON, into the output directory when
// one is set, else the working directory.
func (a *app) download() (string, error) {
	if a.particles == nil {
		return "", fmt.Errorf("no particles available for download")
	}

	doc := a.document()
	var path string
	var err error
	a.perf.Time(telemetry.PhaseExport, func() {
		if a.out != nil {
			path, err = a.out.WriteDocument(doc)
			return
		}
		path = export.FileName(doc.Timestamp)
		err = export.WriteFile(path, doc)
	})
	if err != nil {
		return "", err
	}

	slog.Info("field exported", "path", path, "particles", len(doc.Particles))
	return path, nil
}
