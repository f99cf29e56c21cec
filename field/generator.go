package field

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/pthm-cable/flowfield/noise"
)

// Config describes one generation run.
type Config struct {
	Width     float64
	Height    float64
	Count     int
	Amplitude float64
	Damping   float64
	Margin    float64
	Scale     float64
	Seed      *uint64 // nil = non-reproducible positions
}

// DefaultConfig returns the stock settings for a width x height space.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:     width,
		Height:    height,
		Count:     1000,
		Amplitude: 5,
		Damping:   0.1,
		Margin:    0.1,
		Scale:     1,
	}
}

// MaxSteps is round(30*scale). Non-positive or non-finite scales take no steps.
func (c Config) MaxSteps() int {
	steps := math.Round(30 * c.Scale)
	if !(steps > 0) || steps > math.MaxInt32 {
		return 0
	}
	return int(steps)
}

// Params derives the integration constants from the config. scale must be
// positive; zero gives an infinite frequency.
func (c Config) Params() Params {
	return Params{
		Amplitude:  c.Amplitude,
		Damping:    c.Damping,
		Frequency:  0.001 / c.Scale,
		StepLength: 5 * c.Scale,
	}
}

// Bounds returns the rectangle lines are trimmed to.
func (c Config) Bounds() Bounds {
	return NewBounds(c.Width, c.Height, c.Margin)
}

// Source says where a run's particles come from: Seeded or Provided.
type Source interface {
	particles(cfg Config) []Particle
}

// Seeded draws fresh particles from the config's count, margin and seed.
type Seeded struct{}

func (Seeded) particles(cfg Config) []Particle {
	return Seed(cfg.Count, cfg.Width, cfg.Height, cfg.Margin, cfg.Seed)
}

// Provided uses the given particles as-is. Their positions, velocities and
// lines carry over and are extended. The slice itself is not modified.
type Provided struct {
	Particles []Particle
}

func (s Provided) particles(Config) []Particle {
	out := make([]Particle, len(s.Particles))
	for i, p := range s.Particles {
		out[i] = p.Clone()
	}
	return out
}

// parallelThreshold is the minimum particle count to use parallel integration.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// Generator turns configs into traced, trimmed particles over one noise field.
type Generator struct {
	noise     noise.Sampler
	workers   int
	threshold int
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the integration worker count. n <= 1 integrates serially.
func WithWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// WithParallelThreshold sets the particle count at which workers kick in.
func WithParallelThreshold(n int) Option {
	return func(g *Generator) { g.threshold = n }
}

// WithLogger sets the logger for per-run debug records.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator sampling n. n is shared by every run.
func NewGenerator(n noise.Sampler, opts ...Option) *Generator {
	g := &Generator{
		noise:     n,
		workers:   runtime.GOMAXPROCS(0),
		threshold: parallelThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate resolves src, steps each particle until its line holds
// cfg.MaxSteps() points, then trims every line to cfg.Bounds(). Particles whose
// trimmed line is empty or a single point are kept.
func (g *Generator) Generate(cfg Config, src Source) []Particle {
	if src == nil {
		src = Seeded{}
	}
	start := time.Now()

	steps := cfg.MaxSteps()
	prm := cfg.Params()
	particles := src.particles(cfg)

	g.integrateAll(particles, prm, steps)

	bounds := cfg.Bounds()
	retained := 0
	for i := range particles {
		particles[i].Line, particles[i].Runs = bounds.Filter(particles[i].Line)
		retained += len(particles[i].Line)
	}

	g.logger.Debug("field generated",
		"particles", len(particles),
		"steps", steps,
		"retained_points", retained,
		"duration", time.Since(start),
	)

	return particles
}
