// Package config provides configuration loading and access for flow field runs.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/noise"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Field    FieldConfig    `yaml:"field"`
	Noise    NoiseConfig    `yaml:"noise"`
	Render   RenderConfig   `yaml:"render"`
	Parallel ParallelConfig `yaml:"parallel"`
	Output   OutputConfig   `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the generation parameters.
type FieldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Count     int     `yaml:"count"`
	Amplitude float64 `yaml:"amplitude"` // noise-to-angle scale
	Damping   float64 `yaml:"damping"`   // per-step velocity decay
	Margin    float64 `yaml:"margin"`    // fractional inset of the bounding rectangle
	Scale     float64 `yaml:"scale"`     // drives steps, step length and frequency
	Seed      *uint64 `yaml:"seed,omitempty"`
}

// NoiseConfig selects the shared noise field.
type NoiseConfig struct {
	Kind    string  `yaml:"kind"`
	Seed    int64   `yaml:"seed"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	Background  string  `yaml:"background"`
	Stroke      string  `yaml:"stroke"`
	StrokeAlpha float64 `yaml:"stroke_alpha"`
	LineWidth   float64 `yaml:"line_width"`
	TargetFPS   int     `yaml:"target_fps"`
}

// ParallelConfig holds integration worker settings.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`
	Threshold int `yaml:"threshold"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxSteps   int
	StepLength float64
	Frequency  float64
	Workers    int // Parallel.Workers, or GOMAXPROCS when unset
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fc := c.FieldParams()
	prm := fc.Params()
	c.Derived.MaxSteps = fc.MaxSteps()
	c.Derived.StepLength = prm.StepLength
	c.Derived.Frequency = prm.Frequency

	c.Derived.Workers = c.Parallel.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}
}

// Recompute refreshes derived values after fields were edited in place.
func (c *Config) Recompute() {
	c.computeDerived()
}

// FieldParams returns the generation settings as a field.Config.
func (c *Config) FieldParams() field.Config {
	return field.Config{
		Width:     c.Field.Width,
		Height:    c.Field.Height,
		Count:     c.Field.Count,
		Amplitude: c.Field.Amplitude,
		Damping:   c.Field.Damping,
		Margin:    c.Field.Margin,
		Scale:     c.Field.Scale,
		Seed:      c.Field.Seed,
	}
}

// NoiseOptions returns the noise settings as noise.Options.
func (c *Config) NoiseOptions() noise.Options {
	return noise.Options{
		Kind:    noise.Kind(c.Noise.Kind),
		Seed:    c.Noise.Seed,
		Alpha:   c.Noise.Alpha,
		Beta:    c.Noise.Beta,
		Octaves: c.Noise.Octaves,
	}
}

// GeneratorOptions returns the field.Generator options for this config.
func (c *Config) GeneratorOptions() []field.Option {
	return []field.Option{
		field.WithWorkers(c.Derived.Workers),
		field.WithParallelThreshold(c.Parallel.Threshold),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
