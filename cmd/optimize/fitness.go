package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/telemetry"
)

// Weights of the loss terms.
const (
	fragmentWeight   = 0.5 // per fragmented line fraction
	degenerateWeight = 1.0 // per undrawable line fraction
)

// FitnessEvaluator generates fields for candidate parameters and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	gen        *field.Generator
	seeds      []uint64
	target     float64 // desired retention ratio
	baseConfig *config.Config

	mu        sync.Mutex
	lastStats telemetry.FieldStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, gen *field.Generator, seeds []uint64, target float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		gen:        gen,
		seeds:      seeds,
		target:     target,
		baseConfig: baseCfg,
	}
}

// LastStats returns the summary averaged over seeds in the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// Evaluate computes the loss for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	stats := make([]telemetry.FieldStats, len(fe.seeds))
	for i, seed := range fe.seeds {
		fc := cfg.FieldParams()
		fc.Seed = &seed
		particles := fe.gen.Generate(fc, field.Seeded{})
		stats[i] = telemetry.Summarize(particles, fc.MaxSteps())
	}

	avg := averageStats(stats)
	fe.mu.Lock()
	fe.lastStats = avg
	fe.mu.Unlock()

	return fe.loss(avg)
}

// loss scores a summary: squared distance from the target retention plus
// penalties for broken and undrawable lines.
func (fe *FitnessEvaluator) loss(s telemetry.FieldStats) float64 {
	if s.Particles == 0 || s.Steps == 0 {
		return math.Inf(1)
	}
	n := float64(s.Particles)
	d := s.RetentionRatio - fe.target
	return d*d +
		fragmentWeight*float64(s.FragmentedLines)/n +
		degenerateWeight*float64(s.DegenerateLines)/n
}

func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// averageStats averages the fields the loss depends on.
func averageStats(stats []telemetry.FieldStats) telemetry.FieldStats {
	if len(stats) == 0 {
		return telemetry.FieldStats{}
	}
	var out telemetry.FieldStats
	var frag, degen float64
	for _, s := range stats {
		out.Particles += s.Particles
		out.RetentionRatio += s.RetentionRatio
		out.MeanPathLength += s.MeanPathLength
		frag += float64(s.FragmentedLines)
		degen += float64(s.DegenerateLines)
		out.Steps = s.Steps
	}
	n := float64(len(stats))
	out.Particles = int(math.Round(float64(out.Particles) / n))
	out.RetentionRatio /= n
	out.MeanPathLength /= n
	out.FragmentedLines = int(math.Round(frag / n))
	out.DegenerateLines = int(math.Round(degen / n))
	return out
}
