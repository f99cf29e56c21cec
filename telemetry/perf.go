package telemetry

import (
	"sort"
	"time"
)

// Phase names for one regenerate-and-draw cycle.
const (
	PhaseGenerate = "generate"
	PhaseDraw     = "draw"
	PhaseExport   = "export"
)

// PerfStats tracks execution time for each phase over recent samples.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a tracker keeping the last maxSamples per phase.
func NewPerfStats(maxSamples int) *PerfStats {
	if maxSamples < 1 {
		maxSamples = 120
	}
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: maxSamples,
	}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	p.samples[name] = append(p.samples[name], d)
	if len(p.samples[name]) > p.maxSamples {
		p.samples[name] = p.samples[name][1:]
	}
}

// Time runs fn and records its duration under name.
func (p *PerfStats) Time(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	p.Record(name, d)
	return d
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns phase names sorted by average duration (descending).
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
