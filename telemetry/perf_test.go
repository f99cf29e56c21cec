package telemetry

import (
	"testing"
	"time"
)

func TestPerfStatsAverage(t *testing.T) {
	p := NewPerfStats(10)
	p.Record(PhaseGenerate, 10*time.Millisecond)
	p.Record(PhaseGenerate, 20*time.Millisecond)
	p.Record(PhaseDraw, 5*time.Millisecond)

	if got := p.Avg(PhaseGenerate); got != 15*time.Millisecond {
		t.Errorf("generate avg = %v, want 15ms", got)
	}
	if got := p.Total(); got != 20*time.Millisecond {
		t.Errorf("total = %v, want 20ms", got)
	}
	if got := p.Avg("missing"); got != 0 {
		t.Errorf("missing avg = %v, want 0", got)
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseGenerate {
		t.Errorf("sorted names = %v", names)
	}
}

func TestPerfStatsRollingWindow(t *testing.T) {
	p := NewPerfStats(3)
	for i := 1; i <= 5; i++ {
		p.Record(PhaseDraw, time.Duration(i)*time.Millisecond)
	}
	// Keeps 3, 4, 5
	if got := p.Avg(PhaseDraw); got != 4*time.Millisecond {
		t.Errorf("avg = %v, want 4ms", got)
	}
}

func TestPerfStatsTime(t *testing.T) {
	p := NewPerfStats(0)
	called := false
	d := p.Time(PhaseExport, func() { called = true })
	if !called {
		t.Fatal("fn not called")
	}
	if p.Avg(PhaseExport) != d {
		t.Errorf("recorded %v, returned %v", p.Avg(PhaseExport), d)
	}
}
