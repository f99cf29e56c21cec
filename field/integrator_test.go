package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/noise"
)

func TestStepStraightLine(t *testing.T) {
	prm := Params{Amplitude: 5, Damping: 0.5, Frequency: 0.001, StepLength: 5}
	p := NewParticle(10, 10)

	p = Step(p, noise.Constant(0), prm)
	if p.Pos != (r2.Vec{X: 15, Y: 10}) {
		t.Errorf("after step 1 pos = %v, want (15, 10)", p.Pos)
	}
	if p.Vel != (r2.Vec{X: 2.5, Y: 0}) {
		t.Errorf("after step 1 vel = %v, want (2.5, 0)", p.Vel)
	}

	p = Step(p, noise.Constant(0), prm)
	if p.Pos != (r2.Vec{X: 22.5, Y: 10}) {
		t.Errorf("after step 2 pos = %v, want (22.5, 10)", p.Pos)
	}
	if p.Vel != (r2.Vec{X: 3.75, Y: 0}) {
		t.Errorf("after step 2 vel = %v, want (3.75, 0)", p.Vel)
	}

	want := []r2.Vec{{X: 15, Y: 10}, {X: 22.5, Y: 10}}
	if len(p.Line) != len(want) {
		t.Fatalf("line has %d points, want %d", len(p.Line), len(want))
	}
	for i := range want {
		if p.Line[i] != want[i] {
			t.Errorf("line[%d] = %v, want %v", i, p.Line[i], want[i])
		}
	}
}

func TestStepAngleFromNoise(t *testing.T) {
	// noise 0.25 * amplitude 2 = 0.5 rad
	prm := Params{Amplitude: 2, Damping: 1, Frequency: 1, StepLength: 3}
	p := Step(NewParticle(0, 0), noise.Constant(0.25), prm)

	wantX := math.Cos(0.5) * 3
	wantY := math.Sin(0.5) * 3
	if math.Abs(p.Pos.X-wantX) > 1e-12 || math.Abs(p.Pos.Y-wantY) > 1e-12 {
		t.Errorf("pos = %v, want (%v, %v)", p.Pos, wantX, wantY)
	}
}

func TestStepSamplesScaledPosition(t *testing.T) {
	var gotX, gotY float64
	n := noise.Func(func(x, y float64) float64 {
		gotX, gotY = x, y
		return 0
	})

	Step(NewParticle(200, 400), n, Params{Amplitude: 1, Damping: 1, Frequency: 0.01, StepLength: 1})

	if math.Abs(gotX-2) > 1e-12 || math.Abs(gotY-4) > 1e-12 {
		t.Errorf("sampled (%v, %v), want (2, 4)", gotX, gotY)
	}
}

func TestStepZeroDampingForgetsVelocity(t *testing.T) {
	n := noise.Func(func(x, y float64) float64 { return math.Sin(x*7) + y })
	prm := Params{Amplitude: 3, Damping: 0, Frequency: 0.01, StepLength: 5}

	p1 := Step(NewParticle(120, 80), n, prm)
	if p1.Vel.X != 0 || p1.Vel.Y != 0 {
		t.Fatalf("velocity after damping 0 = %v, want 0", p1.Vel)
	}

	angle := n.Sample(p1.Pos.X*prm.Frequency, p1.Pos.Y*prm.Frequency) * prm.Amplitude
	before := p1.Pos
	p2 := Step(p1, n, prm)

	dx := p2.Pos.X - before.X
	dy := p2.Pos.Y - before.Y
	if math.Abs(dx-math.Cos(angle)*5) > 1e-9 || math.Abs(dy-math.Sin(angle)*5) > 1e-9 {
		t.Errorf("step 2 moved (%v, %v), want (%v, %v)", dx, dy, math.Cos(angle)*5, math.Sin(angle)*5)
	}
}

func TestStepNoDampingClamp(t *testing.T) {
	// damping >= 1 keeps accumulating velocity
	prm := Params{Amplitude: 1, Damping: 1, Frequency: 1, StepLength: 2}
	p := NewParticle(0, 0)
	for i := 0; i < 10; i++ {
		p = Step(p, noise.Constant(0), prm)
	}
	if p.Vel.X != 20 {
		t.Errorf("vel.X = %v, want 20", p.Vel.X)
	}
}

func TestStepDoesNotCheckBounds(t *testing.T) {
	prm := Params{Amplitude: 1, Damping: 1, Frequency: 1, StepLength: 1000}
	p := Integrate(NewParticle(0, 0), noise.Constant(0), prm, 5)
	if len(p.Line) != 5 {
		t.Fatalf("line has %d points, want 5", len(p.Line))
	}
	if p.Line[4].X != 15000 {
		t.Errorf("last x = %v, want 15000", p.Line[4].X)
	}
}

func TestIntegrateTopsUpLine(t *testing.T) {
	prm := Params{Amplitude: 1, Damping: 0.5, Frequency: 1, StepLength: 1}

	p := NewParticle(0, 0)
	p.Line = []r2.Vec{{X: -1, Y: -1}, {X: -2, Y: -2}}

	p = Integrate(p, noise.Constant(0), prm, 5)
	if len(p.Line) != 5 {
		t.Fatalf("line has %d points, want 5", len(p.Line))
	}
	if p.Line[0] != (r2.Vec{X: -1, Y: -1}) {
		t.Errorf("existing point changed to %v", p.Line[0])
	}

	// Already long enough: untouched
	q := Integrate(p, noise.Constant(0), prm, 3)
	if len(q.Line) != 5 || q.Pos != p.Pos {
		t.Errorf("Integrate stepped a full line")
	}
}

func TestStepIsValueTransformation(t *testing.T) {
	prm := Params{Amplitude: 1, Damping: 0.5, Frequency: 1, StepLength: 2.5}

	p := NewParticle(0, 0)
	p.Line = make([]r2.Vec, 1, 8) // spare capacity to share
	p.Line[0] = p.Pos

	a := Step(p, noise.Constant(0), prm)
	want := a.Line[1]

	b := Step(p, noise.Constant(0.5), prm)
	if a.Line[1] != want {
		t.Errorf("stepping p again rewrote the first result: %v, want %v", a.Line[1], want)
	}
	if b.Line[1] == want {
		t.Errorf("second step should follow a different angle, got %v", b.Line[1])
	}
	if len(p.Line) != 1 || p.Pos != (r2.Vec{}) {
		t.Errorf("input particle changed: %+v", p)
	}
}

func TestIntegrateLeavesInputLine(t *testing.T) {
	prm := Params{Amplitude: 1, Damping: 0.5, Frequency: 1, StepLength: 1}

	p := NewParticle(0, 0)
	p.Line = make([]r2.Vec, 0, 10)

	a := Integrate(p, noise.Constant(0), prm, 4)
	b := Integrate(p, noise.Constant(1), prm, 4)
	if a.Line[0] == b.Line[0] {
		t.Fatalf("different noise gave the same first point %v", a.Line[0])
	}
	if a.Line[0] != (r2.Vec{X: 1, Y: 0}) {
		t.Errorf("first result rewritten to %v", a.Line[0])
	}
}
