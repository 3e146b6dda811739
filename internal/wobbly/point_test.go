package wobbly

import (
	"math"
	"testing"
)

func TestPointMoveKeepsVelocityAndForce(t *testing.T) {
	p := Point{X: 1, Y: 2, VX: 3, VY: 4, FX: 5, FY: 6}
	p.Move(10, -2)
	if p.X != 11 || p.Y != 0 {
		t.Fatalf("position after move = (%v,%v), want (11,0)", p.X, p.Y)
	}
	if p.VX != 3 || p.VY != 4 || p.FX != 5 || p.FY != 6 {
		t.Fatalf("move touched velocity or force: %+v", p)
	}
}

func TestPointApplyForceAccumulates(t *testing.T) {
	var p Point
	p.ApplyForce(1, 2)
	p.ApplyForce(-3, 0.5)
	if p.FX != -2 || p.FY != 2.5 {
		t.Fatalf("force = (%v,%v), want (-2,2.5)", p.FX, p.FY)
	}
}

func TestPinnedPointStepReturnsZero(t *testing.T) {
	p := Point{X: 4, Y: 5, VX: 7, VY: -1, FX: 100, FY: 20, Pinned: true}
	v, f := p.Step(DefaultConfig())
	if v != 0 || f != 0 {
		t.Fatalf("pinned step = (%v,%v), want (0,0)", v, f)
	}
	if p.VX != 0 || p.VY != 0 || p.FX != 0 || p.FY != 0 {
		t.Fatalf("pinned point kept motion: %+v", p)
	}
	if p.X != 4 || p.Y != 5 {
		t.Fatalf("pinned point moved to (%v,%v)", p.X, p.Y)
	}
}

func TestPointStepIntegratesSemiImplicit(t *testing.T) {
	cfg := DefaultConfig()
	p := Point{X: 0, Y: 0, VX: 1, VY: 0, FX: 30, FY: -15}

	v, f := p.Step(cfg)

	// f = F - friction*v; v += f/mass; x += v
	wantVX := 1 + (30-2*1)/15.0
	wantVY := 0 + (-15-2*0)/15.0
	if math.Abs(p.VX-wantVX) > 1e-12 || math.Abs(p.VY-wantVY) > 1e-12 {
		t.Fatalf("velocity = (%v,%v), want (%v,%v)", p.VX, p.VY, wantVX, wantVY)
	}
	if p.X != p.VX || p.Y != p.VY {
		t.Fatalf("position should advance by the new velocity, got (%v,%v)", p.X, p.Y)
	}
	if f != 15 {
		t.Fatalf("force magnitude = %v, want |30-15| = 15", f)
	}
	if want := math.Abs(wantVX + wantVY); math.Abs(v-want) > 1e-12 {
		t.Fatalf("velocity magnitude = %v, want %v", v, want)
	}
	if p.FX != 0 || p.FY != 0 {
		t.Fatalf("force not consumed: (%v,%v)", p.FX, p.FY)
	}
}

func TestPointStepMagnitudeIsComponentSum(t *testing.T) {
	// Opposing components cancel in the aggregate metric.
	p := Point{FX: 15, FY: -15}
	v, f := p.Step(DefaultConfig())
	if f != 0 {
		t.Fatalf("force magnitude = %v, want 0", f)
	}
	if v != 0 {
		t.Fatalf("velocity magnitude = %v, want 0", v)
	}
	if p.VX != 1 || p.VY != -1 {
		t.Fatalf("velocity = (%v,%v), want (1,-1)", p.VX, p.VY)
	}
}

func TestPointAtRestStaysAtRest(t *testing.T) {
	p := Point{X: 3, Y: 9}
	for i := 0; i < 50; i++ {
		if v, f := p.Step(DefaultConfig()); v != 0 || f != 0 {
			t.Fatalf("step %d returned (%v,%v)", i, v, f)
		}
	}
	if p.X != 3 || p.Y != 9 {
		t.Fatalf("resting point drifted to (%v,%v)", p.X, p.Y)
	}
}
