package motion

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestShapeRampsRightward(t *testing.T) {
	// Release at 25% of width moving right: ramp target = 1000 * 0.75 = 750
	vx, vy := Shape(25, 100, 1000, 100, 50)
	if !approxEqual(vx, 750, 1e-3) {
		t.Errorf("expected vx 750, got %f", vx)
	}
	// Same proportional boost (7.5x) applied to y
	if !approxEqual(vy, 375, 1e-3) {
		t.Errorf("expected vy 375, got %f", vy)
	}
}

func TestShapeRampsLeftward(t *testing.T) {
	// Release at 80% of width moving left: ramp target = 1000 * 0.8 = 800
	vx, vy := Shape(80, 100, 1000, -200, -100)
	if !approxEqual(vx, -800, 1e-3) {
		t.Errorf("expected vx -800, got %f", vx)
	}
	if !approxEqual(vy, -400, 1e-3) {
		t.Errorf("expected vy -400, got %f", vy)
	}
}

func TestShapeKeepsFastFlings(t *testing.T) {
	vx, vy := Shape(50, 100, 1000, 3000, -1200)
	if vx != 3000 || vy != -1200 {
		t.Errorf("expected fast fling unchanged, got (%f, %f)", vx, vy)
	}

	vx, vy = Shape(50, 100, 1000, -3000, 1200)
	if vx != -3000 || vy != 1200 {
		t.Errorf("expected fast leftward fling unchanged, got (%f, %f)", vx, vy)
	}
}

func TestShapePreservesRatio(t *testing.T) {
	cases := []struct {
		releaseX, vx, vy float32
	}{
		{10, 50, 80},
		{90, -50, 80},
		{50, 1, -1},
		{0, -400, 20},
		{100, 400, -20},
		{33, 0.5, 999},
	}

	for _, c := range cases {
		vx, vy := Shape(c.releaseX, 100, 2000, c.vx, c.vy)
		want := c.vy * (vx/c.vx - 1)
		if !approxEqual(vy-c.vy, want, 1e-2*float32(math.Max(1, math.Abs(float64(want))))) {
			t.Errorf("Shape(%v): vy'-vy = %f, want %f", c, vy-c.vy, want)
		}
		if (vx > 0) != (c.vx > 0) {
			t.Errorf("Shape(%v): sign flipped, got vx %f", c, vx)
		}
	}
}

func TestShapeZeroVelocity(t *testing.T) {
	vx, vy := Shape(40, 100, 1000, 0, 250)

	if math.IsNaN(float64(vx)) || math.IsInf(float64(vx), 0) {
		t.Fatalf("expected finite vx, got %f", vx)
	}
	// Zero horizontal velocity falls into the leftward branch
	if !approxEqual(vx, -400, 1e-3) {
		t.Errorf("expected vx -400, got %f", vx)
	}
	// Ratio treated as 1: vy unscaled
	if vy != 250 {
		t.Errorf("expected vy 250, got %f", vy)
	}
}

func TestShapeZeroWidth(t *testing.T) {
	vx, vy := Shape(40, 0, 1000, 10, 10)
	if math.IsNaN(float64(vx)) || math.IsNaN(float64(vy)) {
		t.Fatalf("expected finite output, got (%f, %f)", vx, vy)
	}
	if vx != 1000 || vy != 1000 {
		t.Errorf("expected (1000, 1000), got (%f, %f)", vx, vy)
	}
}

func TestShapeAtLeftEdgeMovingLeft(t *testing.T) {
	// At xNorm = 0 the leftward ramp target is 0, nothing to boost
	vx, vy := Shape(0, 100, 1000, -0, 30)
	if vx != 0 || vy != 30 {
		t.Errorf("expected (0, 30), got (%f, %f)", vx, vy)
	}
}
