package axis

import (
	"testing"

	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
)

const frame = float32(1.0 / 60.0)

type fakeWidget struct {
	pos  [2]float32
	w, h float32
}

func (f *fakeWidget) Position(a Axis) float32       { return f.pos[a] }
func (f *fakeWidget) SetPosition(a Axis, v float32) { f.pos[a] = v }
func (f *fakeWidget) Size() (float32, float32)      { return f.w, f.h }

type recorder struct {
	events []Transition
}

func (r *recorder) observe(t Transition) { r.events = append(r.events, t) }

func (r *recorder) count(sim SimKind, ev EventKind) int {
	n := 0
	for _, t := range r.events {
		if t.Sim == sim && t.Event == ev {
			n++
		}
	}
	return n
}

func newTestController(a Axis, w *fakeWidget, bounds screen.Bounds) (*Controller, *anim.FrameScheduler, *recorder) {
	sched := anim.NewFrameScheduler(0)
	c := New(a, w, bounds, sched, Config{Spring: physics.DefaultSpring})
	rec := &recorder{}
	c.Observe(rec.observe)
	return c, sched, rec
}

func settle(sched *anim.FrameScheduler, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if sched.Active() == 0 {
			return i
		}
		sched.Tick(frame)
	}
	return maxTicks
}

func TestStickToEdgeX(t *testing.T) {
	bounds := screen.Bounds{Left: 0, Top: 0, Right: 100, Bottom: 200}

	tests := []struct {
		name  string
		start float32
		want  float32
	}{
		{"left of midpoint", 5, 0},
		{"right edge", 80, 80},
		{"just right of midpoint", 60, 80},
		{"at midpoint goes right", 50, 80},
		{"off-screen left", -30, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &fakeWidget{w: 20, h: 20}
			w.pos[X] = tc.start
			c, sched, _ := newTestController(X, w, bounds)

			c.StickToEdge(0)
			if ticks := settle(sched, 1200); ticks == 1200 {
				t.Fatal("expected spring to settle")
			}
			if w.pos[X] != tc.want {
				t.Errorf("expected rest at %f, got %f", tc.want, w.pos[X])
			}
			if c.State().Phase != Idle {
				t.Errorf("expected idle after settle, got %v", c.State().Phase)
			}
		})
	}
}

func TestStickToEdgeY(t *testing.T) {
	bounds := screen.Bounds{Left: 0, Top: 0, Right: 100, Bottom: 200}

	tests := []struct {
		name  string
		start float32
		want  float32
		moves bool
	}{
		{"above top", -10, 0, true},
		{"below bottom", 205, 180, true},
		{"inside", 50, 50, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &fakeWidget{w: 20, h: 20}
			w.pos[Y] = tc.start
			c, sched, rec := newTestController(Y, w, bounds)

			c.StickToEdge(0)
			if got := rec.count(SimSpring, Started) == 1; got != tc.moves {
				t.Fatalf("expected spring started=%v, got %v", tc.moves, got)
			}
			settle(sched, 1200)

			if w.pos[Y] != tc.want {
				t.Errorf("expected rest at %f, got %f", tc.want, w.pos[Y])
			}
			if c.State().Phase != Idle {
				t.Errorf("expected idle, got %v", c.State().Phase)
			}
		})
	}
}

func TestSecondFlingCancelsFirst(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	c, sched, rec := newTestController(X, w, screen.Bounds{Right: 1000, Bottom: 1000})

	c.Fling(100, 2000, 0, 980, physics.DefaultFriction)
	sched.Tick(frame)
	c.Fling(w.pos[X], -2000, 0, 980, physics.DefaultFriction)

	if len(rec.events) < 3 {
		t.Fatalf("expected start, cancel, start; got %+v", rec.events)
	}
	first := rec.events[1]
	if first.Sim != SimFling || first.Event != Cancelled {
		t.Errorf("expected first fling to report cancelled, got %+v", first)
	}
	if rec.count(SimFling, Settled) != 0 {
		t.Error("expected no fling to have completed")
	}
	if sched.Active() != 1 {
		t.Errorf("expected exactly one active simulation, got %d", sched.Active())
	}
}

func TestFlingHandsOffToSpring(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	c, sched, rec := newTestController(X, w, screen.Bounds{Right: 100, Bottom: 200})

	c.Fling(10, 5000, 0, 80, physics.DefaultFriction)
	if c.State().Phase != Flinging {
		t.Fatalf("expected flinging, got %v", c.State().Phase)
	}

	settle(sched, 1200)

	if rec.count(SimFling, Settled) != 1 {
		t.Errorf("expected fling to settle once, events %+v", rec.events)
	}
	if rec.count(SimSpring, Settled) != 1 {
		t.Errorf("expected spring to settle once, events %+v", rec.events)
	}
	if w.pos[X] != 80 {
		t.Errorf("expected rest on right edge 80, got %f", w.pos[X])
	}
	if sched.Active() != 0 || c.Busy() {
		t.Error("expected nothing running")
	}
}

func TestFlingClampsStartIntoRange(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	w.pos[X] = -40
	c, _, _ := newTestController(X, w, screen.Bounds{Right: 100, Bottom: 200})

	c.Fling(w.pos[X], 0, 0, 80, physics.DefaultFriction)
	if w.pos[X] != 0 {
		t.Errorf("expected clamped start 0, got %f", w.pos[X])
	}
}

func TestCancel(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	w.pos[X] = 30
	c, sched, rec := newTestController(X, w, screen.Bounds{Right: 100, Bottom: 200})

	// Idle cancel is a no-op
	c.Cancel()
	c.Cancel()
	if len(rec.events) != 0 {
		t.Fatalf("expected no transitions from idle cancel, got %+v", rec.events)
	}

	c.StickToEdge(0)
	sched.Tick(frame)
	sched.Tick(frame)
	stopped := w.pos[X]

	c.Cancel()
	if rec.count(SimSpring, Cancelled) != 1 {
		t.Errorf("expected one cancelled spring, got %+v", rec.events)
	}
	for i := 0; i < 10; i++ {
		sched.Tick(frame)
	}
	if w.pos[X] != stopped {
		t.Errorf("expected position frozen at %f after cancel, got %f", stopped, w.pos[X])
	}
	if c.State().Phase != Idle || c.Busy() {
		t.Errorf("expected idle after cancel, got %v", c.State())
	}
}

func TestSetPositionCancelsSimulation(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	w.pos[Y] = -50
	c, sched, rec := newTestController(Y, w, screen.Bounds{Right: 100, Bottom: 200})

	c.StickToEdge(0)
	sched.Tick(frame)

	c.SetPosition(42)
	if rec.count(SimSpring, Cancelled) != 1 {
		t.Errorf("expected drag to cancel the spring, got %+v", rec.events)
	}
	if c.State().Phase != Dragging {
		t.Errorf("expected dragging, got %v", c.State().Phase)
	}
	sched.Tick(frame)
	if w.pos[Y] != 42 {
		t.Errorf("expected drag position to stick, got %f", w.pos[Y])
	}
}

func TestObserverCanRedirectOnFlingEnd(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	c, sched, rec := newTestController(X, w, screen.Bounds{Right: 100, Bottom: 200})

	redirected := false
	c.Observe(func(tr Transition) {
		if tr.Sim == SimFling && tr.Event == Settled && !redirected {
			redirected = true
			c.StickToEdge(0)
		}
	})

	c.Fling(10, 5000, 0, 80, physics.DefaultFriction)
	settle(sched, 1200)

	// Only the observer's spring ran; the default hand-off saw a busy axis
	if rec.count(SimSpring, Started) != 1 {
		t.Errorf("expected a single spring, got %+v", rec.events)
	}
}

func TestRange(t *testing.T) {
	w := &fakeWidget{w: 20, h: 30}
	bounds := screen.Bounds{Left: 0, Top: 10, Right: 100, Bottom: 200}

	x := New(X, w, bounds, anim.NewFrameScheduler(0), Config{})
	if lo, hi := x.Range(); lo != 0 || hi != 80 {
		t.Errorf("expected x range [0, 80], got [%f, %f]", lo, hi)
	}
	y := New(Y, w, bounds, anim.NewFrameScheduler(0), Config{})
	if lo, hi := y.Range(); lo != 10 || hi != 170 {
		t.Errorf("expected y range [10, 170], got [%f, %f]", lo, hi)
	}
}

func TestStringers(t *testing.T) {
	if X.String() != "x" || Y.String() != "y" {
		t.Error("unexpected axis names")
	}
	if Settling.String() != "settling" || Idle.String() != "idle" {
		t.Error("unexpected phase names")
	}
	if SimFling.String() != "fling" || Cancelled.String() != "cancelled" {
		t.Error("unexpected event names")
	}
}
