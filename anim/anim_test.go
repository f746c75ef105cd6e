package anim

import (
	"testing"
	"time"

	"github.com/pthm-cable/bubbles/physics"
)

const frame = float32(1.0 / 60.0)

// stepSim rests after a fixed number of steps.
type stepSim struct {
	value, velocity float32
	remaining       int
	steps           int
}

func (s *stepSim) Step(dt float32) bool {
	s.steps++
	s.value += s.velocity * dt
	s.remaining--
	return s.remaining <= 0
}
func (s *stepSim) Value() float32    { return s.value }
func (s *stepSim) Velocity() float32 { return s.velocity }

type endRecord struct {
	calls     int
	cancelled bool
	value     float32
}

func (r *endRecord) fn(cancelled bool, value, _ float32) {
	r.calls++
	r.cancelled = cancelled
	r.value = value
}

func TestSchedulerRunsToCompletion(t *testing.T) {
	s := NewFrameScheduler(0)
	sim := &stepSim{velocity: 60, remaining: 3}

	var updates int
	var end endRecord
	h := s.Start(sim, func(float32, float32) { updates++ }, end.fn)

	if !h.Running() || s.Active() != 1 {
		t.Fatal("expected started animation to be running")
	}

	for i := 0; i < 10; i++ {
		s.Tick(frame)
	}

	if sim.steps != 3 {
		t.Errorf("expected 3 steps, got %d", sim.steps)
	}
	if updates != 3 {
		t.Errorf("expected 3 updates, got %d", updates)
	}
	if end.calls != 1 || end.cancelled {
		t.Errorf("expected one natural end, got %+v", end)
	}
	if h.Running() || s.Active() != 0 {
		t.Error("expected no running animations after completion")
	}
}

func TestCancelIsSynchronousAndIdempotent(t *testing.T) {
	s := NewFrameScheduler(0)
	sim := &stepSim{velocity: 60, remaining: 100}

	var end endRecord
	h := s.Start(sim, nil, end.fn)
	s.Tick(frame)

	h.Cancel()
	if end.calls != 1 || !end.cancelled {
		t.Fatalf("expected immediate cancelled end, got %+v", end)
	}

	h.Cancel()
	s.Tick(frame)
	if end.calls != 1 {
		t.Errorf("expected end to fire exactly once, got %d", end.calls)
	}
	if sim.steps != 1 {
		t.Errorf("expected no steps after cancel, got %d", sim.steps)
	}
}

func TestCancelAfterCompletionIsNoop(t *testing.T) {
	s := NewFrameScheduler(0)
	var end endRecord
	h := s.Start(&stepSim{remaining: 1}, nil, end.fn)
	s.Tick(frame)
	h.Cancel()

	if end.calls != 1 || end.cancelled {
		t.Errorf("expected single natural end, got %+v", end)
	}
}

func TestCallbacksMayStartAndCancel(t *testing.T) {
	s := NewFrameScheduler(0)

	other := &stepSim{remaining: 100}
	var otherEnd endRecord
	otherHandle := s.Start(other, nil, otherEnd.fn)

	followUp := &stepSim{remaining: 2}
	var followEnd endRecord

	// First animation ends after one step, cancels the other and starts a follow-up
	s.Start(&stepSim{remaining: 1}, nil, func(cancelled bool, _, _ float32) {
		otherHandle.Cancel()
		s.Start(followUp, nil, followEnd.fn)
	})

	// Order: other was registered first so it steps once before being cancelled
	s.Tick(frame)
	if !otherEnd.cancelled || otherEnd.calls != 1 {
		t.Errorf("expected other animation cancelled, got %+v", otherEnd)
	}
	if followUp.steps != 0 {
		t.Errorf("expected follow-up to wait for next tick, got %d steps", followUp.steps)
	}

	s.Tick(frame)
	s.Tick(frame)
	if followEnd.calls != 1 || followEnd.cancelled {
		t.Errorf("expected follow-up to complete, got %+v", followEnd)
	}
}

func TestUpdateCallbackCancellingSelf(t *testing.T) {
	s := NewFrameScheduler(0)
	var end endRecord
	var h Handle
	h = s.Start(&stepSim{remaining: 1}, func(float32, float32) { h.Cancel() }, end.fn)
	s.Tick(frame)

	if end.calls != 1 || !end.cancelled {
		t.Errorf("expected exactly one cancelled end, got %+v", end)
	}
}

func TestTickClampsDT(t *testing.T) {
	s := NewFrameScheduler(0.1)
	sim := &stepSim{velocity: 100, remaining: 10}
	s.Start(sim, nil, nil)

	s.Tick(5)
	if sim.value > 10.0001 {
		t.Errorf("expected dt clamped to 0.1, value %f", sim.value)
	}

	s.Tick(-1)
	if sim.value > 10.0001 {
		t.Errorf("expected negative dt treated as 0, value %f", sim.value)
	}
}

func TestAdvanceUsesWallClock(t *testing.T) {
	s := NewFrameScheduler(1)
	sim := &stepSim{velocity: 100, remaining: 10}
	s.Start(sim, nil, nil)

	start := time.Unix(1000, 0)
	s.Advance(start)
	if sim.steps != 0 {
		t.Fatal("expected first Advance to only record time")
	}

	s.Advance(start.Add(250 * time.Millisecond))
	if sim.steps != 1 || sim.value < 24.99 || sim.value > 25.01 {
		t.Errorf("expected one 0.25s step, got %d steps value %f", sim.steps, sim.value)
	}
	if s.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", s.Ticks())
	}
}

func TestCancelAll(t *testing.T) {
	s := NewFrameScheduler(0)
	var a, b endRecord
	s.Start(&stepSim{remaining: 50}, nil, a.fn)
	s.Start(physics.NewSpring(0, 0, 100, physics.DefaultSpring, 0), nil, b.fn)

	s.CancelAll()
	if !a.cancelled || !b.cancelled || s.Active() != 0 {
		t.Errorf("expected all cancelled, got %+v %+v active=%d", a, b, s.Active())
	}
}

func TestNilHandleCancel(t *testing.T) {
	var a *Animation
	a.Cancel()
	if a.Running() {
		t.Error("expected nil animation not running")
	}
}
