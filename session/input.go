package session

import (
	"time"

	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/telemetry"
)

// tap sits between the detector and the controller so every delivered
// gesture event is also recorded.
type tap struct {
	s    *Session
	next gesture.Listener
}

// SetListener implements gesture.Source.
func (t *tap) SetListener(l gesture.Listener) { t.next = l }

func (t *tap) deliver(ev gesture.Event) {
	if t.next != nil {
		t.next(ev)
	}
	t.s.recordGesture(ev)
}

// HitMaster reports whether (x, y) lies on the master bubble.
func (s *Session) HitMaster(x, y float32) bool {
	pos, size := s.Master()
	r := size.W / 2
	dx := x - (pos.X + r)
	dy := y - (pos.Y + size.H/2)
	return dx*dx+dy*dy <= r*r
}

// PointerDown starts a gesture if the pointer lands on the master bubble.
// Returns whether the pointer was captured.
func (s *Session) PointerDown(x, y float32) bool {
	return s.pointerDownAt(x, y, s.clock)
}

// PointerMove forwards a captured pointer move.
func (s *Session) PointerMove(x, y float32) {
	s.pointerMoveAt(x, y, s.clock)
}

// PointerUp releases a captured pointer.
func (s *Session) PointerUp(x, y float32) {
	s.pointerUpAt(x, y, s.clock)
}

// PointerCancel aborts a captured gesture.
func (s *Session) PointerCancel() {
	if !s.captured {
		return
	}
	s.captured = false
	pos, _ := s.Master()
	s.detector.PointerCancel(pos.X, pos.Y)
}

// Captured reports whether a gesture on the master is in progress.
func (s *Session) Captured() bool { return s.captured }

func (s *Session) pointerDownAt(x, y float32, t time.Duration) bool {
	if s.captured || !s.HitMaster(x, y) {
		return false
	}
	s.captured = true
	s.detector.PointerDown(x, y, t)
	return true
}

func (s *Session) pointerMoveAt(x, y float32, t time.Duration) {
	if s.captured {
		s.detector.PointerMove(x, y, t)
	}
}

func (s *Session) pointerUpAt(x, y float32, t time.Duration) {
	if !s.captured {
		return
	}
	s.captured = false
	s.detector.PointerUp(x, y, t)
}

// apply feeds one script step to the pointer pipeline.
func (s *Session) apply(step telemetry.ScriptStep) {
	t := step.At()
	switch step.Action {
	case telemetry.ActionDown:
		if !s.pointerDownAt(step.X, step.Y, t) {
			s.logger.Debug("script down missed the bubble", "x", step.X, "y", step.Y, "t_ms", step.TimeMs)
		}
	case telemetry.ActionMove:
		s.pointerMoveAt(step.X, step.Y, t)
	case telemetry.ActionUp:
		s.pointerUpAt(step.X, step.Y, t)
	case telemetry.ActionCancel:
		s.PointerCancel()
	}
}
