// Package telemetry records bubble motion and gestures to CSV, replays gesture
// scripts and tracks frame timing.
package telemetry

import (
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
)

// Event sources.
const (
	SourceGesture = "gesture"
	SourceAxis    = "axis"
)

// EventRecord is one row of events.csv: either a gesture event delivered to
// the controller or a simulation transition on one axis.
type EventRecord struct {
	Tick   int64   `csv:"tick"`
	TimeMs int64   `csv:"t_ms"`
	Source string  `csv:"source"`
	Kind   string  `csv:"kind"`
	Axis   string  `csv:"axis"`
	Sim    string  `csv:"sim"`
	X      float32 `csv:"x"`
	Y      float32 `csv:"y"`
	VX     float32 `csv:"vx"`
	VY     float32 `csv:"vy"`
	Target float32 `csv:"target"`
}

// NewGestureRecord creates a record for a gesture event.
func NewGestureRecord(tick, timeMs int64, ev gesture.Event) EventRecord {
	return EventRecord{
		Tick:   tick,
		TimeMs: timeMs,
		Source: SourceGesture,
		Kind:   ev.Kind.String(),
		X:      ev.Pos.X,
		Y:      ev.Pos.Y,
		VX:     ev.VX,
		VY:     ev.VY,
	}
}

// NewTransitionRecord creates a record for an axis transition.
// Value goes in X or Y depending on the axis.
func NewTransitionRecord(tick, timeMs int64, tr axis.Transition) EventRecord {
	r := EventRecord{
		Tick:   tick,
		TimeMs: timeMs,
		Source: SourceAxis,
		Kind:   tr.Event.String(),
		Axis:   tr.Axis.String(),
		Sim:    tr.Sim.String(),
		Target: tr.Target,
	}
	if tr.Axis == axis.X {
		r.X, r.VX = tr.Value, tr.Velocity
	} else {
		r.Y, r.VY = tr.Value, tr.Velocity
	}
	return r
}

// MotionRecord is one row of motion.csv: the master widget after a frame.
type MotionRecord struct {
	Tick   int64   `csv:"tick"`
	TimeMs int64   `csv:"t_ms"`
	X      float32 `csv:"x"`
	Y      float32 `csv:"y"`
	XState string  `csv:"x_state"`
	YState string  `csv:"y_state"`
	VX     float32 `csv:"vx"`
	VY     float32 `csv:"vy"`
}
