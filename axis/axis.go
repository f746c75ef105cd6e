// Package axis implements the per-axis motion state machine of a bubble:
// direct drag writes, friction flings and spring settles, with at most one
// simulation running per axis.
package axis

import (
	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
)

// Axis selects a spatial dimension.
type Axis uint8

const (
	X Axis = iota
	Y
)

func (a Axis) String() string {
	if a == X {
		return "x"
	}
	return "y"
}

// Widget is the visual element a controller moves.
type Widget interface {
	Position(a Axis) float32
	SetPosition(a Axis, v float32)
	Size() (w, h float32)
}

// Phase is the motion phase of one axis.
type Phase uint8

const (
	Idle Phase = iota
	Dragging
	Flinging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Flinging:
		return "flinging"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// State is the current phase plus the last simulated velocity.
type State struct {
	Phase    Phase
	Velocity float32
}

// SimKind identifies the simulation behind a Transition.
type SimKind uint8

const (
	SimFling SimKind = iota
	SimSpring
)

func (k SimKind) String() string {
	if k == SimFling {
		return "fling"
	}
	return "spring"
}

// EventKind is what happened to a simulation.
type EventKind uint8

const (
	Started EventKind = iota
	Settled
	Cancelled
)

func (e EventKind) String() string {
	switch e {
	case Started:
		return "started"
	case Settled:
		return "settled"
	default:
		return "cancelled"
	}
}

// Transition reports a simulation lifecycle event on an axis.
type Transition struct {
	Axis     Axis
	Sim      SimKind
	Event    EventKind
	Value    float32
	Velocity float32
	Target   float32 // spring rest position; zero for flings
}

// Observer receives transitions synchronously on the UI thread.
type Observer func(Transition)

// Config holds the constants every simulation on an axis shares.
type Config struct {
	Spring           physics.SpringParams
	MinVisibleChange float32
}

// Controller owns the motion of one axis of a widget.
type Controller struct {
	axis      Axis
	widget    Widget
	bounds    screen.Bounds
	scheduler anim.Scheduler
	cfg       Config

	fling  anim.Handle
	settle anim.Handle
	state  State

	observers []Observer
}

// New creates an idle controller for one axis.
func New(a Axis, w Widget, bounds screen.Bounds, scheduler anim.Scheduler, cfg Config) *Controller {
	return &Controller{
		axis:      a,
		widget:    w,
		bounds:    bounds,
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// Axis returns the controlled axis.
func (c *Controller) Axis() Axis { return c.axis }

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Position returns the widget's current position on this axis.
func (c *Controller) Position() float32 {
	return c.widget.Position(c.axis)
}

// Observe registers fn for every transition on this axis.
func (c *Controller) Observe(fn Observer) {
	c.observers = append(c.observers, fn)
}

// Busy reports whether a fling or settle is in flight.
func (c *Controller) Busy() bool {
	return running(c.fling) || running(c.settle)
}

// SetPosition writes v directly, cancelling any running simulation.
func (c *Controller) SetPosition(v float32) {
	c.Cancel()
	c.widget.SetPosition(c.axis, v)
	c.state = State{Phase: Dragging}
}

// Fling starts a friction-decelerated throw from start (clamped into
// [min, max]). When it comes to rest on its own the axis sticks to its edge
// with the remaining velocity.
func (c *Controller) Fling(start, velocity, min, max, friction float32) {
	c.Cancel()

	sim := physics.NewFling(start, velocity, min, max, friction, c.cfg.MinVisibleChange)
	c.widget.SetPosition(c.axis, sim.Value())
	c.state = State{Phase: Flinging, Velocity: velocity}

	var h anim.Handle
	h = c.scheduler.Start(sim,
		func(value, v float32) {
			c.widget.SetPosition(c.axis, value)
			c.state = State{Phase: Flinging, Velocity: v}
		},
		func(cancelled bool, value, v float32) {
			if c.fling == h {
				c.fling = nil
			}
			if cancelled {
				c.notify(Transition{Sim: SimFling, Event: Cancelled, Value: value, Velocity: v})
				return
			}
			c.state = State{Phase: Idle}
			c.notify(Transition{Sim: SimFling, Event: Settled, Value: value, Velocity: v})
			// An observer may already have moved the axis on.
			if !c.Busy() {
				c.StickToEdge(v)
			}
		},
	)
	c.fling = h
	c.notify(Transition{Sim: SimFling, Event: Started, Value: sim.Value(), Velocity: velocity})
}

// StickToEdge springs the widget toward the edge this axis rests against.
// If the axis has no edge to go to it stays put and becomes idle.
func (c *Controller) StickToEdge(velocity float32) {
	c.Cancel()

	start := c.Position()
	target, ok := c.EdgeTarget(start)
	if !ok {
		return
	}

	sim := physics.NewSpring(start, velocity, target, c.cfg.Spring, c.cfg.MinVisibleChange)
	c.state = State{Phase: Settling, Velocity: velocity}

	var h anim.Handle
	h = c.scheduler.Start(sim,
		func(value, v float32) {
			c.widget.SetPosition(c.axis, value)
			c.state = State{Phase: Settling, Velocity: v}
		},
		func(cancelled bool, value, v float32) {
			if c.settle == h {
				c.settle = nil
			}
			ev := Transition{Sim: SimSpring, Event: Cancelled, Value: value, Velocity: v, Target: target}
			if !cancelled {
				c.state = State{Phase: Idle}
				ev.Event = Settled
			}
			c.notify(ev)
		},
	)
	c.settle = h
	c.notify(Transition{Sim: SimSpring, Event: Started, Value: start, Velocity: velocity, Target: target})
}

// EdgeTarget returns where a widget at pos should come to rest.
//
// X always rests against a side: left when pos is left of the bounds'
// midpoint, otherwise right (minus the widget width). Y has no resting side
// and only corrects out-of-bounds positions: above Top snaps to Top, below
// Bottom snaps to Bottom minus the widget height.
func (c *Controller) EdgeTarget(pos float32) (float32, bool) {
	w, h := c.widget.Size()
	if c.axis == X {
		if pos < c.bounds.CenterX() {
			return c.bounds.Left, true
		}
		return c.bounds.Right - w, true
	}
	switch {
	case pos < c.bounds.Top:
		return c.bounds.Top, true
	case pos > c.bounds.Bottom:
		return c.bounds.Bottom - h, true
	}
	return 0, false
}

// Range returns the fling range on this axis: the bounds shrunk by the
// widget's size on the far side.
func (c *Controller) Range() (min, max float32) {
	w, h := c.widget.Size()
	if c.axis == X {
		return c.bounds.Left, c.bounds.Right - w
	}
	return c.bounds.Top, c.bounds.Bottom - h
}

// Cancel stops any running fling or settle. Idempotent.
func (c *Controller) Cancel() {
	if c.fling != nil {
		h := c.fling
		c.fling = nil
		h.Cancel()
	}
	if c.settle != nil {
		h := c.settle
		c.settle = nil
		h.Cancel()
	}
	c.state = State{Phase: Idle}
}

func (c *Controller) notify(t Transition) {
	t.Axis = c.axis
	for _, fn := range c.observers {
		fn(t)
	}
}

func running(h anim.Handle) bool {
	return h != nil && h.Running()
}
