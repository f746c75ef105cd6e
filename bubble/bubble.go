// Package bubble drives a draggable, flingable widget that snaps to the
// nearest screen edge.
//
// A Controller interprets the gesture stream of its master widget: drags move
// the widget directly, releases settle it against an edge with a spring and
// flings throw it with friction before settling. Each axis is an independent
// axis.Controller; starting any new motion on an axis cancels the previous
// one, so at most one simulation per axis is ever running.
package bubble

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/motion"
	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
)

var (
	ErrNoWidgets      = errors.New("bubble: no widgets")
	ErrEmptyBounds    = errors.New("bubble: bounds enclose no area")
	ErrNoScheduler    = errors.New("bubble: no animation scheduler")
	ErrNotStarted     = errors.New("bubble: controller not started")
	ErrAlreadyStarted = errors.New("bubble: controller already started")
	ErrStopped        = errors.New("bubble: controller stopped")
)

// DefaultTouchSlop is used when Options.TouchSlop is zero.
const DefaultTouchSlop = 8

// Widget is a movable visual element.
type Widget = axis.Widget

// Options configures a Controller. Scheduler is required; every other
// field has a default.
type Options struct {
	Scheduler        anim.Scheduler
	Tracker          *motion.Tracker
	Spring           physics.SpringParams
	Friction         float32 // fling friction
	TouchSlop        float32 // px before a touch becomes a drag
	MinFlingVelocity float32 // px/s, see screen.Metrics.MinFlingVelocity
	MinVisibleChange float32
	Logger           *slog.Logger
}

// GestureState is the per-gesture bookkeeping, reset on every Down.
type GestureState struct {
	LastDownX, LastDownY         float32 // pointer at Down
	LastViewDownX, LastViewDownY float32 // widget position at Down
	Dragging                     bool
	WasFlung                     bool
	Active                       bool // between Down and Up/Cancel
}

// Controller moves the master widget in response to gestures.
type Controller struct {
	widgets []Widget
	master  Widget
	bounds  screen.Bounds
	opts    Options
	tracker *motion.Tracker
	logger  *slog.Logger

	x, y *axis.Controller

	source  gesture.Source
	gesture GestureState
	started bool
	stopped bool
}

// New creates a controller for widgets within bounds. The first widget is
// the master and the only one driven; the rest are kept for the host.
func New(widgets []Widget, bounds screen.Bounds, opts Options) (*Controller, error) {
	if len(widgets) == 0 || widgets[0] == nil {
		return nil, ErrNoWidgets
	}
	if bounds.Empty() {
		return nil, ErrEmptyBounds
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Tracker == nil {
		opts.Tracker = motion.NewTracker(motion.DefaultCapacity)
	}
	if opts.Spring == (physics.SpringParams{}) {
		opts.Spring = physics.DefaultSpring
	}
	if opts.Friction <= 0 {
		opts.Friction = physics.DefaultFriction
	}
	if opts.TouchSlop <= 0 {
		opts.TouchSlop = DefaultTouchSlop
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		widgets: append([]Widget(nil), widgets...),
		master:  widgets[0],
		bounds:  bounds,
		opts:    opts,
		tracker: opts.Tracker,
		logger:  opts.Logger,
	}

	axisCfg := axis.Config{Spring: opts.Spring, MinVisibleChange: opts.MinVisibleChange}
	c.x = axis.New(axis.X, c.master, bounds, opts.Scheduler, axisCfg)
	c.y = axis.New(axis.Y, c.master, bounds, opts.Scheduler, axisCfg)

	// The horizontal throw decides when a fling is over: once x rests, y is
	// interrupted and settles from wherever it got to.
	c.x.Observe(func(t axis.Transition) {
		if t.Sim != axis.SimFling || t.Event != axis.Settled {
			return
		}
		if st := c.y.State(); st.Phase == axis.Flinging {
			c.y.StickToEdge(st.Velocity)
		}
	})

	return c, nil
}

// Start installs the controller as src's listener. A nil src is allowed
// when the host feeds HandleEvent directly.
func (c *Controller) Start(src gesture.Source) error {
	if c.stopped {
		return ErrStopped
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	c.source = src
	if src != nil {
		src.SetListener(c.onEvent)
	}
	c.logger.Debug("bubble controller started", "bounds", c.bounds, "widgets", len(c.widgets))
	return nil
}

// Stop cancels all motion and releases the widget and gesture source.
// Calling Stop again is a no-op.
func (c *Controller) Stop() {
	if c.stopped {
		return
	}
	c.x.Cancel()
	c.y.Cancel()
	if c.source != nil {
		c.source.SetListener(nil)
	}
	c.source = nil
	c.master = nil
	c.widgets = nil
	c.gesture = GestureState{}
	c.stopped = true
	c.logger.Debug("bubble controller stopped")
}

// Stopped reports whether Stop has been called.
func (c *Controller) Stopped() bool { return c.stopped }

// Bounds returns the movement bounds.
func (c *Controller) Bounds() screen.Bounds { return c.bounds }

// Master returns the driven widget, or nil after Stop.
func (c *Controller) Master() Widget { return c.master }

// Widgets returns all widgets, master first. Nil after Stop.
func (c *Controller) Widgets() []Widget { return c.widgets }

// Gesture returns the current gesture bookkeeping.
func (c *Controller) Gesture() GestureState { return c.gesture }

// Axis returns the controller for one axis.
func (c *Controller) Axis(a axis.Axis) *axis.Controller {
	if a == axis.X {
		return c.x
	}
	return c.y
}

// Observe registers fn for transitions on both axes.
func (c *Controller) Observe(fn axis.Observer) {
	c.x.Observe(fn)
	c.y.Observe(fn)
}

// Busy reports whether either axis has a simulation in flight.
func (c *Controller) Busy() bool {
	return c.x.Busy() || c.y.Busy()
}

func (c *Controller) onEvent(ev gesture.Event) {
	if err := c.HandleEvent(ev); err != nil {
		c.logger.Debug("gesture event dropped", "kind", ev.Kind, "error", err)
	}
}
