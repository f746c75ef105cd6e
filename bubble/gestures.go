package bubble

import (
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/motion"
	"github.com/pthm-cable/bubbles/screen"
)

// HandleEvent applies one gesture event. Events outside a Down..Up gesture
// are ignored.
func (c *Controller) HandleEvent(ev gesture.Event) error {
	if c.stopped {
		return ErrStopped
	}
	if !c.started {
		return ErrNotStarted
	}

	switch ev.Kind {
	case gesture.Down:
		c.onDown(ev.Pos)
	case gesture.Move:
		if c.gesture.Active {
			c.onMove(ev.Pos)
		}
	case gesture.Up, gesture.Cancel:
		if c.gesture.Active {
			c.onRelease()
		}
	case gesture.Fling:
		if c.gesture.Active {
			c.onFling(ev)
		}
	}
	return nil
}

func (c *Controller) onDown(p gesture.Point) {
	// A new grab always interrupts whatever the bubble was doing.
	c.x.Cancel()
	c.y.Cancel()

	c.gesture = GestureState{
		LastDownX:     p.X,
		LastDownY:     p.Y,
		LastViewDownX: c.master.Position(axis.X),
		LastViewDownY: c.master.Position(axis.Y),
		Active:        true,
	}
	c.tracker.OnDown()
}

func (c *Controller) onMove(p gesture.Point) {
	c.tracker.AddSample(p.X, p.Y)

	offsetX := p.X - c.gesture.LastDownX
	offsetY := p.Y - c.gesture.LastDownY
	if screen.Hypot(offsetX, offsetY) > c.opts.TouchSlop {
		c.gesture.Dragging = true
	}

	if c.gesture.Dragging {
		c.x.SetPosition(c.gesture.LastViewDownX + offsetX)
		c.y.SetPosition(c.gesture.LastViewDownY + offsetY)
	}
}

func (c *Controller) onRelease() {
	c.tracker.OnUp()
	c.gesture.Dragging = false
	c.gesture.Active = false

	if !c.gesture.WasFlung {
		c.x.StickToEdge(0)
		c.y.StickToEdge(0)
	}
}

func (c *Controller) onFling(ev gesture.Event) {
	vx, vy, ok := c.tracker.AdjustedVelocity(ev.VX, ev.VY)
	if !ok {
		vx, vy = motion.Correct(
			motion.Sample{X: ev.Down.X, Y: ev.Down.Y},
			motion.Sample{X: ev.Up.X, Y: ev.Up.Y},
			ev.VX, ev.VY,
		)
	}

	c.x.Cancel()
	c.y.Cancel()

	shapedX, shapedY := motion.Shape(ev.Up.X, c.bounds.Width(), c.opts.MinFlingVelocity, vx, vy)
	c.logger.Debug("fling",
		"raw_vx", ev.VX, "raw_vy", ev.VY,
		"adjusted_vx", vx, "adjusted_vy", vy,
		"shaped_vx", shapedX, "shaped_vy", shapedY,
		"from_history", ok,
	)

	xMin, xMax := c.x.Range()
	yMin, yMax := c.y.Range()
	c.x.Fling(c.master.Position(axis.X), shapedX, xMin, xMax, c.opts.Friction)
	c.y.Fling(c.master.Position(axis.Y), shapedY, yMin, yMax, c.opts.Friction)

	c.gesture.WasFlung = true
}
