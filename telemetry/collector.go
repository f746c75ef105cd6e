package telemetry

import (
	"time"

	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
)

// Collector accumulates gesture and transition events within tick windows and
// produces SessionStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	gestures, drags, flings int
	dragging                bool

	flingsSettled, flingsCancelled   int
	springsSettled, springsCancelled int

	springStart [2]time.Duration // per axis, -1 when no spring is running
	settleSum   time.Duration
}

// NewCollector creates a collector flushing every windowTicks frames.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		springStart: [2]time.Duration{-1, -1},
	}
}

// RecordGesture counts a gesture event. dragging is the controller's drag
// flag after handling ev.
func (c *Collector) RecordGesture(ev gesture.Event, dragging bool) {
	switch ev.Kind {
	case gesture.Down:
		c.gestures++
		c.dragging = false
	case gesture.Move:
		if dragging && !c.dragging {
			c.drags++
		}
		c.dragging = dragging
	case gesture.Fling:
		c.flings++
	}
}

// RecordTransition counts an axis transition observed at time now.
func (c *Collector) RecordTransition(tr axis.Transition, now time.Duration) {
	switch {
	case tr.Sim == axis.SimFling && tr.Event == axis.Settled:
		c.flingsSettled++
	case tr.Sim == axis.SimFling && tr.Event == axis.Cancelled:
		c.flingsCancelled++
	case tr.Sim == axis.SimSpring && tr.Event == axis.Started:
		c.springStart[tr.Axis] = now
	case tr.Sim == axis.SimSpring && tr.Event == axis.Settled:
		c.springsSettled++
		if start := c.springStart[tr.Axis]; start >= 0 {
			c.settleSum += now - start
		}
		c.springStart[tr.Axis] = -1
	case tr.Sim == axis.SimSpring && tr.Event == axis.Cancelled:
		c.springsCancelled++
		c.springStart[tr.Axis] = -1
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces SessionStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64) SessionStats {
	stats := SessionStats{
		WindowEndTick:   currentTick,
		Gestures:        c.gestures,
		Drags:           c.drags,
		Flings:          c.flings,
		FlingsSettled:   c.flingsSettled,
		FlingsCancelled: c.flingsCancelled,
		SpringsSettled:  c.springsSettled,
		SpringsCancel:   c.springsCancelled,
	}
	if c.springsSettled > 0 {
		stats.MeanSettle = c.settleSum / time.Duration(c.springsSettled)
		stats.MeanSettleMs = float64(stats.MeanSettle) / float64(time.Millisecond)
	}

	// Reset for next window; in-flight springs keep their start time
	c.windowStartTick = currentTick
	c.gestures, c.drags, c.flings = 0, 0, 0
	c.flingsSettled, c.flingsCancelled = 0, 0
	c.springsSettled, c.springsCancelled = 0, 0
	c.settleSum = 0

	return stats
}
