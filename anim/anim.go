// Package anim drives physics simulations from the host's frame loop.
//
// Everything here runs on the host's single UI thread: Start, Cancel and
// Tick must not be called concurrently.
package anim

import (
	"time"

	"github.com/pthm-cable/bubbles/physics"
)

// DefaultMaxDT caps a single tick so a stalled frame does not teleport a
// simulation.
const DefaultMaxDT = float32(1.0 / 15.0)

// UpdateFunc receives the simulated value after every tick.
type UpdateFunc func(value, velocity float32)

// EndFunc is called exactly once per animation. cancelled is false when the
// simulation came to rest on its own.
type EndFunc func(cancelled bool, value, velocity float32)

// Handle controls a started animation.
type Handle interface {
	// Cancel stops the animation synchronously. Safe to call repeatedly and
	// after the animation has ended.
	Cancel()
	Running() bool
}

// Scheduler starts simulations and advances them until they rest or are
// cancelled.
type Scheduler interface {
	Start(sim physics.Simulation, onUpdate UpdateFunc, onEnd EndFunc) Handle
}

// Animation is a simulation registered with a FrameScheduler.
type Animation struct {
	sim      physics.Simulation
	onUpdate UpdateFunc
	onEnd    EndFunc
	running  bool
}

// Cancel implements Handle.
func (a *Animation) Cancel() {
	if a == nil || !a.running {
		return
	}
	a.finish(true)
}

// Running implements Handle.
func (a *Animation) Running() bool {
	return a != nil && a.running
}

// Simulation returns the underlying simulation.
func (a *Animation) Simulation() physics.Simulation {
	return a.sim
}

func (a *Animation) finish(cancelled bool) {
	a.running = false
	if a.onEnd != nil {
		a.onEnd(cancelled, a.sim.Value(), a.sim.Velocity())
	}
}

// FrameScheduler steps animations once per host frame.
type FrameScheduler struct {
	active   []*Animation
	maxDT    float32
	lastTick time.Time
	ticks    int64
}

// NewFrameScheduler creates a scheduler. maxDT <= 0 uses DefaultMaxDT.
func NewFrameScheduler(maxDT float32) *FrameScheduler {
	if maxDT <= 0 {
		maxDT = DefaultMaxDT
	}
	return &FrameScheduler{maxDT: maxDT}
}

// Start implements Scheduler. The animation is first stepped on the next Tick.
func (s *FrameScheduler) Start(sim physics.Simulation, onUpdate UpdateFunc, onEnd EndFunc) Handle {
	a := &Animation{sim: sim, onUpdate: onUpdate, onEnd: onEnd, running: true}
	s.active = append(s.active, a)
	return a
}

// Tick advances every running animation by dt seconds.
// Animations started or cancelled from callbacks during the tick take effect
// immediately; new ones are first stepped on the following tick.
func (s *FrameScheduler) Tick(dt float32) {
	if dt < 0 {
		dt = 0
	}
	if dt > s.maxDT {
		dt = s.maxDT
	}
	s.ticks++

	n := len(s.active)
	for i := 0; i < n; i++ {
		a := s.active[i]
		if !a.running {
			continue
		}
		done := a.sim.Step(dt)
		if a.onUpdate != nil {
			a.onUpdate(a.sim.Value(), a.sim.Velocity())
		}
		if done && a.running {
			a.finish(false)
		}
	}
	s.compact()
}

// Advance ticks with the wall-clock time elapsed since the previous Advance.
// The first call only records the time.
func (s *FrameScheduler) Advance(now time.Time) {
	if s.lastTick.IsZero() {
		s.lastTick = now
		return
	}
	dt := float32(now.Sub(s.lastTick).Seconds())
	s.lastTick = now
	s.Tick(dt)
}

// CancelAll cancels every running animation.
func (s *FrameScheduler) CancelAll() {
	for _, a := range s.active {
		a.Cancel()
	}
	s.compact()
}

// Active returns the number of running animations.
func (s *FrameScheduler) Active() int {
	count := 0
	for _, a := range s.active {
		if a.running {
			count++
		}
	}
	return count
}

// Ticks returns the number of Tick calls so far.
func (s *FrameScheduler) Ticks() int64 {
	return s.ticks
}

// compact drops finished animations in place.
func (s *FrameScheduler) compact() {
	kept := s.active[:0]
	for _, a := range s.active {
		if a.running {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}
