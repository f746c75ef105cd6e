package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/telemetry"
)

// ErrTickBudget is returned by RunScript when the tick limit is hit before
// the script has played out and the bubble has come to rest.
var ErrTickBudget = errors.New("session: tick budget exhausted")

// DefaultMaxScriptTicks bounds RunScript when no limit is given.
const DefaultMaxScriptTicks = 60 * 60 * 10

// Step advances animations by dt seconds and records the frame.
// The host owns the perf frame: it calls StartFrame before input and
// EndFrame after rendering.
func (s *Session) Step(dt float32) {
	s.perf.StartPhase(telemetry.PhaseAnimate)
	s.clock += time.Duration(float64(dt) * float64(time.Second))
	s.scheduler.Tick(dt)
	s.tick++
	s.syncMotion()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordFrame()
}

// RunScript replays steps headlessly at a fixed dt, delivering each step on
// the first frame whose start time has reached it. It returns once every
// step has been applied and the bubble is at rest, or after maxTicks frames
// (DefaultMaxScriptTicks when maxTicks <= 0).
func (s *Session) RunScript(steps []telemetry.ScriptStep, dt float32, maxTicks int) (int, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("session: frame dt must be positive, got %g", dt)
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxScriptTicks
	}

	next := 0
	for ticks := 1; ticks <= maxTicks; ticks++ {
		s.perf.StartFrame()
		s.perf.StartPhase(telemetry.PhaseInput)
		for next < len(steps) && steps[next].At() <= s.clock {
			s.apply(steps[next])
			next++
		}
		s.Step(dt)
		s.perf.EndFrame()

		if next == len(steps) && !s.captured && !s.controller.Busy() {
			s.logger.Info("script finished", "ticks", ticks, "clock", s.clock, "steps", len(steps))
			return ticks, nil
		}
	}
	return maxTicks, fmt.Errorf("%w after %d ticks (%d of %d steps applied)", ErrTickBudget, maxTicks, next, len(steps))
}

// syncMotion mirrors the axis states into the master's Motion component.
func (s *Session) syncMotion() {
	m := s.motionMap.Get(s.master)
	x := s.controller.Axis(axis.X).State()
	y := s.controller.Axis(axis.Y).State()
	m.XPhase, m.VX = uint8(x.Phase), x.Velocity
	m.YPhase, m.VY = uint8(y.Phase), y.Velocity
}

func (s *Session) recordFrame() {
	if s.recorder != nil {
		pos, _ := s.Master()
		m := s.MasterMotion()
		rec := telemetry.MotionRecord{
			Tick:   s.tick,
			TimeMs: s.clock.Milliseconds(),
			X:      pos.X,
			Y:      pos.Y,
			XState: axis.Phase(m.XPhase).String(),
			YState: axis.Phase(m.YPhase).String(),
			VX:     m.VX,
			VY:     m.VY,
		}
		if err := s.recorder.WriteMotion(rec); err != nil {
			s.logger.Error("failed to write motion", "error", err)
		}
	}

	if !s.collector.ShouldFlush(s.tick) {
		return
	}
	stats := s.collector.Flush(s.tick)
	perf := s.perf.Stats()
	s.logger.Debug("window", "stats", stats, "perf", perf)

	if err := s.recorder.WriteStats(stats); err != nil {
		s.logger.Error("failed to write stats", "error", err)
	}
	if err := s.recorder.WritePerf(perf, s.tick); err != nil {
		s.logger.Error("failed to write perf", "error", err)
	}
}

func (s *Session) recordGesture(ev gesture.Event) {
	s.collector.RecordGesture(ev, s.controller.Gesture().Dragging)
	s.logger.Debug("gesture", "kind", ev.Kind, "x", ev.Pos.X, "y", ev.Pos.Y)
	if err := s.recorder.WriteEvent(telemetry.NewGestureRecord(s.tick, s.clock.Milliseconds(), ev)); err != nil {
		s.logger.Error("failed to write event", "error", err)
	}
}

func (s *Session) recordTransition(tr axis.Transition) {
	s.collector.RecordTransition(tr, s.clock)
	if err := s.recorder.WriteEvent(telemetry.NewTransitionRecord(s.tick, s.clock.Milliseconds(), tr)); err != nil {
		s.logger.Error("failed to write event", "error", err)
	}
}
