package physics

import "math"

// DefaultFriction is the throw friction used when none is configured.
const DefaultFriction = 0.5

// minFriction keeps the decay rate away from zero.
const minFriction = 1e-3

// Fling decelerates a value by friction, stopping at min/max or when the
// velocity drops below threshold.
type Fling struct {
	value, velocity   float32
	min, max          float32
	rate              float64 // friction * FrictionMultiplier
	velocityThreshold float32
}

// NewFling starts a fling at start (clamped into [min, max]).
// minVisibleChange <= 0 uses DefaultMinVisibleChange.
func NewFling(start, velocity, min, max, friction, minVisibleChange float32) *Fling {
	if max < min {
		max = min
	}
	if start < min {
		start = min
	} else if start > max {
		start = max
	}
	if friction < minFriction {
		friction = minFriction
	}
	return &Fling{
		value:             start,
		velocity:          velocity,
		min:               min,
		max:               max,
		rate:              float64(friction) * FrictionMultiplier,
		velocityThreshold: minVisible(minVisibleChange) * VelocityThresholdMultiplier,
	}
}

// Step implements Simulation.
// Reaching min or max stops the fling with velocity intact so the caller can
// hand it to a spring; stopping on low speed zeroes the velocity.
func (f *Fling) Step(dt float32) bool {
	v := float64(f.velocity)
	decay := math.Exp(f.rate * float64(dt))

	f.value = float32(float64(f.value) - v/f.rate + v/f.rate*decay)
	f.velocity = float32(v * decay)

	if f.value <= f.min {
		f.value = f.min
		return true
	}
	if f.value >= f.max {
		f.value = f.max
		return true
	}
	if abs32(f.velocity) < f.velocityThreshold {
		f.velocity = 0
		return true
	}
	return false
}

// Value implements Simulation.
func (f *Fling) Value() float32 { return f.value }

// Velocity implements Simulation.
func (f *Fling) Velocity() float32 { return f.velocity }

// Min returns the lower bound.
func (f *Fling) Min() float32 { return f.min }

// Max returns the upper bound.
func (f *Fling) Max() float32 { return f.max }
