// Package physics implements the 1-D simulations that move a bubble along
// one axis: a friction-decelerated fling and a damped spring.
package physics

// Thresholds follow the host animation model: a simulation is considered at
// rest once it moves less than MinVisibleChange per frame.
const (
	// FrictionMultiplier converts a friction coefficient into an exponential
	// decay rate.
	FrictionMultiplier = -4.2
	// VelocityThresholdMultiplier converts a value threshold into px/s.
	VelocityThresholdMultiplier = 62.5
	// ValueThresholdMultiplier scales MinVisibleChange into the spring's
	// position tolerance.
	ValueThresholdMultiplier = 0.75
	// DefaultMinVisibleChange is one pixel.
	DefaultMinVisibleChange = 1.0
)

// Simulation advances a single value over time.
type Simulation interface {
	// Step advances by dt seconds and reports whether the simulation has
	// come to rest. Step must not be called again after it returns true.
	Step(dt float32) bool
	Value() float32
	Velocity() float32
}

// Run steps sim with a fixed dt until it rests or maxSteps is reached.
// Returns the number of steps taken and whether it came to rest.
func Run(sim Simulation, dt float32, maxSteps int) (int, bool) {
	for i := 1; i <= maxSteps; i++ {
		if sim.Step(dt) {
			return i, true
		}
	}
	return maxSteps, false
}

// Trace is like Run but records the value after every step.
func Trace(sim Simulation, dt float32, maxSteps int) []float32 {
	out := make([]float32, 0, maxSteps)
	for i := 0; i < maxSteps; i++ {
		done := sim.Step(dt)
		out = append(out, sim.Value())
		if done {
			break
		}
	}
	return out
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minVisible(v float32) float32 {
	if v <= 0 {
		return DefaultMinVisibleChange
	}
	return v
}
