package physics

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Stiffness and damping presets of the host animation toolkit.
const (
	StiffnessHigh     = 10000
	StiffnessMedium   = 1500
	StiffnessLow      = 200
	StiffnessVeryLow  = 50
	DampingHighBouncy = 0.2
	// DampingMediumBouncy is the default damping for sticking to an edge.
	DampingMediumBouncy = 0.5
	DampingLowBouncy    = 0.75
	DampingNoBouncy     = 1
)

// SpringParams is an immutable spring description shared by value.
type SpringParams struct {
	Stiffness    float32 `yaml:"stiffness"`
	DampingRatio float32 `yaml:"damping_ratio"`
}

// DefaultSpring is low stiffness with a medium bounce.
var DefaultSpring = SpringParams{Stiffness: StiffnessLow, DampingRatio: DampingMediumBouncy}

// AngularFrequency returns the undamped natural frequency for unit mass.
func (p SpringParams) AngularFrequency() float64 {
	if p.Stiffness <= 0 {
		return 0
	}
	return math.Sqrt(float64(p.Stiffness))
}

// Spring pulls a value toward target as a damped harmonic oscillator.
type Spring struct {
	value, velocity, target           float32
	params                            SpringParams
	valueThreshold, velocityThreshold float32
}

// NewSpring starts a spring at start moving with velocity toward target.
// minVisibleChange <= 0 uses DefaultMinVisibleChange.
func NewSpring(start, velocity, target float32, params SpringParams, minVisibleChange float32) *Spring {
	valueThreshold := minVisible(minVisibleChange) * ValueThresholdMultiplier
	return &Spring{
		value:             start,
		velocity:          velocity,
		target:            target,
		params:            params,
		valueThreshold:    valueThreshold,
		velocityThreshold: valueThreshold * VelocityThresholdMultiplier,
	}
}

// Step implements Simulation. On rest the value snaps to target.
func (s *Spring) Step(dt float32) bool {
	if dt > 0 {
		h := harmonica.NewSpring(float64(dt), s.params.AngularFrequency(), float64(s.params.DampingRatio))
		pos, vel := h.Update(float64(s.value), float64(s.velocity), float64(s.target))
		s.value, s.velocity = float32(pos), float32(vel)
	}

	if abs32(s.velocity) < s.velocityThreshold && abs32(s.value-s.target) < s.valueThreshold {
		s.value = s.target
		s.velocity = 0
		return true
	}
	return false
}

// Value implements Simulation.
func (s *Spring) Value() float32 { return s.value }

// Velocity implements Simulation.
func (s *Spring) Velocity() float32 { return s.velocity }

// Target returns the rest position.
func (s *Spring) Target() float32 { return s.target }
