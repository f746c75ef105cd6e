package main

import (
	"math"

	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
)

const (
	frameDT       = float32(1.0 / 60.0)
	maxEvalTicks  = 60 * 5
	widgetSize    = 84
	maxOvershoot  = 12.0 // px a settle may bounce past its edge before it is penalised
	missedPenalty = 5.0  // seconds-equivalent cost for a fling that lands on the wrong side
)

// Scenario is one reference motion: a settle from start, or a fling when
// Velocity is non-zero. WantEdge is the x the bubble should rest at.
type Scenario struct {
	Name     string
	Start    float32
	Velocity float32
	WantEdge float32
}

// Result is what one scenario measured.
type Result struct {
	SettleSec float64
	Overshoot float64 // px past the final edge
	Missed    bool
}

// Evaluator scores spring and friction settings against fixed scenarios.
type Evaluator struct {
	bounds    screen.Bounds
	scenarios []Scenario
}

// NewEvaluator creates an evaluator for a screen of the given width.
func NewEvaluator(width float32) *Evaluator {
	bounds := screen.Bounds{Right: width, Bottom: width * 2}
	right := width - widgetSize
	return &Evaluator{
		bounds: bounds,
		scenarios: []Scenario{
			{Name: "settle_right", Start: width*0.5 + 40, WantEdge: right},
			{Name: "settle_offscreen", Start: -60, WantEdge: 0},
			{Name: "fling_across", Start: width * 0.2, Velocity: 1500, WantEdge: right},
			{Name: "fling_back", Start: right, Velocity: -2500, WantEdge: 0},
		},
	}
}

// Scenarios returns the reference scenarios.
func (e *Evaluator) Scenarios() []Scenario { return e.scenarios }

// Evaluate returns the summed cost of all scenarios for raw parameter values
// {stiffness, damping_ratio, friction}. Lower is better.
func (e *Evaluator) Evaluate(raw []float64) float64 {
	spring, friction := springOf(raw)

	var cost float64
	for _, sc := range e.scenarios {
		r := e.Run(sc, spring, friction)
		cost += r.SettleSec + 0.02*r.Overshoot + 0.2*math.Max(0, r.Overshoot-maxOvershoot)
		if r.Missed {
			cost += missedPenalty
		}
	}
	return cost
}

// Run plays one scenario on an x-axis controller.
func (e *Evaluator) Run(sc Scenario, spring physics.SpringParams, friction float32) Result {
	w := &probe{w: widgetSize, h: widgetSize}
	w.x = sc.Start
	sched := anim.NewFrameScheduler(0)
	c := axis.New(axis.X, w, e.bounds, sched, axis.Config{Spring: spring})

	if sc.Velocity != 0 {
		lo, hi := c.Range()
		c.Fling(sc.Start, sc.Velocity, lo, hi, friction)
	} else {
		c.StickToEdge(0)
	}

	var overshoot float64
	ticks := 0
	for ; ticks < maxEvalTicks && sched.Active() > 0; ticks++ {
		sched.Tick(frameDT)
		overshoot = math.Max(overshoot, past(w.x, sc.WantEdge, e.bounds))
	}

	return Result{
		SettleSec: float64(ticks) * float64(frameDT),
		Overshoot: overshoot,
		Missed:    w.x != sc.WantEdge,
	}
}

// past returns how far x lies beyond edge on the outside of the movement range.
func past(x, edge float32, b screen.Bounds) float64 {
	if edge <= b.CenterX() {
		return float64(max(0, edge-x))
	}
	return float64(max(0, x-edge))
}

// probe is a bare widget for headless evaluation.
type probe struct {
	x, y float32
	w, h float32
}

func (p *probe) Position(a axis.Axis) float32 {
	if a == axis.X {
		return p.x
	}
	return p.y
}

func (p *probe) SetPosition(a axis.Axis, v float32) {
	if a == axis.X {
		p.x = v
	} else {
		p.y = v
	}
}

func (p *probe) Size() (float32, float32) { return p.w, p.h }

func springOf(raw []float64) (physics.SpringParams, float32) {
	return physics.SpringParams{Stiffness: float32(raw[0]), DampingRatio: float32(raw[1])}, float32(raw[2])
}
