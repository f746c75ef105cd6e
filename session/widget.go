package session

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/components"
)

// widget is an axis.Widget backed by an entity's ECS components.
type widget struct {
	entity ecs.Entity
	pos    *ecs.Map[components.Position]
	size   *ecs.Map[components.Size]
}

func (w *widget) Position(a axis.Axis) float32 {
	p := w.pos.Get(w.entity)
	if a == axis.X {
		return p.X
	}
	return p.Y
}

func (w *widget) SetPosition(a axis.Axis, v float32) {
	p := w.pos.Get(w.entity)
	if a == axis.X {
		p.X = v
	} else {
		p.Y = v
	}
}

func (w *widget) Size() (float32, float32) {
	s := w.size.Get(w.entity)
	return s.W, s.H
}
