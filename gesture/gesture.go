// Package gesture turns raw pointer input into the gesture events a bubble
// controller consumes.
package gesture

import "fmt"

// Kind is the type of a gesture event.
type Kind uint8

const (
	Down Kind = iota
	Move
	Up
	Cancel
	Fling
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	case Fling:
		return "fling"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Point is a raw pointer coordinate in screen space.
type Point struct {
	X, Y float32
}

// Event is a single gesture event.
// Down, Move, Up and Cancel carry the pointer position in Pos. Fling carries
// the gesture's down and up positions and the raw release velocity in px/s.
type Event struct {
	Kind   Kind
	Pos    Point
	Down   Point
	Up     Point
	VX, VY float32
}

// DownAt creates a Down event.
func DownAt(x, y float32) Event { return Event{Kind: Down, Pos: Point{x, y}} }

// MoveTo creates a Move event.
func MoveTo(x, y float32) Event { return Event{Kind: Move, Pos: Point{x, y}} }

// UpAt creates an Up event.
func UpAt(x, y float32) Event { return Event{Kind: Up, Pos: Point{x, y}} }

// CancelAt creates a Cancel event.
func CancelAt(x, y float32) Event { return Event{Kind: Cancel, Pos: Point{x, y}} }

// FlingOf creates a Fling event.
func FlingOf(down, up Point, vx, vy float32) Event {
	return Event{Kind: Fling, Pos: up, Down: down, Up: up, VX: vx, VY: vy}
}

// Listener receives gesture events on the UI thread.
type Listener func(Event)

// Source emits gesture events to a single listener.
// SetListener(nil) detaches the current listener.
type Source interface {
	SetListener(l Listener)
}
