package motion

import "github.com/pthm-cable/bubbles/screen"

// Sample is a raw pointer coordinate.
type Sample struct {
	X, Y float32
}

// Correct forces the sign of (vx, vy) to agree with the displacement from
// down to up. Each axis is compared independently; ties count as
// right/down (positive).
//
// Gesture recognizers can report a velocity whose sign disagrees with where
// the finger actually went under noisy input.
func Correct(down, up Sample, vx, vy float32) (float32, float32) {
	x := screen.Abs(vx)
	if up.X < down.X {
		x = -x
	}
	y := screen.Abs(vy)
	if up.Y < down.Y {
		y = -y
	}
	return x, y
}
