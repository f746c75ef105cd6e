package motion

import "math"

// Shape ramps up a fling's horizontal velocity so a slow flick near an edge
// still carries the bubble across, then applies the same proportional boost
// to the vertical velocity so the throw keeps its direction.
//
// releaseX is the pointer x at release, boundsWidth the width of the
// movement bounds and minFling the screen-scaled minimum fling velocity.
// The horizontal ramp target is minFling*(1-xNorm) when moving right and
// minFling*xNorm when moving left, with xNorm = releaseX/boundsWidth.
//
// A zero input vx has no defined boost; vy is then returned unchanged.
func Shape(releaseX, boundsWidth, minFling, vx, vy float32) (float32, float32) {
	var xNorm float32
	if boundsWidth != 0 {
		xNorm = releaseX / boundsWidth
	}

	var rampedX float32
	if vx > 0 {
		rampedX = max(vx, minFling*(1-xNorm))
	} else {
		rampedX = -max(-vx, minFling*xNorm)
	}

	ratio := float32(1)
	if vx != 0 && rampedX != 0 {
		ratio = rampedX / vx
	}
	rampedY := vy * ratio

	if !finite(rampedX) || !finite(rampedY) {
		return vx, vy
	}
	return rampedX, rampedY
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
