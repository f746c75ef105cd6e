// Package screen provides the bounds rectangle and display metrics used to
// place and scale bubble widgets.
package screen

import "math"

// Bounds is a rectangle in the widget's coordinate space.
type Bounds struct {
	Left, Top, Right, Bottom float32
}

// NewBounds creates bounds from an origin and a size.
func NewBounds(x, y, w, h float32) Bounds {
	return Bounds{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float32 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float32 { return b.Bottom - b.Top }

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float32 { return (b.Left + b.Right) / 2 }

// Valid reports whether Right >= Left and Bottom >= Top.
func (b Bounds) Valid() bool {
	return b.Right >= b.Left && b.Bottom >= b.Top
}

// Empty reports whether the bounds enclose no area.
// Inverted bounds are also empty.
func (b Bounds) Empty() bool {
	return !b.Valid() || b.Width() == 0 || b.Height() == 0
}

// Contains returns true if (x, y) lies inside the bounds (edges inclusive).
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Metrics describes the physical display.
// Density is the number of pixels per density-independent pixel (dp).
type Metrics struct {
	WidthPx, HeightPx int
	Density           float32
}

// NewMetrics creates display metrics. A non-positive density is treated as 1.
func NewMetrics(widthPx, heightPx int, density float32) Metrics {
	if density <= 0 {
		density = 1
	}
	return Metrics{WidthPx: widthPx, HeightPx: heightPx, Density: density}
}

// DpToPx converts density-independent pixels to whole pixels, rounding half up.
func (m Metrics) DpToPx(dp float64) int {
	return int(dp*float64(m.density()) + 0.5)
}

// PxToDp converts pixels to density-independent pixels.
func (m Metrics) PxToDp(px float32) float32 {
	return px / m.density()
}

// WidthDp returns the screen width in whole dp.
func (m Metrics) WidthDp() int {
	return int(m.PxToDp(float32(m.WidthPx)))
}

// HeightDp returns the screen height in whole dp.
func (m Metrics) HeightDp() int {
	return int(m.PxToDp(float32(m.HeightPx)))
}

// Bounds returns the full-screen bounds anchored at the origin.
func (m Metrics) Bounds() Bounds {
	return NewBounds(0, 0, float32(m.WidthPx), float32(m.HeightPx))
}

// MinFlingVelocity returns the minimum horizontal fling velocity in px/s.
// It scales with screen width so a flick feels the same on every resolution.
func (m Metrics) MinFlingVelocity(scale float64) float32 {
	return float32(m.DpToPx(float64(m.WidthDp()) * scale))
}

// Resize updates the pixel dimensions, keeping density.
func (m *Metrics) Resize(widthPx, heightPx int) {
	m.WidthPx = widthPx
	m.HeightPx = heightPx
}

func (m Metrics) density() float32 {
	if m.Density <= 0 {
		return 1
	}
	return m.Density
}

// Clamp restricts a value to [lo, hi]. When lo > hi, lo wins.
func Clamp(x, lo, hi float32) float32 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// Abs returns the absolute value of a float32.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Hypot returns sqrt(dx*dx + dy*dy).
func Hypot(dx, dy float32) float32 {
	return float32(math.Hypot(float64(dx), float64(dy)))
}
