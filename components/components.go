// Package components defines ECS components for bubble widgets.
package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is the top-left corner of a widget in screen pixels.
type Position struct {
	X, Y float32
}

// Size is a widget's extent in screen pixels.
type Size struct {
	W, H float32
}

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to 255.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parsing color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Bubble marks a widget entity.
type Bubble struct {
	Index  int  // spawn order
	Master bool // the one widget the controller drives
	Radius float32
	Color  Color
}

// Motion mirrors the per-axis controller state for rendering and telemetry.
// Phases use axis.Phase values.
type Motion struct {
	XPhase, YPhase uint8
	VX, VY         float32
}
