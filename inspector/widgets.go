package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarNeg  = rl.Color{R: 180, G: 110, B: 80, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders "name: value" and returns the height used.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, FormatValue(value, options["fmt"])), x, y, 12, ColorText)
	return 16
}

// DrawBar renders a magnitude bar; negative values use a warmer fill.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	const barWidth, barHeight = int32(100), int32(12)

	rl.DrawText(name, x, y, 12, ColorTextDim)
	barX := x + 50
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fill := ColorBarFill
	if value < 0 {
		fill = ColorBarNeg
	}
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*BarRatio(value, options)), barHeight, fill)
	rl.DrawText(fmt.Sprintf("%.0f", value), barX+barWidth+5, y, 12, ColorTextDim)
	return 16
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 12, ColorTextDim)

	color, text := ColorBoolOff, "off"
	if value {
		color, text = ColorBoolOn, "on"
	}
	ix := x + 80
	rl.DrawRectangle(ix, y, 12, 12, color)
	rl.DrawText(text, ix+17, y, 12, color)
	return 16
}

// DrawField renders a field using its widget, falling back to a label.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
