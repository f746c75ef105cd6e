// Spring preview tool - plots stick and fling curves for the current motion
// settings and lets you tune them with sliders.
//
// Usage: go run ./cmd/springpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/physics"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	plotWidth    = 600
	plotHeight   = 250
	panelX       = plotWidth + 40
	sliderWidth  = 220
	previewDT    = float32(1.0 / 60.0)
	previewSteps = 180 // 3s of frames
	travelPx     = 400
)

// Params are the values under the sliders.
type Params struct {
	Stiffness    float32 `yaml:"stiffness"`
	DampingRatio float32 `yaml:"damping_ratio"`
	Friction     float32 `yaml:"friction"`
	Release      float32 `yaml:"-"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	initial := Params{
		Stiffness:    float32(cfg.Spring.Stiffness),
		DampingRatio: float32(cfg.Spring.DampingRatio),
		Friction:     float32(cfg.Fling.Friction),
		Release:      1500,
	}
	params := initial

	rl.InitWindow(windowWidth, windowHeight, "Spring Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var stick, fling []float32
	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			stick, fling = traces(params, cfg.Derived.MinVisible32)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot("Stick to edge (0 -> 1)", stick, 0, 1, 10)
		drawPlot(fmt.Sprintf("Fling (%.0f px/s into %dpx)", params.Release, travelPx), fling, 0, travelPx, plotHeight+60)

		y := float32(10)
		rl.DrawText("Motion Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35
		needsRegen = slider(&y, "Stiffness", &params.Stiffness, 50, 3000, "%.0f") || needsRegen
		needsRegen = slider(&y, "Damping ratio", &params.DampingRatio, 0.05, 1.5, "%.2f") || needsRegen
		needsRegen = slider(&y, "Fling friction", &params.Friction, 0.1, 3, "%.2f") || needsRegen
		needsRegen = slider(&y, "Release velocity (px/s)", &params.Release, 100, 6000, "%.0f") || needsRegen

		y += 10
		rl.DrawText(fmt.Sprintf("Stick settles in %.2fs", float32(len(stick))*previewDT), panelX, int32(y), 16, rl.DarkGray)
		y += 20
		rl.DrawText(fmt.Sprintf("Fling rests in %.2fs at %.0fpx", float32(len(fling))*previewDT, last(fling)), panelX, int32(y), 16, rl.DarkGray)
		y += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 100, Height: 28}, "Reset") {
			params = initial
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: y, Width: 110, Height: 28}, "Copy YAML") {
			out, err := snippet(params)
			if err != nil {
				status = err.Error()
			} else {
				rl.SetClipboardText(out)
				status = "copied"
				fmt.Print(out)
			}
		}
		y += 40
		if status != "" {
			rl.DrawText(status, panelX, int32(y), 14, rl.Gray)
		}

		rl.EndDrawing()
	}
}

// traces simulates a unit stick and a fling with the given parameters.
func traces(p Params, minVisibleChange float32) (stick, fling []float32) {
	sp := physics.SpringParams{Stiffness: p.Stiffness, DampingRatio: p.DampingRatio}
	stick = physics.Trace(physics.NewSpring(0, 0, 1, sp, minVisibleChange/travelPx), previewDT, previewSteps)
	fling = physics.Trace(physics.NewFling(0, p.Release, 0, travelPx, p.Friction, minVisibleChange), previewDT, previewSteps)
	return stick, fling
}

// snippet renders the YAML for the spring and fling sections.
func snippet(p Params) (string, error) {
	doc := map[string]any{
		"spring": map[string]float32{"stiffness": p.Stiffness, "damping_ratio": p.DampingRatio},
		"fling":  map[string]float32{"friction": p.Friction},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal snippet: %w", err)
	}
	return string(out), nil
}

func slider(y *float32, label string, v *float32, lo, hi float32, format string) bool {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	nv := gui.SliderBar(rl.Rectangle{X: panelX, Y: *y, Width: sliderWidth, Height: 20}, "", "", *v, lo, hi)
	rl.DrawText(fmt.Sprintf(format, *v), panelX+sliderWidth+10, int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if nv == *v {
		return false
	}
	*v = nv
	return true
}

func drawPlot(title string, values []float32, lo, hi float32, top int32) {
	const left = int32(20)
	rl.DrawText(title, left, top, 16, rl.DarkGray)
	top += 24
	rl.DrawRectangleLines(left, top, plotWidth, plotHeight, rl.LightGray)

	toY := func(v float32) float32 {
		return float32(top+plotHeight) - (v-lo)/(hi-lo)*plotHeight
	}
	rl.DrawLine(left, int32(toY(hi)), left+plotWidth, int32(toY(hi)), rl.Red)

	step := float32(plotWidth) / previewSteps
	for i := 1; i < len(values); i++ {
		a := rl.Vector2{X: float32(left) + float32(i-1)*step, Y: toY(values[i-1])}
		b := rl.Vector2{X: float32(left) + float32(i)*step, Y: toY(values[i])}
		rl.DrawLineV(a, b, rl.DarkBlue)
	}
}

func last(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
