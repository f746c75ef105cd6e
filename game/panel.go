package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/physics"
)

const (
	panelX      = 10
	panelY      = 90
	panelWidth  = 260
	panelHeight = 250
)

// tuningPanel edits the spring and friction of the running session.
type tuningPanel struct {
	stiffness float32
	damping   float32
	friction  float32
	dirty     bool
	lastErr   error
}

func newTuningPanel(cfg *config.Config) tuningPanel {
	return tuningPanel{
		stiffness: float32(cfg.Spring.Stiffness),
		damping:   float32(cfg.Spring.DampingRatio),
		friction:  float32(cfg.Fling.Friction),
	}
}

func (p *tuningPanel) contains(v rl.Vector2) bool {
	return rl.CheckCollisionPointRec(v, rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight})
}

func (p *tuningPanel) yaml() string {
	return fmt.Sprintf("spring:\n  stiffness: %.0f\n  damping_ratio: %.2f\nfling:\n  friction: %.2f", p.stiffness, p.damping, p.friction)
}

// drawPanel renders the sliders and applies changes on request.
func (g *Game) drawPanel() {
	p := &g.panel
	x := float32(panelX + 10)
	y := float32(panelY + 8)

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.Color{R: 0, G: 0, B: 0, A: 190})
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.SkyBlue)
	rl.DrawText("TUNING [T to close]", int32(x), int32(y), 14, rl.SkyBlue)
	y += 26

	slider := func(label string, value, lo, hi float32, format string) float32 {
		rl.DrawText(fmt.Sprintf("%s: "+format, label, value), int32(x), int32(y), 12, rl.LightGray)
		y += 16
		v := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: panelWidth - 20, Height: 16}, "", "", value, lo, hi)
		y += 26
		if v != value {
			p.dirty = true
		}
		return v
	}

	p.stiffness = slider("Stiffness", p.stiffness, 50, 3000, "%.0f")
	p.damping = slider("Damping ratio", p.damping, 0.05, 1.5, "%.2f")
	p.friction = slider("Friction", p.friction, 0.1, 3, "%.2f")

	label := "Apply"
	if p.dirty {
		label = "Apply *"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 26}, label) {
		p.lastErr = g.session.Retune(physics.SpringParams{Stiffness: p.stiffness, DampingRatio: p.damping}, p.friction)
		if p.lastErr != nil {
			g.logger.Warn("retune rejected", "error", p.lastErr)
		} else {
			p.dirty = false
			g.logger.Info("retuned", "stiffness", p.stiffness, "damping_ratio", p.damping, "friction", p.friction)
		}
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 26}, "Copy YAML") {
		rl.SetClipboardText(p.yaml())
	}
	y += 36

	if p.lastErr != nil {
		rl.DrawText(p.lastErr.Error(), int32(x), int32(y), 10, rl.Red)
	}
}
