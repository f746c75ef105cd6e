package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/telemetry"
)

// Draw renders the frame and closes the perf sample opened by Update.
func (g *Game) Draw() {
	perf := g.session.Perf()
	perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 26, B: 32, A: 255})

	if g.debugMode {
		g.drawBoundsGuides()
	}
	g.drawBubbles()

	rl.DrawText(fmt.Sprintf("Tick: %d", g.session.Tick()), 10, 10, 20, rl.White)
	rl.DrawText("Drag or fling the bubble  [T] tune  [D] debug", 10, 35, 14, rl.Gray)
	if g.paused {
		rl.DrawText("PAUSED", 10, 55, 20, rl.Yellow)
	}

	if g.debugMode {
		g.drawDebugMenu()
	}
	if g.showPanel {
		g.drawPanel()
	}

	rl.EndDrawing()
	perf.EndFrame()
}

// drawBubbles renders followers first so the master is on top.
func (g *Game) drawBubbles() {
	var master struct {
		pos components.Position
		b   components.Bubble
		ok  bool
	}
	g.session.EachBubble(func(pos components.Position, _ components.Size, b components.Bubble) {
		if b.Master {
			master.pos, master.b, master.ok = pos, b, true
			return
		}
		drawBubble(pos, b, 140)
	})
	if master.ok {
		drawBubble(master.pos, master.b, 255)
		if g.session.Captured() {
			cx := int32(master.pos.X + master.b.Radius)
			cy := int32(master.pos.Y + master.b.Radius)
			rl.DrawCircleLines(cx, cy, master.b.Radius+3, rl.White)
		}
	}
}

func drawBubble(pos components.Position, b components.Bubble, alpha uint8) {
	col := rl.Color{R: b.Color.R, G: b.Color.G, B: b.Color.B, A: uint8(int(b.Color.A) * int(alpha) / 255)}
	c := rl.Vector2{X: pos.X + b.Radius, Y: pos.Y + b.Radius}
	rl.DrawCircleV(c, b.Radius, col)
}

// drawBoundsGuides marks the midpoint that decides which edge wins.
func (g *Game) drawBoundsGuides() {
	b := g.session.Bounds()
	mid := int32(b.CenterX())
	rl.DrawLine(mid, int32(b.Top), mid, int32(b.Bottom), rl.Color{R: 255, G: 255, B: 255, A: 40})
	rl.DrawRectangleLines(int32(b.Left), int32(b.Top), int32(b.Width()), int32(b.Height()), rl.Color{R: 255, G: 255, B: 255, A: 60})
}

// axisView is one axis of the master as shown in the debug panel.
type axisView struct {
	Pos      float32 `inspect:"label,fmt:%.1f"`
	Phase    axis.Phase
	Velocity float32 `inspect:"bar,max:8000"`
}

type frameView struct {
	Tick  int64
	Frame time.Duration
	FPS   float64 `inspect:"label,fmt:%.0f"`
}

// drawDebugMenu renders motion state and frame timing.
func (g *Game) drawDebugMenu() {
	pos, _ := g.session.Master()
	m := g.session.MasterMotion()
	stats := g.session.Perf().Stats()

	g.debugPanel.Reset()
	g.debugPanel.Add("x", axisView{Pos: pos.X, Phase: axis.Phase(m.XPhase), Velocity: m.VX})
	g.debugPanel.Add("y", axisView{Pos: pos.Y, Phase: axis.Phase(m.YPhase), Velocity: m.VY})
	g.debugPanel.Add("gesture", g.session.Controller().Gesture())
	g.debugPanel.Add("frame", frameView{Tick: g.session.Tick(), Frame: stats.AvgFrame, FPS: stats.FPS})
	g.debugPanel.Draw(int32(g.screenWidth))
}
