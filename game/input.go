package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.debugMode = !g.debugMode
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showPanel = !g.showPanel
	}

	g.handlePointer()
}

// handlePointer maps the left mouse button onto the session's pointer.
// The panel swallows clicks that land on it.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	s := g.session

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		if g.showPanel && g.panel.contains(mouse) {
			return
		}
		s.PointerDown(mouse.X, mouse.Y)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		s.PointerUp(mouse.X, mouse.Y)
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		s.PointerMove(mouse.X, mouse.Y)
	}

	// Escape or right button aborts a drag
	if s.Captured() && (rl.IsKeyPressed(rl.KeyEscape) || rl.IsMouseButtonPressed(rl.MouseButtonRight)) {
		s.PointerCancel()
	}
}

// handleResize checks for window resize and moves the bounds.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = w, h

	if err := g.session.Resize(w, h); err != nil {
		g.logger.Warn("ignoring resize", "width", w, "height", h, "error", err)
	}
}
