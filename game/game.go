// Package game is the raylib front end: it turns the mouse into pointer
// events for a session and draws the bubbles.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/inspector"
	"github.com/pthm-cable/bubbles/session"
	"github.com/pthm-cable/bubbles/telemetry"
)

// Options configures the interactive game.
type Options struct {
	OutputDir string
	Debug     bool // start with the debug overlay on
	Logger    *slog.Logger
}

// Game holds the interactive state around a session.
type Game struct {
	session *session.Session
	logger  *slog.Logger

	panel      tuningPanel
	debugPanel *inspector.Panel
	debugMode  bool
	showPanel  bool
	paused     bool

	screenWidth, screenHeight int
}

// NewGameWithOptions creates the game. The raylib window must already be open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s, err := session.New(cfg, session.Options{OutputDir: opts.OutputDir, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Game{
		session:      s,
		logger:       logger,
		panel:        newTuningPanel(cfg),
		debugPanel:   inspector.NewPanel("DEBUG [D to close]"),
		debugMode:    opts.Debug,
		screenWidth:  cfg.Screen.Width,
		screenHeight: cfg.Screen.Height,
	}, nil
}

// Update handles input and advances one frame.
func (g *Game) Update() {
	perf := g.session.Perf()
	perf.StartFrame()
	perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if g.paused {
		return
	}
	g.session.Step(rl.GetFrameTime())
}

// Tick returns the number of frames stepped.
func (g *Game) Tick() int64 {
	return g.session.Tick()
}

// Unload releases the session and flushes recording.
func (g *Game) Unload() {
	if err := g.session.Close(); err != nil {
		g.logger.Error("failed to close session", "error", err)
	}
}
