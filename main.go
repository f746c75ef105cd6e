package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/game"
	"github.com/pthm-cable/bubbles/session"
	"github.com/pthm-cable/bubbles/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Replay a gesture script without graphics")
	scriptPath := flag.String("script", "", "Gesture script CSV (t_ms,action,x,y) for headless runs")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Debug logging and overlay")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *headless {
		if err := runHeadless(cfg, *scriptPath, *outputDir, *maxTicks, logger); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bubbles")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape cancels a drag instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	g, err := game.NewGameWithOptions(cfg, game.Options{OutputDir: *outputDir, Debug: *debug, Logger: logger})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless replays a gesture script at the configured frame rate.
func runHeadless(cfg *config.Config, scriptPath, outputDir string, maxTicks int, logger *slog.Logger) error {
	if scriptPath == "" {
		return errors.New("-headless requires -script")
	}
	steps, err := telemetry.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	s, err := session.New(cfg, session.Options{OutputDir: outputDir, Logger: logger})
	if err != nil {
		return err
	}
	defer s.Close()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	logger.Info("starting headless replay", "script", scriptPath, "steps", len(steps), "fps", fps, "max_ticks", maxTicks)

	ticks, err := s.RunScript(steps, 1/float32(fps), maxTicks)
	if errors.Is(err, session.ErrTickBudget) && maxTicks > 0 {
		logger.Info("max ticks reached", "tick", ticks)
		err = nil
	}
	if err != nil {
		return err
	}

	pos, _ := s.Master()
	logger.Info("bubble at rest", "x", pos.X, "y", pos.Y, "ticks", ticks, "clock", s.Clock())
	return nil
}
