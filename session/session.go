// Package session wires bubble widgets, gesture detection, animation and
// telemetry into a host-independent run. The raylib front end and the
// headless runner both drive a Session.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/bubble"
	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/motion"
	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
	"github.com/pthm-cable/bubbles/telemetry"
)

// Options configures a Session.
type Options struct {
	OutputDir string // empty disables CSV recording
	Logger    *slog.Logger
}

// Session owns the ECS world of bubbles and everything that moves them.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	world     *ecs.World
	bubbleMap *ecs.Map3[components.Position, components.Size, components.Bubble]
	posMap    *ecs.Map[components.Position]
	sizeMap   *ecs.Map[components.Size]
	motionMap *ecs.Map[components.Motion]
	filter    *ecs.Filter3[components.Position, components.Size, components.Bubble]

	master  ecs.Entity
	widgets []axis.Widget
	bounds  screen.Bounds

	scheduler  *anim.FrameScheduler
	detector   *gesture.Detector
	tap        *tap
	controller *bubble.Controller
	captured   bool // pointer went down on the master

	recorder  *telemetry.Recorder
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	tick  int64
	clock time.Duration
}

// New creates a session from cfg, spawning cfg.Bubbles.Count widgets.
func New(cfg *config.Config, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	s := &Session{
		cfg:       cfg,
		logger:    logger,
		world:     world,
		bubbleMap: ecs.NewMap3[components.Position, components.Size, components.Bubble](world),
		posMap:    ecs.NewMap[components.Position](world),
		sizeMap:   ecs.NewMap[components.Size](world),
		motionMap: ecs.NewMap[components.Motion](world),
		filter:    ecs.NewFilter3[components.Position, components.Size, components.Bubble](world),
		bounds:    cfg.Derived.Metrics.Bounds(),
		scheduler: anim.NewFrameScheduler(cfg.Derived.MaxDT32),
		collector: telemetry.NewCollector(int64(cfg.Telemetry.PerfWindow)),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	if err := s.spawnBubbles(); err != nil {
		return nil, err
	}

	s.detector = gesture.NewDetector(detectorConfig(cfg), logger)
	s.tap = &tap{s: s}
	s.detector.SetListener(s.tap.deliver)

	if err := s.startController(); err != nil {
		return nil, err
	}

	rec, err := telemetry.NewRecorder(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	s.recorder = rec
	if err := s.recorder.WriteConfig(cfg); err != nil {
		s.recorder.Close()
		return nil, err
	}

	logger.Info("session started",
		"bubbles", len(s.widgets),
		"bounds", s.bounds,
		"min_fling_px_s", cfg.Derived.MinFlingVelocity,
		"output_dir", s.recorder.Dir(),
	)
	return s, nil
}

func detectorConfig(cfg *config.Config) gesture.DetectorConfig {
	m := cfg.Derived.Metrics
	return gesture.DetectorConfig{
		TouchSlop:        cfg.Derived.TouchSlopPx,
		MinFlingVelocity: float32(m.DpToPx(cfg.Touch.MinFlingDp)),
		MaxFlingVelocity: float32(m.DpToPx(cfg.Touch.MaxFlingDp)),
		VelocityHorizon:  time.Duration(cfg.Touch.VelocityHorizonMs) * time.Millisecond,
	}
}

// spawnBubbles creates the widget entities stacked against the right edge.
// The first one is the master.
func (s *Session) spawnBubbles() error {
	cfg := s.cfg
	r := cfg.Derived.RadiusPx
	d := 2 * r

	colors := make([]components.Color, 0, len(cfg.Bubbles.Colors))
	for _, hex := range cfg.Bubbles.Colors {
		c, err := components.ParseColor(hex)
		if err != nil {
			return fmt.Errorf("bubbles.colors: %w", err)
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		colors = append(colors, components.Color{R: 66, G: 133, B: 244, A: 255})
	}

	x := s.bounds.Right - d
	y := s.bounds.Top + s.bounds.Height()/4
	for i := 0; i < cfg.Bubbles.Count; i++ {
		pos := components.Position{X: x, Y: y + float32(i)*(d+r/2)}
		size := components.Size{W: d, H: d}
		b := components.Bubble{Index: i, Master: i == 0, Radius: r, Color: colors[i%len(colors)]}

		e := s.bubbleMap.NewEntity(&pos, &size, &b)
		if i == 0 {
			s.master = e
			s.motionMap.Add(e, &components.Motion{})
		}
		s.widgets = append(s.widgets, &widget{entity: e, pos: s.posMap, size: s.sizeMap})
	}
	return nil
}

// startController builds a bubble controller from the current config and
// attaches it to the gesture tap.
func (s *Session) startController() error {
	cfg := s.cfg
	c, err := bubble.New(s.widgets, s.bounds, bubble.Options{
		Scheduler:        s.scheduler,
		Tracker:          motion.NewTracker(cfg.Tracker.Capacity),
		Spring:           cfg.Derived.Spring,
		Friction:         cfg.Derived.Friction32,
		TouchSlop:        cfg.Derived.TouchSlopPx,
		MinFlingVelocity: cfg.Derived.MinFlingVelocity,
		MinVisibleChange: cfg.Derived.MinVisible32,
		Logger:           s.logger,
	})
	if err != nil {
		return fmt.Errorf("creating bubble controller: %w", err)
	}
	c.Observe(s.recordTransition)
	if err := c.Start(s.tap); err != nil {
		return fmt.Errorf("starting bubble controller: %w", err)
	}
	s.controller = c
	return nil
}

// Retune replaces the spring and fling friction. Motion in flight is
// cancelled and the bubble settles again with the new parameters.
func (s *Session) Retune(spring physics.SpringParams, friction float32) error {
	next := *s.cfg
	next.Spring.Stiffness = float64(spring.Stiffness)
	next.Spring.DampingRatio = float64(spring.DampingRatio)
	next.Fling.Friction = float64(friction)
	if err := next.Validate(); err != nil {
		return err
	}
	next.Recompute()
	*s.cfg = next
	return s.restart()
}

// Resize moves the bounds to a new screen size and re-settles the bubble.
func (s *Session) Resize(width, height int) error {
	s.cfg.Resize(width, height)
	s.bounds = s.cfg.Derived.Metrics.Bounds()
	if s.bounds.Empty() {
		return bubble.ErrEmptyBounds
	}
	return s.restart()
}

func (s *Session) restart() error {
	if s.captured {
		s.PointerCancel()
	}
	s.controller.Stop()
	if err := s.startController(); err != nil {
		return err
	}
	s.Settle()
	return nil
}

// Settle springs the master to its resting edge.
func (s *Session) Settle() {
	s.controller.Axis(axis.X).StickToEdge(0)
	s.controller.Axis(axis.Y).StickToEdge(0)
}

// Close releases the controller and flushes recording.
func (s *Session) Close() error {
	s.controller.Stop()
	return s.recorder.Close()
}

// Controller returns the active bubble controller.
func (s *Session) Controller() *bubble.Controller { return s.controller }

// Perf returns the frame timing collector.
func (s *Session) Perf() *telemetry.PerfCollector { return s.perf }

// Bounds returns the movement bounds.
func (s *Session) Bounds() screen.Bounds { return s.bounds }

// Config returns the live configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Tick returns the number of frames stepped.
func (s *Session) Tick() int64 { return s.tick }

// Clock returns the simulated time.
func (s *Session) Clock() time.Duration { return s.clock }

// Master returns the master widget's position and size.
func (s *Session) Master() (components.Position, components.Size) {
	return *s.posMap.Get(s.master), *s.sizeMap.Get(s.master)
}

// MasterMotion returns the master's last synced motion state.
func (s *Session) MasterMotion() components.Motion {
	return *s.motionMap.Get(s.master)
}

// EachBubble calls fn for every widget entity.
func (s *Session) EachBubble(fn func(pos components.Position, size components.Size, b components.Bubble)) {
	query := s.filter.Query()
	for query.Next() {
		pos, size, b := query.Get()
		fn(*pos, *size, *b)
	}
}
