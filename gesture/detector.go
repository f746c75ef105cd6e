package gesture

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bubbles/screen"
)

// Defaults in dp, matching common touch toolkits.
const (
	DefaultTouchSlopDp      = 8
	DefaultMinFlingDp       = 50
	DefaultMaxFlingDp       = 8000
	DefaultVelocityHorizon  = 100 * time.Millisecond
	minSamplesForRegression = 2
)

// DetectorConfig holds the detector thresholds in pixels.
type DetectorConfig struct {
	TouchSlop        float32       // px a pointer must travel before it is a scroll
	MinFlingVelocity float32       // px/s on either axis to count as a fling
	MaxFlingVelocity float32       // px/s clamp for reported velocity
	VelocityHorizon  time.Duration // samples older than this are ignored
}

// DefaultDetectorConfig scales the dp defaults by the display density.
func DefaultDetectorConfig(m screen.Metrics) DetectorConfig {
	return DetectorConfig{
		TouchSlop:        float32(m.DpToPx(DefaultTouchSlopDp)),
		MinFlingVelocity: float32(m.DpToPx(DefaultMinFlingDp)),
		MaxFlingVelocity: float32(m.DpToPx(DefaultMaxFlingDp)),
		VelocityHorizon:  DefaultVelocityHorizon,
	}
}

type sample struct {
	t    time.Duration
	x, y float32
}

// Detector is a Source fed with raw pointer input. It forwards Down, Move,
// Up and Cancel and emits a Fling, before the Up, when a gesture is released
// fast enough after leaving the touch slop.
type Detector struct {
	cfg      DetectorConfig
	listener Listener
	logger   *slog.Logger

	tracking    bool
	down        sample
	inTapRegion bool
	samples     []sample
	ts, xs, ys  []float64 // regression scratch
}

// NewDetector creates a detector. Zero config fields fall back to the
// density-independent defaults at density 1.
func NewDetector(cfg DetectorConfig, logger *slog.Logger) *Detector {
	def := DefaultDetectorConfig(screen.NewMetrics(0, 0, 1))
	if cfg.TouchSlop <= 0 {
		cfg.TouchSlop = def.TouchSlop
	}
	if cfg.MinFlingVelocity <= 0 {
		cfg.MinFlingVelocity = def.MinFlingVelocity
	}
	if cfg.MaxFlingVelocity <= 0 {
		cfg.MaxFlingVelocity = def.MaxFlingVelocity
	}
	if cfg.VelocityHorizon <= 0 {
		cfg.VelocityHorizon = def.VelocityHorizon
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{cfg: cfg, logger: logger}
}

// SetListener implements Source.
func (d *Detector) SetListener(l Listener) {
	d.listener = l
}

// Config returns the active thresholds.
func (d *Detector) Config() DetectorConfig {
	return d.cfg
}

// Tracking reports whether a pointer is currently down.
func (d *Detector) Tracking() bool {
	return d.tracking
}

// PointerDown starts a gesture at (x, y) at time t.
func (d *Detector) PointerDown(x, y float32, t time.Duration) {
	d.tracking = true
	d.inTapRegion = true
	d.down = sample{t: t, x: x, y: y}
	d.samples = d.samples[:0]
	d.addSample(d.down)
	d.emit(DownAt(x, y))
}

// PointerMove moves the pointer. Ignored when no gesture is active.
func (d *Detector) PointerMove(x, y float32, t time.Duration) {
	if !d.tracking {
		return
	}
	d.addSample(sample{t: t, x: x, y: y})
	if d.inTapRegion && screen.Hypot(x-d.down.x, y-d.down.y) > d.cfg.TouchSlop {
		d.inTapRegion = false
	}
	d.emit(MoveTo(x, y))
}

// PointerUp ends the gesture, emitting Fling first if the release was fast.
func (d *Detector) PointerUp(x, y float32, t time.Duration) {
	if !d.tracking {
		return
	}
	d.addSample(sample{t: t, x: x, y: y})
	d.tracking = false

	if !d.inTapRegion {
		vx, vy := d.Velocity()
		if screen.Abs(vx) > d.cfg.MinFlingVelocity || screen.Abs(vy) > d.cfg.MinFlingVelocity {
			d.logger.Debug("fling detected", "vx", vx, "vy", vy)
			d.emit(FlingOf(Point{d.down.x, d.down.y}, Point{x, y}, vx, vy))
		}
	}
	d.emit(UpAt(x, y))
}

// PointerCancel aborts the gesture without a fling.
func (d *Detector) PointerCancel(x, y float32) {
	if !d.tracking {
		return
	}
	d.tracking = false
	d.samples = d.samples[:0]
	d.emit(CancelAt(x, y))
}

// Velocity estimates the pointer velocity in px/s as the least-squares slope
// of position over time across the samples within the velocity horizon.
// Returns zero when there are too few samples or no elapsed time.
func (d *Detector) Velocity() (float32, float32) {
	if len(d.samples) < minSamplesForRegression {
		return 0, 0
	}
	newest := d.samples[len(d.samples)-1].t

	d.ts, d.xs, d.ys = d.ts[:0], d.xs[:0], d.ys[:0]
	for _, s := range d.samples {
		if newest-s.t > d.cfg.VelocityHorizon {
			continue
		}
		d.ts = append(d.ts, (s.t - newest).Seconds())
		d.xs = append(d.xs, float64(s.x))
		d.ys = append(d.ys, float64(s.y))
	}
	if len(d.ts) < minSamplesForRegression || d.ts[0] == 0 {
		return 0, 0
	}

	_, vx := stat.LinearRegression(d.ts, d.xs, nil, false)
	_, vy := stat.LinearRegression(d.ts, d.ys, nil, false)
	limit := d.cfg.MaxFlingVelocity
	return screen.Clamp(float32(vx), -limit, limit), screen.Clamp(float32(vy), -limit, limit)
}

func (d *Detector) addSample(s sample) {
	// Drop samples that fell out of the horizon; keep at least the newest.
	cut := 0
	for cut < len(d.samples) && s.t-d.samples[cut].t > d.cfg.VelocityHorizon {
		cut++
	}
	if cut > 0 {
		d.samples = append(d.samples[:0], d.samples[cut:]...)
	}
	d.samples = append(d.samples, s)
}

func (d *Detector) emit(ev Event) {
	if d.listener != nil {
		d.listener(ev)
	}
}
