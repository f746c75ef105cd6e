package telemetry

import (
	"log/slog"
	"time"
)

// SessionStats summarises the gestures and simulations seen in a window.
type SessionStats struct {
	WindowEndTick int64 `csv:"window_end"`

	Gestures int `csv:"gestures"` // Down events
	Drags    int `csv:"drags"`    // gestures that left the touch slop
	Flings   int `csv:"flings"`

	FlingsSettled   int `csv:"flings_settled"`
	FlingsCancelled int `csv:"flings_cancelled"`
	SpringsSettled  int `csv:"springs_settled"`
	SpringsCancel   int `csv:"springs_cancelled"`

	// Mean time from spring start to rest, per settled spring.
	MeanSettle   time.Duration `csv:"-"`
	MeanSettleMs float64       `csv:"mean_settle_ms"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("gestures", s.Gestures),
		slog.Int("drags", s.Drags),
		slog.Int("flings", s.Flings),
		slog.Int("flings_settled", s.FlingsSettled),
		slog.Int("flings_cancelled", s.FlingsCancelled),
		slog.Int("springs_settled", s.SpringsSettled),
		slog.Int("springs_cancelled", s.SpringsCancel),
		slog.Float64("mean_settle_ms", s.MeanSettleMs),
	)
}
