package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// ErrBadScript is wrapped by every script validation failure.
var ErrBadScript = errors.New("telemetry: bad gesture script")

// Script actions.
const (
	ActionDown   = "down"
	ActionMove   = "move"
	ActionUp     = "up"
	ActionCancel = "cancel"
)

// ScriptStep is one raw pointer event of a recorded or hand-written gesture.
type ScriptStep struct {
	TimeMs int64   `csv:"t_ms"`
	Action string  `csv:"action"`
	X      float32 `csv:"x"`
	Y      float32 `csv:"y"`
}

// At returns the step time as a duration.
func (s ScriptStep) At() time.Duration {
	return time.Duration(s.TimeMs) * time.Millisecond
}

// LoadScript reads a gesture script CSV file.
func LoadScript(path string) ([]ScriptStep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// ParseScript reads gesture script rows with a t_ms,action,x,y header.
// Times must not decrease and actions must be down, move, up or cancel.
func ParseScript(r io.Reader) ([]ScriptStep, error) {
	var steps []ScriptStep
	if err := gocsv.Unmarshal(r, &steps); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	var last int64
	for i, s := range steps {
		switch s.Action {
		case ActionDown, ActionMove, ActionUp, ActionCancel:
		default:
			return nil, fmt.Errorf("%w: row %d: unknown action %q", ErrBadScript, i+1, s.Action)
		}
		if s.TimeMs < last {
			return nil, fmt.Errorf("%w: row %d: time %dms goes backwards", ErrBadScript, i+1, s.TimeMs)
		}
		last = s.TimeMs
	}
	return steps, nil
}
