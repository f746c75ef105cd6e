package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bubbles/config"
)

// csvFile appends gocsv records to one file, writing the header only once.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{name: name, f: f}, nil
}

func (c *csvFile) write(records any) error {
	var err error
	if !c.headerWritten {
		// First write includes headers
		err = gocsv.Marshal(records, c.f)
		c.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, c.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// Recorder writes motion, event, stats and perf CSV logs for a session.
// A nil *Recorder is valid and discards everything.
type Recorder struct {
	dir    string
	motion *csvFile
	events *csvFile
	stats  *csvFile
	perf   *csvFile
}

// NewRecorder creates the output directory and its CSV files.
// Returns nil if dir is empty (recording disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	r := &Recorder{dir: dir}
	for _, out := range []struct {
		name string
		dst  **csvFile
	}{
		{"motion.csv", &r.motion},
		{"events.csv", &r.events},
		{"stats.csv", &r.stats},
		{"perf.csv", &r.perf},
	} {
		f, err := createCSV(dir, out.name)
		if err != nil {
			r.Close()
			return nil, err
		}
		*out.dst = f
	}
	return r, nil
}

// WriteConfig saves the current configuration as YAML.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// WriteMotion appends a row to motion.csv.
func (r *Recorder) WriteMotion(m MotionRecord) error {
	if r == nil {
		return nil
	}
	return r.motion.write([]MotionRecord{m})
}

// WriteEvent appends a row to events.csv.
func (r *Recorder) WriteEvent(e EventRecord) error {
	if r == nil {
		return nil
	}
	return r.events.write([]EventRecord{e})
}

// WriteStats appends a window summary to stats.csv.
func (r *Recorder) WriteStats(s SessionStats) error {
	if r == nil {
		return nil
	}
	return r.stats.write([]SessionStats{s})
}

// WritePerf appends a frame-timing summary to perf.csv.
func (r *Recorder) WritePerf(s PerfStats, frame int64) error {
	if r == nil {
		return nil
	}
	return r.perf.write([]PerfStatsCSV{s.ToCSV(frame)})
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close closes all output files, returning the first error.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{r.motion, r.events, r.stats, r.perf} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
