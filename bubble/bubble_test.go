package bubble

import (
	"errors"
	"testing"

	"github.com/pthm-cable/bubbles/anim"
	"github.com/pthm-cable/bubbles/axis"
	"github.com/pthm-cable/bubbles/gesture"
	"github.com/pthm-cable/bubbles/screen"
)

const frame = float32(1.0 / 60.0)

type fakeWidget struct {
	pos  [2]float32
	w, h float32
}

func (f *fakeWidget) Position(a axis.Axis) float32       { return f.pos[a] }
func (f *fakeWidget) SetPosition(a axis.Axis, v float32) { f.pos[a] = v }
func (f *fakeWidget) Size() (float32, float32)           { return f.w, f.h }

type fakeSource struct {
	listener gesture.Listener
}

func (s *fakeSource) SetListener(l gesture.Listener) { s.listener = l }

func newTestBubble(t *testing.T, x, y float32, bounds screen.Bounds) (*Controller, *fakeWidget, *anim.FrameScheduler) {
	t.Helper()
	w := &fakeWidget{w: 20, h: 20}
	w.pos = [2]float32{x, y}
	sched := anim.NewFrameScheduler(0)
	c, err := New([]Widget{w}, bounds, Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, w, sched
}

func settle(sched *anim.FrameScheduler) {
	for i := 0; i < 2000 && sched.Active() > 0; i++ {
		sched.Tick(frame)
	}
}

func send(t *testing.T, c *Controller, events ...gesture.Event) {
	t.Helper()
	for _, ev := range events {
		if err := c.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%v): %v", ev.Kind, err)
		}
	}
}

func TestTapSnapsToNearestSide(t *testing.T) {
	bounds := screen.Bounds{Right: 100, Bottom: 200}

	tests := []struct {
		name  string
		x, y  float32
		wantX float32
		wantY float32
	}{
		{"left half", 5, 50, 0, 50},
		{"right edge", 80, 50, 80, 50},
		{"above top", 30, -15, 0, 0},
		{"below bottom", 70, 210, 80, 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w, sched := newTestBubble(t, tc.x, tc.y, bounds)

			send(t, c, gesture.DownAt(tc.x+5, tc.y+5), gesture.UpAt(tc.x+5, tc.y+5))
			settle(sched)

			if w.pos[axis.X] != tc.wantX || w.pos[axis.Y] != tc.wantY {
				t.Errorf("expected rest at (%f, %f), got (%f, %f)",
					tc.wantX, tc.wantY, w.pos[axis.X], w.pos[axis.Y])
			}
		})
	}
}

func TestDragFollowsPointerPastSlop(t *testing.T) {
	c, w, _ := newTestBubble(t, 10, 10, screen.Bounds{Right: 1000, Bottom: 1000})

	send(t, c, gesture.DownAt(15, 15), gesture.MoveTo(18, 19))
	if c.Gesture().Dragging {
		t.Fatal("expected a 5px move to stay within touch slop")
	}
	if w.pos != [2]float32{10, 10} {
		t.Errorf("expected widget untouched inside slop, got %v", w.pos)
	}

	send(t, c, gesture.MoveTo(115, 215))
	if !c.Gesture().Dragging {
		t.Fatal("expected drag after leaving slop")
	}
	if w.pos != [2]float32{110, 210} {
		t.Errorf("expected widget at (110, 210), got %v", w.pos)
	}
	if c.Axis(axis.X).State().Phase != axis.Dragging {
		t.Errorf("expected x dragging, got %v", c.Axis(axis.X).State().Phase)
	}
}

func TestDragReleaseSettles(t *testing.T) {
	c, w, sched := newTestBubble(t, 100, 500, screen.Bounds{Right: 1000, Bottom: 2000})

	send(t, c,
		gesture.DownAt(110, 510),
		gesture.MoveTo(400, 1000),
		gesture.MoveTo(710, 2100),
		gesture.UpAt(710, 2100),
	)
	if c.Gesture().Dragging || c.Gesture().Active {
		t.Error("expected gesture to end on up")
	}
	settle(sched)

	if w.pos[axis.X] != 980 || w.pos[axis.Y] != 1980 {
		t.Errorf("expected rest at (980, 1980), got %v", w.pos)
	}
}

func TestFlingUsesTrackedDirection(t *testing.T) {
	c, w, sched := newTestBubble(t, 100, 500, screen.Bounds{Right: 1000, Bottom: 2000})

	var springs int
	c.Observe(func(tr axis.Transition) {
		if tr.Axis == axis.X && tr.Sim == axis.SimSpring && tr.Event == axis.Started {
			springs++
		}
	})

	send(t, c,
		gesture.DownAt(110, 510),
		gesture.MoveTo(130, 510),
		gesture.MoveTo(150, 510),
		gesture.MoveTo(170, 510),
		gesture.MoveTo(190, 510),
		// Reported velocity points the wrong way; history says right.
		gesture.FlingOf(gesture.Point{X: 110, Y: 510}, gesture.Point{X: 190, Y: 510}, -3000, 0),
		gesture.UpAt(190, 510),
	)
	if !c.Gesture().WasFlung {
		t.Fatal("expected gesture to be marked flung")
	}
	if springs != 0 {
		t.Errorf("expected release after fling not to start a settle, got %d", springs)
	}
	if c.Axis(axis.X).State().Phase != axis.Flinging {
		t.Fatalf("expected x flinging, got %v", c.Axis(axis.X).State().Phase)
	}

	settle(sched)

	if w.pos[axis.X] != 980 {
		t.Errorf("expected fling to end on right edge 980, got %f", w.pos[axis.X])
	}
	if w.pos[axis.Y] != 500 {
		t.Errorf("expected y to stay at 500, got %f", w.pos[axis.Y])
	}
	if c.Busy() {
		t.Error("expected both axes idle")
	}
}

func TestFlingFallsBackToEventEndpoints(t *testing.T) {
	c, w, sched := newTestBubble(t, 500, 500, screen.Bounds{Right: 1000, Bottom: 2000})

	// No moves: the tracker has no history.
	send(t, c,
		gesture.DownAt(510, 510),
		gesture.FlingOf(gesture.Point{X: 510, Y: 510}, gesture.Point{X: 300, Y: 510}, 4000, 0),
		gesture.UpAt(300, 510),
	)
	settle(sched)

	if w.pos[axis.X] != 0 {
		t.Errorf("expected corrected fling to reach the left edge, got %f", w.pos[axis.X])
	}
}

func TestFlingEndOnXStopsY(t *testing.T) {
	c, w, sched := newTestBubble(t, 100, 500, screen.Bounds{Right: 1000, Bottom: 100000})

	var yCancelled int
	c.Observe(func(tr axis.Transition) {
		if tr.Axis == axis.Y && tr.Sim == axis.SimFling && tr.Event == axis.Cancelled {
			yCancelled++
		}
	})

	send(t, c,
		gesture.DownAt(110, 510),
		gesture.MoveTo(130, 530),
		gesture.MoveTo(150, 550),
		gesture.FlingOf(gesture.Point{X: 110, Y: 510}, gesture.Point{X: 150, Y: 550}, 3000, 20000),
		gesture.UpAt(150, 550),
	)

	for i := 0; i < 2000 && c.Axis(axis.X).State().Phase == axis.Flinging; i++ {
		sched.Tick(frame)
	}
	if yCancelled != 1 {
		t.Fatalf("expected y fling to be cut short once, got %d", yCancelled)
	}
	if c.Axis(axis.Y).State().Phase == axis.Flinging {
		t.Error("expected y to stop flinging when x came to rest")
	}

	y := w.pos[axis.Y]
	settle(sched)
	if w.pos[axis.Y] != y {
		t.Errorf("expected y to stay inside bounds at %f, got %f", y, w.pos[axis.Y])
	}
	if w.pos[axis.X] != 980 {
		t.Errorf("expected x on right edge, got %f", w.pos[axis.X])
	}
}

func TestDownInterruptsMotion(t *testing.T) {
	c, w, sched := newTestBubble(t, 40, 50, screen.Bounds{Right: 100, Bottom: 200})

	send(t, c, gesture.DownAt(45, 55), gesture.UpAt(45, 55))
	sched.Tick(frame)
	sched.Tick(frame)
	if !c.Busy() {
		t.Fatal("expected settle in flight")
	}

	send(t, c, gesture.DownAt(w.pos[axis.X], 55))
	if c.Busy() {
		t.Error("expected down to cancel the settle")
	}
	frozen := w.pos
	sched.Tick(frame)
	if w.pos != frozen {
		t.Errorf("expected widget to stay put under the finger, got %v want %v", w.pos, frozen)
	}
	if c.Gesture().WasFlung || c.Gesture().Dragging {
		t.Error("expected gesture flags reset on down")
	}
}

func TestEventsOutsideGestureIgnored(t *testing.T) {
	c, w, sched := newTestBubble(t, 40, 50, screen.Bounds{Right: 100, Bottom: 200})

	send(t, c, gesture.MoveTo(90, 90), gesture.UpAt(90, 90))
	if c.Busy() || sched.Active() != 0 {
		t.Error("expected no motion without a down")
	}
	if w.pos != [2]float32{40, 50} {
		t.Errorf("expected widget untouched, got %v", w.pos)
	}
}

func TestLifecycle(t *testing.T) {
	w := &fakeWidget{w: 20, h: 20}
	sched := anim.NewFrameScheduler(0)
	bounds := screen.Bounds{Right: 100, Bottom: 200}

	c, err := New([]Widget{w}, bounds, Options{Scheduler: sched})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.HandleEvent(gesture.DownAt(1, 1)); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}

	src := &fakeSource{}
	if err := c.Start(src); err != nil {
		t.Fatal(err)
	}
	if src.listener == nil {
		t.Fatal("expected listener installed")
	}
	if err := c.Start(src); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	src.listener(gesture.DownAt(5, 5))
	src.listener(gesture.UpAt(5, 5))
	if !c.Busy() {
		t.Error("expected events from the source to drive the bubble")
	}

	c.Stop()
	c.Stop()
	if !c.Stopped() || c.Busy() {
		t.Error("expected stopped and idle")
	}
	if src.listener != nil {
		t.Error("expected listener removed on stop")
	}
	if c.Master() != nil || c.Widgets() != nil {
		t.Error("expected widget references released")
	}
	if err := c.HandleEvent(gesture.DownAt(1, 1)); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
	if err := c.Start(src); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped on restart, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	sched := anim.NewFrameScheduler(0)
	w := &fakeWidget{w: 10, h: 10}

	if _, err := New(nil, screen.Bounds{Right: 10, Bottom: 10}, Options{Scheduler: sched}); !errors.Is(err, ErrNoWidgets) {
		t.Errorf("expected ErrNoWidgets, got %v", err)
	}
	if _, err := New([]Widget{w}, screen.Bounds{Right: 10}, Options{Scheduler: sched}); !errors.Is(err, ErrEmptyBounds) {
		t.Errorf("expected ErrEmptyBounds, got %v", err)
	}
	if _, err := New([]Widget{w}, screen.Bounds{Right: 10, Bottom: 10}, Options{}); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("expected ErrNoScheduler, got %v", err)
	}

	other := &fakeWidget{w: 10, h: 10}
	c, err := New([]Widget{w, other}, screen.Bounds{Right: 10, Bottom: 10}, Options{Scheduler: sched})
	if err != nil {
		t.Fatal(err)
	}
	if c.Master() != Widget(w) || len(c.Widgets()) != 2 {
		t.Error("expected first widget to be master")
	}
}
