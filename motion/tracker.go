package motion

// thresholdFraction is the share of the window that must be filled before
// the tracker trusts its own history.
const thresholdFraction = 0.25

// Tracker keeps the most recent pointer samples of a gesture and uses them
// to sign-correct fling velocities.
type Tracker struct {
	xs, ys    *Window[float32]
	threshold int
}

// NewTracker creates a tracker with the given per-axis capacity.
// Capacity < 1 falls back to DefaultCapacity.
func NewTracker(capacity int) *Tracker {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	threshold := int(thresholdFraction * float64(capacity))
	if threshold < 1 {
		threshold = 1
	}
	return &Tracker{
		xs:        NewWindow[float32](capacity),
		ys:        NewWindow[float32](capacity),
		threshold: threshold,
	}
}

// OnDown clears history at the start of a gesture.
func (t *Tracker) OnDown() {
	t.xs.Clear()
	t.ys.Clear()
}

// OnUp clears history at the end of a gesture.
func (t *Tracker) OnUp() {
	t.xs.Clear()
	t.ys.Clear()
}

// AddSample records a raw pointer position.
func (t *Tracker) AddSample(x, y float32) {
	t.xs.Push(x)
	t.ys.Push(y)
}

// Len returns the number of samples held.
func (t *Tracker) Len() int {
	return t.xs.Len()
}

// Threshold returns the minimum number of samples AdjustedVelocity needs.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// AdjustedVelocity sign-corrects (vx, vy) using the sample `threshold` steps
// back as the down reference and the newest sample as the up reference.
// The bool is false when there is not enough history; callers then fall back
// to Correct over the gesture's own down/up events.
func (t *Tracker) AdjustedVelocity(vx, vy float32) (float32, float32, bool) {
	n := t.xs.Len()
	if n < t.threshold {
		return 0, 0, false
	}
	downIdx := n - t.threshold
	down := Sample{X: t.xs.At(downIdx), Y: t.ys.At(downIdx)}
	up := Sample{X: t.xs.At(n - 1), Y: t.ys.At(n - 1)}

	x, y := Correct(down, up, vx, vy)
	return x, y, true
}
