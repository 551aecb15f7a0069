package profiler

// FrameClock turns a monotonic seconds counter into per-frame delta times.
type FrameClock struct {
	now     func() float64
	last    float64
	started bool
}

// NewFrameClock creates a FrameClock reading the given seconds counter, e.g. the window's Time.
//
// Parameters:
//   - now: returns seconds since an arbitrary fixed origin
//
// Returns:
//   - *FrameClock: the clock, started on its first Tick
func NewFrameClock(now func() float64) *FrameClock {
	return &FrameClock{now: now}
}

// Tick returns the seconds since the previous Tick. The first Tick returns 0,
// as does a Tick after the timer was reset backwards.
//
// Returns:
//   - float32: the frame delta in seconds
func (c *FrameClock) Tick() float32 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := float32(t - c.last)
	c.last = t
	return max(dt, 0)
}
