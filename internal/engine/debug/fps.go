package debug

import "time"

// FPSCounter counts frames and reports the average rate once per interval.
type FPSCounter struct {
	interval time.Duration
	start    time.Time
	frames   int
}

// NewFPSCounter creates a counter reporting every interval.
func NewFPSCounter(interval time.Duration) *FPSCounter {
	if interval <= 0 {
		interval = time.Second
	}
	return &FPSCounter{interval: interval}
}

// Frame records one frame at now. When an interval has elapsed it returns
// the average frames per second over it and true.
func (c *FPSCounter) Frame(now time.Time) (float64, bool) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < c.interval {
		return 0, false
	}
	fps := float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return fps, true
}
