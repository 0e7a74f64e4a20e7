package scene

import "time"

// Clock turns wall-clock frame timestamps into simulation steps, clamped to
// Max so a stall does not produce one large jump.
type Clock struct {
	Max  time.Duration
	last time.Time
}

// Tick returns the seconds elapsed since the previous call, in [0, Max].
// The first call returns 0.
func (c *Clock) Tick(now time.Time) float32 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if c.Max > 0 && elapsed > c.Max {
		elapsed = c.Max
	}
	return float32(elapsed.Seconds())
}
