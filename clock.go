package main

import "time"

// AnimationClock maps wall-clock readings to animation seconds. Elapsed time
// is absolute from start, so no drift accumulates between ticks.
type AnimationClock struct {
	start     time.Time
	timeScale float64
	last      float64
}

func NewAnimationClock(start time.Time, timeScale float64) *AnimationClock {
	return &AnimationClock{start: start, timeScale: timeScale}
}

// Elapsed returns the scaled seconds since start. It never goes backwards,
// even if the host hands over an earlier timestamp.
func (c *AnimationClock) Elapsed(now time.Time) float64 {
	elapsed := now.Sub(c.start).Seconds() * c.timeScale
	if elapsed < c.last {
		return c.last
	}
	c.last = elapsed
	return elapsed
}

// Seconds is the last value returned by Elapsed.
func (c *AnimationClock) Seconds() float64 {
	return c.last
}
