package main

import (
	"testing"
	"time"
)

func TestAnimationClockScaled(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewAnimationClock(start, 0.5)

	if got := c.Elapsed(start); got != 0 {
		t.Errorf("elapsed at start = %f", got)
	}
	if got := c.Elapsed(start.Add(4 * time.Second)); got != 2 {
		t.Errorf("elapsed after 4s at scale 0.5 = %f, want 2", got)
	}
	if got := c.Seconds(); got != 2 {
		t.Errorf("Seconds = %f, want 2", got)
	}
}

func TestAnimationClockMonotonic(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewAnimationClock(start, 1)

	c.Elapsed(start.Add(3 * time.Second))
	if got := c.Elapsed(start.Add(time.Second)); got != 3 {
		t.Errorf("clock went backwards to %f", got)
	}
	if got := c.Elapsed(start.Add(-time.Second)); got != 3 {
		t.Errorf("timestamp before start gave %f", got)
	}
}

func TestAnimationClockBeforeStart(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewAnimationClock(start, 1)
	if got := c.Elapsed(start.Add(-5 * time.Second)); got != 0 {
		t.Errorf("elapsed before start = %f, want 0", got)
	}
}
