package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// TickSample is what the driver reports about one tick.
type TickSample struct {
	Duration  time.Duration
	Elapsed   float64
	Submitted bool
	Resized   bool
	MinZ      float64
	MaxZ      float64
	Viewport  ViewportState
}

// FrameRecord is one CSV row, summarizing a window of ticks.
type FrameRecord struct {
	Tick        int64   `csv:"tick"`
	Elapsed     float64 `csv:"elapsed_s"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	Submitted   int     `csv:"submitted"`
	Dropped     int     `csv:"dropped"`
	Resizes     int     `csv:"resizes"`
	MinZ        float64 `csv:"min_z"`
	MaxZ        float64 `csv:"max_z"`
	Width       int     `csv:"width"`
	Height      int     `csv:"height"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

// FrameStats aggregates tick samples over a fixed window and appends one
// record per full window to an optional CSV sink.
type FrameStats struct {
	window int
	out    io.Writer

	tick          int64
	count         int
	total         time.Duration
	max           time.Duration
	submitted     int
	dropped       int
	resizes       int
	minZ, maxZ    float64
	last          TickSample
	windowStart   time.Time
	headerWritten bool
	records       []FrameRecord
}

// NewFrameStats creates a collector. out may be nil to keep records in memory
// only.
func NewFrameStats(window int, out io.Writer) *FrameStats {
	if window < 1 {
		window = 60
	}
	s := &FrameStats{window: window, out: out}
	s.resetWindow()
	return s
}

// OpenStatsFile creates the CSV file at path.
func OpenStatsFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stats file: %w", err)
	}
	return f, nil
}

func (s *FrameStats) resetWindow() {
	s.count = 0
	s.total = 0
	s.max = 0
	s.submitted = 0
	s.dropped = 0
	s.resizes = 0
	s.minZ = math.Inf(1)
	s.maxZ = math.Inf(-1)
	s.windowStart = time.Now()
}

// Record adds a sample and flushes a record when the window is full.
func (s *FrameStats) Record(sample TickSample) error {
	s.tick++
	s.count++
	s.total += sample.Duration
	if sample.Duration > s.max {
		s.max = sample.Duration
	}
	if sample.Submitted {
		s.submitted++
		s.minZ = math.Min(s.minZ, sample.MinZ)
		s.maxZ = math.Max(s.maxZ, sample.MaxZ)
	} else {
		s.dropped++
	}
	if sample.Resized {
		s.resizes++
	}
	s.last = sample

	if s.count < s.window {
		return nil
	}
	return s.flush()
}

func (s *FrameStats) flush() error {
	rec := s.Summary()
	s.records = append(s.records, rec)
	s.resetWindow()

	if s.out == nil {
		return nil
	}
	records := []FrameRecord{rec}
	if !s.headerWritten {
		s.headerWritten = true
		if err := gocsv.Marshal(records, s.out); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.out); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Summary describes the current, possibly partial, window.
func (s *FrameStats) Summary() FrameRecord {
	rec := FrameRecord{
		Tick:      s.tick,
		Elapsed:   s.last.Elapsed,
		MaxTickUS: s.max.Microseconds(),
		Submitted: s.submitted,
		Dropped:   s.dropped,
		Resizes:   s.resizes,
		Width:     s.last.Viewport.Width,
		Height:    s.last.Viewport.Height,
	}
	if s.count > 0 {
		rec.AvgTickUS = (s.total / time.Duration(s.count)).Microseconds()
	}
	if s.submitted > 0 {
		rec.MinZ, rec.MaxZ = s.minZ, s.maxZ
	}
	if secs := time.Since(s.windowStart).Seconds(); secs > 0 {
		rec.TicksPerSec = float64(s.count) / secs
	}
	return rec
}

// Records returns every flushed window.
func (s *FrameStats) Records() []FrameRecord {
	return s.records
}
