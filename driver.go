package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dgravesa/go-parallel/parallel"
)

// DriverOptions wires an AnimationDriver. Every field except Stats is required.
type DriverOptions struct {
	Grid       GridSpec
	Layers     Layers
	Noise      NoiseField
	Camera     CameraConfig
	PixelRatio float64
	PointSize  float64
	TimeScale  float64
	Rule       FragmentRule
	Parallel   bool
	Start      time.Time
	Surface    Surface
	Stats      *FrameStats
}

// AnimationDriver owns the clock and the vertex buffer. The host calls Tick
// once per display refresh and Resize whenever its drawable changes size.
type AnimationDriver struct {
	grid      GridSpec
	vertices  []Vertex
	layers    Layers
	noise     NoiseField
	clock     *AnimationClock
	viewport  *ViewportAdapter
	surface   Surface
	stats     *FrameStats
	rule      FragmentRule
	pointSize float64
	parallel  bool

	pending Size
	ticks   int64
	dropped int64
}

// NewAnimationDriver validates every parameter up front; a driver that
// constructs successfully never fails a tick on configuration.
func NewAnimationDriver(opts DriverOptions) (*AnimationDriver, error) {
	vertices, err := BuildGrid(opts.Grid)
	if err != nil {
		return nil, err
	}
	if err := opts.Layers.Validate(); err != nil {
		return nil, err
	}
	if opts.Noise == nil {
		return nil, &ConfigError{Field: "noise", Value: nil, Reason: "no noise field"}
	}
	if opts.Surface == nil {
		return nil, &ConfigError{Field: "surface", Value: nil, Reason: "no surface"}
	}
	if !(opts.PointSize > 0) {
		return nil, &ConfigError{Field: "display.point_size", Value: opts.PointSize, Reason: "must be positive"}
	}
	if !(opts.TimeScale >= 0) {
		return nil, &ConfigError{Field: "animation.time_scale", Value: opts.TimeScale, Reason: "must not be negative"}
	}
	viewport, err := NewViewportAdapter(opts.Camera, opts.PixelRatio)
	if err != nil {
		return nil, err
	}

	rule := opts.Rule
	if rule == nil {
		rule = GradientRule
	}

	LogInfo("point field built",
		"points", len(vertices),
		"layers", len(opts.Layers),
		"parallel", opts.Parallel,
	)

	return &AnimationDriver{
		grid:      opts.Grid,
		vertices:  vertices,
		layers:    opts.Layers,
		noise:     opts.Noise,
		clock:     NewAnimationClock(opts.Start, opts.TimeScale),
		viewport:  viewport,
		surface:   opts.Surface,
		stats:     opts.Stats,
		rule:      rule,
		pointSize: opts.PointSize,
		parallel:  opts.Parallel,
	}, nil
}

// Resize records the host's drawable size; the next tick reconciles it.
func (d *AnimationDriver) Resize(size Size) {
	d.pending = size
}

// SetLayers swaps the displacement layers between ticks.
func (d *AnimationDriver) SetLayers(layers Layers) error {
	if err := layers.Validate(); err != nil {
		return err
	}
	d.layers = layers
	return nil
}

// Tick advances the animation to now and submits a frame. An error means only
// this tick's frame was dropped; the caller keeps scheduling ticks.
func (d *AnimationDriver) Tick(now time.Time) (err error) {
	d.ticks++
	elapsed := d.clock.Elapsed(now)

	changed, aspect := d.viewport.Reconcile(d.pending)
	if changed {
		state := d.viewport.State()
		LogInfo("viewport resized", "width", state.Width, "height", state.Height, "aspect", aspect)
	}
	if !d.viewport.Ready() {
		return nil
	}

	started := time.Now()
	sample := TickSample{Elapsed: elapsed, Resized: changed, Viewport: d.viewport.State()}
	defer func() {
		if r := recover(); r != nil {
			LogPanic(r, fmt.Sprintf("tick %d", d.ticks))
			err = fmt.Errorf("%w: panic: %v", ErrFrameDropped, r)
			sample.Submitted = false
		}
		if err != nil {
			d.dropped++
		}
		sample.Duration = time.Since(started)
		if d.stats != nil {
			if serr := d.stats.Record(sample); serr != nil {
				LogError("stats write failed", "error", serr)
			}
		}
	}()

	d.displace(elapsed)

	minZ, maxZ, bad := d.bounds()
	if bad >= 0 {
		LogError("dropping frame",
			"tick", d.ticks,
			"elapsed", elapsed,
			"vertex", bad,
			"z", d.vertices[bad].Z,
		)
		return fmt.Errorf("%w: non-finite displacement at vertex %d", ErrFrameDropped, bad)
	}

	d.surface.Submit(Frame{
		Vertices:  d.vertices,
		Transform: d.viewport.Transform(),
		Viewport:  d.viewport.State(),
		PointSize: d.pointSize,
		Rule:      d.rule,
		Elapsed:   elapsed,
	})
	sample.Submitted = true
	sample.MinZ, sample.MaxZ = minZ, maxZ
	return nil
}

func (d *AnimationDriver) displace(t float64) {
	if !d.parallel {
		for i := range d.vertices {
			v := &d.vertices[i]
			v.Z = d.layers.Sum(d.noise, v.a, v.b, t)
		}
		return
	}

	// Rows write disjoint slices of the buffer
	var (
		once     sync.Once
		rowPanic any
	)
	cols := d.grid.ExtentMajor
	parallel.For(d.grid.ExtentMinor, func(row, _ int) {
		// A panic on a worker would kill the process; hand it back to Tick
		defer func() {
			if r := recover(); r != nil {
				once.Do(func() { rowPanic = fmt.Sprintf("row %d: %v", row, r) })
			}
		}()
		rowVerts := d.vertices[row*cols : (row+1)*cols]
		for i := range rowVerts {
			v := &rowVerts[i]
			v.Z = d.layers.Sum(d.noise, v.a, v.b, t)
		}
	})
	if rowPanic != nil {
		panic(rowPanic)
	}
}

// bounds returns the depth range and the index of the first non-finite
// vertex, or -1.
func (d *AnimationDriver) bounds() (minZ, maxZ float64, bad int) {
	minZ, maxZ = math.Inf(1), math.Inf(-1)
	for i, v := range d.vertices {
		if math.IsNaN(v.Z) || math.IsInf(v.Z, 0) {
			return 0, 0, i
		}
		minZ = math.Min(minZ, v.Z)
		maxZ = math.Max(maxZ, v.Z)
	}
	return minZ, maxZ, -1
}

func (d *AnimationDriver) Vertices() []Vertex         { return d.vertices }
func (d *AnimationDriver) Viewport() *ViewportAdapter { return d.viewport }
func (d *AnimationDriver) Clock() *AnimationClock     { return d.clock }
func (d *AnimationDriver) Ticks() int64               { return d.ticks }
func (d *AnimationDriver) Dropped() int64             { return d.dropped }
