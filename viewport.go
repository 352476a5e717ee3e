package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Size is a drawable size reported by the host, before the pixel ratio.
type Size struct {
	Width  int
	Height int
}

// ViewportState is the drawable the projection was last built for.
type ViewportState struct {
	Width       int
	Height      int
	AspectRatio float64
}

// CameraConfig is the fixed part of the projection.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"` // vertical, degrees
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
	Tilt     float64 `yaml:"tilt"` // field rotation about X, radians
}

func (c CameraConfig) Validate() error {
	switch {
	case !(c.FOV > 0 && c.FOV < 180):
		return &ConfigError{Field: "camera.fov", Value: c.FOV, Reason: "must be in (0, 180)"}
	case !(c.Near > 0):
		return &ConfigError{Field: "camera.near", Value: c.Near, Reason: "must be positive"}
	case !(c.Far > c.Near):
		return &ConfigError{Field: "camera.far", Value: c.Far, Reason: "must exceed camera.near"}
	}
	return nil
}

// ViewportAdapter tracks the drawable size and keeps the projection in sync
// with its aspect ratio.
type ViewportAdapter struct {
	camera     CameraConfig
	pixelRatio float64
	state      ViewportState

	projection *mat.Dense
	mvp        *mat.Dense
	transform  [16]float64
}

func NewViewportAdapter(camera CameraConfig, pixelRatio float64) (*ViewportAdapter, error) {
	if err := camera.Validate(); err != nil {
		return nil, err
	}
	if !(pixelRatio > 0) {
		return nil, &ConfigError{Field: "display.pixel_ratio", Value: pixelRatio, Reason: "must be positive"}
	}
	return &ViewportAdapter{camera: camera, pixelRatio: pixelRatio}, nil
}

// Reconcile compares the host size with the tracked drawable and rebuilds the
// projection when they differ. Non-positive sizes are ignored.
func (v *ViewportAdapter) Reconcile(size Size) (changed bool, aspect float64) {
	width := int(math.Round(float64(size.Width) * v.pixelRatio))
	height := int(math.Round(float64(size.Height) * v.pixelRatio))
	if width <= 0 || height <= 0 || (width == v.state.Width && height == v.state.Height) {
		return false, v.state.AspectRatio
	}

	v.state = ViewportState{
		Width:       width,
		Height:      height,
		AspectRatio: float64(width) / float64(height),
	}
	v.rebuild()
	return true, v.state.AspectRatio
}

// SetPixelRatio changes the device pixel ratio; the next Reconcile picks it up.
func (v *ViewportAdapter) SetPixelRatio(ratio float64) {
	if ratio > 0 {
		v.pixelRatio = ratio
	}
}

func (v *ViewportAdapter) State() ViewportState { return v.state }

// Ready reports whether a drawable size has been seen.
func (v *ViewportAdapter) Ready() bool { return v.state.Width > 0 }

// Projection is the perspective matrix for the current aspect ratio.
func (v *ViewportAdapter) Projection() *mat.Dense { return v.projection }

// MVP is projection * view * model.
func (v *ViewportAdapter) MVP() *mat.Dense { return v.mvp }

// Transform is MVP flattened row-major for the per-vertex hot path.
func (v *ViewportAdapter) Transform() [16]float64 { return v.transform }

func (v *ViewportAdapter) rebuild() {
	v.projection = perspective(v.camera.FOV*math.Pi/180, v.state.AspectRatio, v.camera.Near, v.camera.Far)

	view := translation(0, 0, -v.camera.Distance)
	model := rotationX(v.camera.Tilt)

	var viewModel mat.Dense
	viewModel.Mul(view, model)
	mvp := mat.NewDense(4, 4, nil)
	mvp.Mul(v.projection, &viewModel)
	v.mvp = mvp

	copy(v.transform[:], mvp.RawMatrix().Data)
}

func perspective(fovY, aspect, near, far float64) *mat.Dense {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return mat.NewDense(4, 4, []float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	})
}

func translation(x, y, z float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

func rotationX(angle float64) *mat.Dense {
	sin, cos := math.Sincos(angle)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	})
}
