package main

import (
	"errors"
	"math"
	"testing"
)

func testCamera() CameraConfig {
	return CameraConfig{FOV: 60, Near: 0.1, Far: 50, Distance: 3.5, Tilt: -math.Pi / 8}
}

func TestViewportReconcileIdempotent(t *testing.T) {
	v, err := NewViewportAdapter(testCamera(), 1)
	if err != nil {
		t.Fatalf("NewViewportAdapter: %v", err)
	}
	if v.Ready() {
		t.Fatal("adapter ready before any size")
	}

	changed, aspect := v.Reconcile(Size{Width: 800, Height: 400})
	if !changed || aspect != 2 {
		t.Fatalf("first reconcile = (%v, %f), want (true, 2)", changed, aspect)
	}
	proj := v.Projection()

	changed, aspect = v.Reconcile(Size{Width: 800, Height: 400})
	if changed || aspect != 2 {
		t.Fatalf("second reconcile = (%v, %f), want (false, 2)", changed, aspect)
	}
	if v.Projection() != proj {
		t.Error("unchanged size rebuilt the projection")
	}
}

func TestViewportReconcileResize(t *testing.T) {
	v, _ := NewViewportAdapter(testCamera(), 1)
	v.Reconcile(Size{Width: 800, Height: 400})

	changed, aspect := v.Reconcile(Size{Width: 300, Height: 600})
	if !changed || aspect != 0.5 {
		t.Fatalf("resize = (%v, %f), want (true, 0.5)", changed, aspect)
	}
	state := v.State()
	if state.Width != 300 || state.Height != 600 {
		t.Errorf("state = %+v", state)
	}

	f := 1 / math.Tan(math.Pi/6)
	p := v.Projection()
	if math.Abs(p.At(0, 0)-f/0.5) > 1e-9 || math.Abs(p.At(1, 1)-f) > 1e-9 {
		t.Errorf("projection scale = (%f, %f), want (%f, %f)", p.At(0, 0), p.At(1, 1), f/0.5, f)
	}
}

func TestViewportIgnoresEmptySize(t *testing.T) {
	v, _ := NewViewportAdapter(testCamera(), 1)
	v.Reconcile(Size{Width: 640, Height: 480})
	for _, s := range []Size{{0, 480}, {640, 0}, {-1, -1}} {
		if changed, _ := v.Reconcile(s); changed {
			t.Errorf("size %+v reported a change", s)
		}
	}
	if st := v.State(); st.Width != 640 || st.Height != 480 {
		t.Errorf("state mutated to %+v", st)
	}
}

func TestViewportPixelRatio(t *testing.T) {
	v, _ := NewViewportAdapter(testCamera(), 2)
	v.Reconcile(Size{Width: 320, Height: 240})
	if st := v.State(); st.Width != 640 || st.Height != 480 {
		t.Fatalf("state = %+v, want 640x480", st)
	}

	v.SetPixelRatio(1)
	if changed, _ := v.Reconcile(Size{Width: 320, Height: 240}); !changed {
		t.Error("pixel ratio change not picked up")
	}
}

func TestViewportCenterProjectsToOrigin(t *testing.T) {
	v, _ := NewViewportAdapter(testCamera(), 1)
	v.Reconcile(Size{Width: 100, Height: 100})
	m := v.Transform()

	// The field origin sits on the view axis
	w := m[15]
	x, y := m[3]/w, m[7]/w
	if math.Abs(x) > 1e-12 || math.Abs(y) > 1e-12 {
		t.Errorf("origin projects to (%f, %f)", x, y)
	}
	if w <= 0 {
		t.Errorf("origin behind camera, w=%f", w)
	}
}

func TestCameraValidate(t *testing.T) {
	bad := []CameraConfig{
		{FOV: 0, Near: 0.1, Far: 10},
		{FOV: 180, Near: 0.1, Far: 10},
		{FOV: 60, Near: 0, Far: 10},
		{FOV: 60, Near: 5, Far: 1},
	}
	for _, c := range bad {
		var cfgErr *ConfigError
		if _, err := NewViewportAdapter(c, 1); !errors.As(err, &cfgErr) {
			t.Errorf("camera %+v: expected ConfigError, got %v", c, err)
		}
	}
	if _, err := NewViewportAdapter(testCamera(), 0); err == nil {
		t.Error("zero pixel ratio accepted")
	}
}
