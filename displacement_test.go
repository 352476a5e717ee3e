package main

import (
	"errors"
	"math"
	"testing"
)

func sampleLayers() Layers {
	return Layers{
		{Frequency: 3, Amplitude: 0.2, PhaseSpeed: 1, Direction: 1},
		{Frequency: 3, Amplitude: 0.1, PhaseSpeed: 0.72, RotationAngle: -math.Pi / 4, Direction: -1, SwapAxes: true},
		{Frequency: 7.5, Amplitude: 0.05, PhaseSpeed: 2, RotationAngle: 0.3, Direction: 1, Scroll: ScrollY},
	}
}

func TestDisplaceZeroAmplitude(t *testing.T) {
	p := NoiseParameters{Frequency: 3, Amplitude: 0, PhaseSpeed: 1, Direction: 1}
	var field ValueNoise
	for _, tm := range []float64{0, 0.5, 17, 1e6} {
		for _, pos := range [][2]float64{{0, 0}, {-1.5, 2.25}, {8, -4}} {
			if got := Displace(field, pos[0], pos[1], tm, p); got != 0 {
				t.Fatalf("amplitude 0 displaced %v at t=%f by %f", pos, tm, got)
			}
		}
	}
}

func TestDisplaceDirectionAtTimeZero(t *testing.T) {
	var field ValueNoise
	forward := NoiseParameters{Frequency: 3, Amplitude: 0.2, PhaseSpeed: 1.2, Direction: 1}
	backward := forward
	backward.Direction = -1

	points := [][2]float64{{0.1, 0.2}, {-1.5, 0.75}, {3.3, -2.1}, {0.9, 0.9}}
	for _, pos := range points {
		if a, b := Displace(field, pos[0], pos[1], 0, forward), Displace(field, pos[0], pos[1], 0, backward); a != b {
			t.Fatalf("directions differ at t=0 for %v: %f vs %f", pos, a, b)
		}
	}

	diverged := false
	for _, pos := range points {
		if Displace(field, pos[0], pos[1], 1.3, forward) != Displace(field, pos[0], pos[1], 1.3, backward) {
			diverged = true
		}
	}
	if !diverged {
		t.Fatal("opposite directions produced identical displacement at t=1.3")
	}
}

func TestLayersSumCommutative(t *testing.T) {
	var field ValueNoise
	layers := sampleLayers()
	perms := []Layers{
		{layers[0], layers[1], layers[2]},
		{layers[2], layers[1], layers[0]},
		{layers[1], layers[2], layers[0]},
		{layers[1], layers[0], layers[2]},
	}

	for _, tm := range []float64{0, 0.7, 12.5} {
		for _, pos := range [][2]float64{{0, 0}, {-3.2, 1.1}, {5.5, -2.75}} {
			want := perms[0].Sum(field, pos[0], pos[1], tm)
			for i, perm := range perms[1:] {
				if got := perm.Sum(field, pos[0], pos[1], tm); math.Abs(got-want) > 1e-12 {
					t.Errorf("perm %d at %v t=%f: %f, want %f", i+1, pos, tm, got, want)
				}
			}
		}
	}
}

func TestLayersSumUsesBasePosition(t *testing.T) {
	var field ValueNoise
	layers := sampleLayers()
	a, b, tm := 1.25, -0.5, 2.0
	want := 0.0
	for _, p := range layers {
		want += Displace(field, a, b, tm, p)
	}
	if got := layers.Sum(field, a, b, tm); got != want {
		t.Fatalf("Sum = %f, want independent sum %f", got, want)
	}
}

func TestDisplaceSwapAxes(t *testing.T) {
	var field ValueNoise
	p := NoiseParameters{Frequency: 2, Amplitude: 1, PhaseSpeed: 0.5, Direction: 1}
	swapped := p
	swapped.SwapAxes = true
	if a, b := Displace(field, 0.3, 1.7, 0.4, swapped), Displace(field, 1.7, 0.3, 0.4, p); a != b {
		t.Fatalf("swap axes: %f vs %f", a, b)
	}
}

func TestDisplaceScrollAxis(t *testing.T) {
	var field ValueNoise
	a, b, tm := 0.4, -1.1, 2.5
	base := NoiseParameters{Frequency: 1, Amplitude: 1, PhaseSpeed: 1, Direction: 1}

	tests := []struct {
		scroll ScrollAxis
		x, y   float64
	}{
		{ScrollX, a + tm, b},
		{ScrollY, a, b + tm},
		{ScrollBoth, a + tm, b + tm},
		{"", a + tm, b + tm},
	}
	for _, tc := range tests {
		p := base
		p.Scroll = tc.scroll
		if got, want := Displace(field, a, b, tm, p), field.Eval(tc.x, tc.y); got != want {
			t.Errorf("scroll %q: got %f, want %f", tc.scroll, got, want)
		}
	}
}

func TestDisplaceFullTurnRotation(t *testing.T) {
	var field ValueNoise
	p := NoiseParameters{Frequency: 3, Amplitude: 1, PhaseSpeed: 1, Direction: 1}
	turned := p
	turned.RotationAngle = 2 * math.Pi
	for _, pos := range [][2]float64{{0.2, 0.9}, {-2, 1.5}} {
		if diff := math.Abs(Displace(field, pos[0], pos[1], 1, p) - Displace(field, pos[0], pos[1], 1, turned)); diff > 1e-9 {
			t.Errorf("full turn changed displacement at %v by %g", pos, diff)
		}
	}
}

func TestNoiseParametersValidate(t *testing.T) {
	valid := NoiseParameters{Frequency: 1, Amplitude: 0, Direction: 1}
	tests := []struct {
		name   string
		mutate func(*NoiseParameters)
		field  string
	}{
		{"zero frequency", func(p *NoiseParameters) { p.Frequency = 0 }, "frequency"},
		{"negative frequency", func(p *NoiseParameters) { p.Frequency = -2 }, "frequency"},
		{"nan frequency", func(p *NoiseParameters) { p.Frequency = math.NaN() }, "frequency"},
		{"negative amplitude", func(p *NoiseParameters) { p.Amplitude = -0.1 }, "amplitude"},
		{"zero direction", func(p *NoiseParameters) { p.Direction = 0 }, "direction"},
		{"bad scroll", func(p *NoiseParameters) { p.Scroll = "z" }, "scroll"},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	for _, tc := range tests {
		p := valid
		tc.mutate(&p)
		var cfgErr *ConfigError
		if err := p.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != tc.field {
			t.Errorf("%s: got %v, want ConfigError on %s", tc.name, err, tc.field)
		}
	}

	layers := Layers{valid, {Frequency: 0, Direction: 1}}
	var cfgErr *ConfigError
	if err := layers.Validate(); !errors.As(err, &cfgErr) {
		t.Errorf("Layers.Validate: expected wrapped ConfigError, got %v", err)
	}
}

func TestOctaves(t *testing.T) {
	base := NoiseParameters{Frequency: 1, Amplitude: 0.4, PhaseSpeed: 1, Direction: 1}
	layers, err := Octaves(base, 3, 2, 0.5, 0.25)
	if err != nil {
		t.Fatalf("Octaves: %v", err)
	}
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}

	wantFreq := []float64{1, 2, 4}
	wantAmp := []float64{0.4, 0.2, 0.1}
	wantDir := []int{1, -1, 1}
	for i, l := range layers {
		if l.Frequency != wantFreq[i] || math.Abs(l.Amplitude-wantAmp[i]) > 1e-12 || l.Direction != wantDir[i] {
			t.Errorf("octave %d = %+v", i, l)
		}
		if math.Abs(l.RotationAngle-0.25*float64(i)) > 1e-12 {
			t.Errorf("octave %d rotation %f", i, l.RotationAngle)
		}
	}
	if err := layers.Validate(); err != nil {
		t.Errorf("generated octaves invalid: %v", err)
	}

	for _, bad := range []struct {
		count      int
		lacunarity float64
		gain       float64
	}{
		{0, 2, 0.5},
		{2, 0, 0.5},
		{2, 2, -1},
	} {
		if _, err := Octaves(base, bad.count, bad.lacunarity, bad.gain, 0); err == nil {
			t.Errorf("Octaves(%+v) accepted", bad)
		}
	}
}
