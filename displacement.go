package main

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ScrollAxis selects which sample axes the time term is added to.
type ScrollAxis string

const (
	ScrollX    ScrollAxis = "x"
	ScrollY    ScrollAxis = "y"
	ScrollBoth ScrollAxis = "xy"
)

// NoiseParameters configures one displacement layer.
type NoiseParameters struct {
	Frequency     float64    `yaml:"frequency"`
	Amplitude     float64    `yaml:"amplitude"`
	PhaseSpeed    float64    `yaml:"phase_speed"`
	RotationAngle float64    `yaml:"rotation"` // radians
	Direction     int        `yaml:"direction"`
	SwapAxes      bool       `yaml:"swap_axes"`
	Scroll        ScrollAxis `yaml:"scroll"` // empty scrolls both axes
}

// UnmarshalYAML defaults an omitted direction to +1. Fields already set, as
// when a file overlays the defaults, are kept.
func (p *NoiseParameters) UnmarshalYAML(value *yaml.Node) error {
	type plain NoiseParameters
	raw := plain(*p)
	if raw.Direction == 0 {
		raw.Direction = 1
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = NoiseParameters(raw)
	return nil
}

// Validate rejects parameters that cannot produce a displacement.
func (p NoiseParameters) Validate() error {
	switch {
	case !(p.Frequency > 0) || math.IsInf(p.Frequency, 0):
		return &ConfigError{Field: "frequency", Value: p.Frequency, Reason: "must be positive and finite"}
	case !(p.Amplitude >= 0) || math.IsInf(p.Amplitude, 0):
		return &ConfigError{Field: "amplitude", Value: p.Amplitude, Reason: "must be non-negative and finite"}
	case p.Direction != 1 && p.Direction != -1:
		return &ConfigError{Field: "direction", Value: p.Direction, Reason: "must be +1 or -1"}
	}
	switch p.Scroll {
	case "", ScrollX, ScrollY, ScrollBoth:
	default:
		return &ConfigError{Field: "scroll", Value: p.Scroll, Reason: "must be x, y or xy"}
	}
	return nil
}

// Displace returns the offset one layer contributes to a vertex's depth at
// time t. The base position is never the output of another layer.
func Displace(field NoiseField, a, b, t float64, p NoiseParameters) float64 {
	if p.Amplitude == 0 {
		return 0
	}

	x, y := a, b
	if p.SwapAxes {
		x, y = b, a
	}
	if p.RotationAngle != 0 {
		sin, cos := math.Sincos(p.RotationAngle)
		x, y = cos*x-sin*y, sin*x+cos*y
	}
	x *= p.Frequency
	y *= p.Frequency

	shift := t * p.PhaseSpeed * float64(p.Direction)
	switch p.Scroll {
	case ScrollX:
		x += shift
	case ScrollY:
		y += shift
	default:
		x += shift
		y += shift
	}

	return field.Eval(x, y) * p.Amplitude
}

// Layers is an additive stack of displacement layers.
type Layers []NoiseParameters

// Validate reports the first invalid layer.
func (ls Layers) Validate() error {
	for i, p := range ls {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// Sum evaluates every layer at the undisplaced base position and adds the
// results, so the order of the layers does not matter.
func (ls Layers) Sum(field NoiseField, a, b, t float64) float64 {
	var total float64
	for _, p := range ls {
		total += Displace(field, a, b, t, p)
	}
	return total
}

// Octaves derives count layers from base. Each successive layer multiplies
// frequency by lacunarity and amplitude by gain, advances the rotation by
// rotationStep and reverses the direction of travel.
func Octaves(base NoiseParameters, count int, lacunarity, gain, rotationStep float64) (Layers, error) {
	if count <= 0 {
		return nil, &ConfigError{Field: "octaves.count", Value: count, Reason: "must be positive"}
	}
	if !(lacunarity > 0) {
		return nil, &ConfigError{Field: "octaves.lacunarity", Value: lacunarity, Reason: "must be positive"}
	}
	if !(gain >= 0) {
		return nil, &ConfigError{Field: "octaves.gain", Value: gain, Reason: "must be non-negative"}
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("octave base: %w", err)
	}

	layers := make(Layers, count)
	p := base
	for i := 0; i < count; i++ {
		layers[i] = p
		p.Frequency *= lacunarity
		p.Amplitude *= gain
		p.RotationAngle += rotationStep
		p.Direction = -p.Direction
	}
	return layers, nil
}
