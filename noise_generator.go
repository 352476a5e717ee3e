package main

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// NoiseField maps a 2D sample point to a bounded, continuous scalar.
type NoiseField interface {
	Eval(x, y float64) float64
}

const (
	NoiseBasisValue   = "value"
	NoiseBasisSimplex = "simplex"
)

// NewNoiseField returns the noise basis named in the config.
func NewNoiseField(basis string, seed int64) (NoiseField, error) {
	switch basis {
	case "", NoiseBasisValue:
		return ValueNoise{}, nil
	case NoiseBasisSimplex:
		return NewSimplexNoise(seed), nil
	}
	return nil, &ConfigError{Field: "noise.basis", Value: basis, Reason: "unknown noise basis"}
}

// ValueNoise interpolates hashed lattice values with a cubic Hermite curve.
// It holds no state, so the zero value is ready to use.
type ValueNoise struct{}

func (ValueNoise) Eval(x, y float64) float64 {
	// floor, not truncation, keeps the field continuous across the origin
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy

	// Four corners of the lattice cell
	a := latticeRandom(ix, iy)
	b := latticeRandom(ix+1, iy)
	c := latticeRandom(ix, iy+1)
	d := latticeRandom(ix+1, iy+1)

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

// latticeRandom is the sine-dot hash, in [0,1).
func latticeRandom(x, y float64) float64 {
	return fract(math.Sin(x*12.9898+y*78.233) * 43758.5453123)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// SimplexNoise adapts OpenSimplex to the [0,1] range used by ValueNoise.
type SimplexNoise struct {
	noise opensimplex.Noise
}

func NewSimplexNoise(seed int64) SimplexNoise {
	return SimplexNoise{noise: opensimplex.New(seed)}
}

func (s SimplexNoise) Eval(x, y float64) float64 {
	return (s.noise.Eval2(x, y) + 1) * 0.5
}
