//go:build !ebiten

package main

import "fmt"

const windowSupported = false

func newWindowSurface(*Config) (Surface, error) {
	return nil, fmt.Errorf("%w: window backend needs a build with -tags ebiten", ErrCapabilityUnavailable)
}

func runWindow(*Config, *AnimationDriver, Surface) error {
	return fmt.Errorf("%w: window backend needs a build with -tags ebiten", ErrCapabilityUnavailable)
}
