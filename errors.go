package main

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityUnavailable means no surface can be created in this environment.
	ErrCapabilityUnavailable = errors.New("rendering surface unavailable")

	// ErrFrameDropped marks a tick whose frame was not submitted.
	ErrFrameDropped = errors.New("frame dropped")
)

// ConfigError reports a tunable that is out of range. It is raised before the
// first tick and never clamped.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}
