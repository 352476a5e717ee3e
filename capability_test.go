package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestProbeTerminalRejectsPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if err := probeTerminal(w.Fd(), termenv.TrueColor); !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestProbeWindowWithoutBuildTag(t *testing.T) {
	if windowSupported {
		t.Skip("built with the window backend")
	}
	if err := ProbeCapability(BackendWindow, os.Stdout); !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
	if _, err := newWindowSurface(nil); !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("newWindowSurface: %v", err)
	}
}

func TestProbeUnknownBackend(t *testing.T) {
	var cfgErr *ConfigError
	if err := ProbeCapability("opengl", os.Stdout); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestFallbackNotice(t *testing.T) {
	var buf bytes.Buffer
	WriteFallbackNotice(&buf, ErrCapabilityUnavailable)
	out := buf.String()
	if !strings.Contains(out, "cannot render") {
		t.Errorf("notice = %q", out)
	}
	if !strings.Contains(out, ErrCapabilityUnavailable.Error()) {
		t.Errorf("notice does not name the cause: %q", out)
	}
}
