package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type options struct {
	configPath string
	backend    string
	statsPath  string
	logPath    string
	debug      bool
	dumpConfig bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.StringVar(&o.backend, "backend", "", "Surface: term or window (empty = use config)")
	flag.StringVar(&o.statsPath, "stats", "", "Write frame stats CSV to this file")
	flag.StringVar(&o.logPath, "log", "", "Log file (empty = use config)")
	flag.BoolVar(&o.debug, "debug", false, "Log at debug level")
	flag.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective config and exit")
	flag.Parse()
	return o
}

// loadConfig applies flag overrides on top of the config file.
func loadConfig(o options) (*Config, error) {
	cfg, err := Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Display.Backend = o.backend
	}
	if o.statsPath != "" {
		cfg.Stats.Path = o.statsPath
	}
	if o.logPath != "" {
		cfg.Log.Path = o.logPath
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDriver builds the point field and everything a tick needs.
func newDriver(cfg *Config, surface Surface, stats *FrameStats) (*AnimationDriver, error) {
	noise, err := NewNoiseField(cfg.Noise.Basis, cfg.Noise.Seed)
	if err != nil {
		return nil, err
	}
	layers, err := cfg.AllLayers()
	if err != nil {
		return nil, err
	}
	rule, err := FragmentRuleByName(cfg.Color.Rule)
	if err != nil {
		return nil, err
	}

	return NewAnimationDriver(DriverOptions{
		Grid:       cfg.GridSpec(),
		Layers:     layers,
		Noise:      noise,
		Camera:     cfg.Camera,
		PixelRatio: cfg.Display.PixelRatio,
		PointSize:  cfg.Display.PointSize,
		TimeScale:  cfg.Animation.TimeScale,
		Rule:       rule,
		Parallel:   cfg.Animation.Parallel,
		Start:      time.Now(),
		Surface:    surface,
		Stats:      stats,
	})
}

func run(cfg *Config) error {
	if err := ProbeCapability(cfg.Display.Backend, os.Stdout); err != nil {
		return err
	}

	var stats *FrameStats
	if cfg.Stats.Path != "" {
		f, err := OpenStatsFile(cfg.Stats.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		stats = NewFrameStats(cfg.Stats.Window, f)
	}

	if cfg.Display.Backend == BackendWindow {
		surface, err := newWindowSurface(cfg)
		if err != nil {
			return err
		}
		driver, err := newDriver(cfg, surface, stats)
		if err != nil {
			return err
		}
		return runWindow(cfg, driver, surface)
	}

	surface := NewTermSurface()
	driver, err := newDriver(cfg, surface, stats)
	if err != nil {
		return err
	}
	p := tea.NewProgram(initialModel(driver, surface, cfg.Display.FPS), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}
	return nil
}

func main() {
	o := parseFlags()

	cfg, err := loadConfig(o)
	if err != nil {
		log.Fatal(err)
	}

	if o.dumpConfig {
		out, err := cfg.YAML()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(out)
		return
	}

	level, err := cfg.LogLevel()
	if err != nil {
		log.Fatal(err)
	}
	if err := InitLogger(cfg.Log.Path, level); err != nil {
		log.Fatal(err)
	}
	defer CloseLogger()

	if err := run(cfg); err != nil {
		if errors.Is(err, ErrCapabilityUnavailable) {
			LogError("capability unavailable", "backend", cfg.Display.Backend, "error", err)
			WriteFallbackNotice(os.Stderr, err)
			CloseLogger()
			os.Exit(2)
		}
		LogError("exiting", "error", err)
		CloseLogger()
		log.Fatal(err)
	}
}
