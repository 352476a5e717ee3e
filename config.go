package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the point field.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Grid      GridConfig      `yaml:"grid"`
	Noise     NoiseConfig     `yaml:"noise"`
	Layers    Layers          `yaml:"layers"`
	Octaves   OctavesConfig   `yaml:"octaves"`
	Color     ColorConfig     `yaml:"color"`
	Log       LogConfig       `yaml:"log"`
	Stats     StatsConfig     `yaml:"stats"`
}

const (
	BackendTerm   = "term"
	BackendWindow = "window"
)

type DisplayConfig struct {
	Backend    string  `yaml:"backend"`
	FPS        int     `yaml:"fps"`
	PixelRatio float64 `yaml:"pixel_ratio"`
	PointSize  float64 `yaml:"point_size"`
}

type AnimationConfig struct {
	TimeScale float64 `yaml:"time_scale"`
	Parallel  bool    `yaml:"parallel"`
}

// GridConfig is a GridSpec plus the option to derive the centering.
type GridConfig struct {
	GridSpec `yaml:",inline"`
	Centered bool `yaml:"centered"` // derive origin_offset and aspect_ratio
}

// gridKeys records which grid keys a config file sets, so centering never
// overrides an explicit offset.
type gridKeys struct {
	Grid struct {
		Centered     *bool    `yaml:"centered"`
		OriginOffset *float64 `yaml:"origin_offset"`
		AspectRatio  *float64 `yaml:"aspect_ratio"`
	} `yaml:"grid"`
}

func (k gridKeys) check() error {
	g := k.Grid
	if g.Centered == nil || !*g.Centered {
		return nil
	}
	if g.OriginOffset != nil || g.AspectRatio != nil {
		return &ConfigError{Field: "grid.centered", Value: true, Reason: "cannot be combined with origin_offset or aspect_ratio"}
	}
	return nil
}

type NoiseConfig struct {
	Basis string `yaml:"basis"`
	Seed  int64  `yaml:"seed"`
}

// OctavesConfig appends generated layers after the explicit ones when Count
// is positive.
type OctavesConfig struct {
	Count        int             `yaml:"count"`
	Lacunarity   float64         `yaml:"lacunarity"`
	Gain         float64         `yaml:"gain"`
	RotationStep float64         `yaml:"rotation_step"`
	Base         NoiseParameters `yaml:"base"`
}

type ColorConfig struct {
	Rule       string `yaml:"rule"`
	Background string `yaml:"background"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type StatsConfig struct {
	Path   string `yaml:"path"`
	Window int    `yaml:"window"`
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		var keys gridKeys
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if err := keys.check(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything that can be checked without building the field.
func (c *Config) Validate() error {
	switch c.Display.Backend {
	case BackendTerm, BackendWindow:
	default:
		return &ConfigError{Field: "display.backend", Value: c.Display.Backend, Reason: "must be term or window"}
	}
	if c.Display.FPS <= 0 {
		return &ConfigError{Field: "display.fps", Value: c.Display.FPS, Reason: "must be positive"}
	}
	if !(c.Display.PixelRatio > 0) {
		return &ConfigError{Field: "display.pixel_ratio", Value: c.Display.PixelRatio, Reason: "must be positive"}
	}
	if !(c.Display.PointSize > 0) {
		return &ConfigError{Field: "display.point_size", Value: c.Display.PointSize, Reason: "must be positive"}
	}
	if !(c.Animation.TimeScale >= 0) {
		return &ConfigError{Field: "animation.time_scale", Value: c.Animation.TimeScale, Reason: "must not be negative"}
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	if err := c.GridSpec().Validate(); err != nil {
		return err
	}
	if _, err := c.AllLayers(); err != nil {
		return err
	}
	if _, err := NewNoiseField(c.Noise.Basis, c.Noise.Seed); err != nil {
		return err
	}
	if _, err := FragmentRuleByName(c.Color.Rule); err != nil {
		return err
	}
	if _, _, _, ok := parseHex(c.Color.Background); !ok {
		return &ConfigError{Field: "color.background", Value: c.Color.Background, Reason: "must be #RRGGBB"}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// GridSpec resolves the centering option.
func (c *Config) GridSpec() GridSpec {
	if c.Grid.Centered {
		return CenteredGrid(c.Grid.ExtentMajor, c.Grid.ExtentMinor, c.Grid.Spacing)
	}
	return c.Grid.GridSpec
}

// AllLayers is the explicit layers followed by any generated octaves.
func (c *Config) AllLayers() (Layers, error) {
	layers := append(Layers(nil), c.Layers...)
	if c.Octaves.Count > 0 {
		oct, err := Octaves(c.Octaves.Base, c.Octaves.Count, c.Octaves.Lacunarity, c.Octaves.Gain, c.Octaves.RotationStep)
		if err != nil {
			return nil, err
		}
		layers = append(layers, oct...)
	}
	if err := layers.Validate(); err != nil {
		return nil, err
	}
	return layers, nil
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, &ConfigError{Field: "log.level", Value: c.Log.Level, Reason: "unknown level"}
	}
	return level, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
