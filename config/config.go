// Package config holds the settings of a viewport run: which demo, how large, where assets live
// and whether to render headless. Settings come from a TOML file and are overridden by CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config holds all configurable paths and run settings.
type Config struct {
	// Demo selection and window
	Demo   string `toml:"demo"`
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`

	// Headless runs a fixed number of frames with no window. Frames of 0 means until closed,
	// which for headless runs falls back to DefaultHeadlessFrames.
	Headless bool `toml:"headless"`
	Frames   int  `toml:"frames"`

	// Paths
	Assets  string `toml:"assets"`
	Capture string `toml:"capture"`
	Preset  string `toml:"preset"`

	// Render settings. MaxPixelRatio of 0 leaves the pixel ratio uncapped.
	Workers       int     `toml:"workers"`
	MaxPixelRatio float32 `toml:"max_pixel_ratio"`

	// Diagnostics
	Profiling bool   `toml:"profiling"`
	LogLevel  string `toml:"log_level"`
}

// DefaultHeadlessFrames is the frame count of a headless run that did not set one.
const DefaultHeadlessFrames = 120

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone.
type Flags struct {
	Demo      string
	Width     int
	Height    int
	FPS       int
	Headless  bool
	Frames    int
	Assets    string
	Capture   string
	Preset    string
	Workers   int
	Profiling bool
	LogLevel  string
}

// Load reads a TOML config file and returns Config.
// Fields not set in the file keep their zero values.
//
// Parameters:
//   - path: the file to read; a leading ~ is expanded
//
// Returns:
//   - Config: the parsed settings
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI flag overrides, expands paths and fills in defaults.
//
// Parameters:
//   - flags: values from the command line
//
// Returns:
//   - error: error if a path cannot be expanded
func (c *Config) Resolve(flags Flags) error {
	if flags.Demo != "" {
		c.Demo = flags.Demo
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Headless {
		c.Headless = true
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Assets != "" {
		c.Assets = flags.Assets
	}
	if flags.Capture != "" {
		c.Capture = flags.Capture
	}
	if flags.Preset != "" {
		c.Preset = flags.Preset
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Profiling {
		c.Profiling = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Demo == "" {
		c.Demo = "basic"
	}
	if c.Title == "" {
		c.Title = "oxy-viewport: " + c.Demo
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Headless && c.Frames <= 0 {
		c.Frames = DefaultHeadlessFrames
	}
	if c.Assets == "" {
		c.Assets = "assets"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxPixelRatio < 0 {
		c.MaxPixelRatio = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	for _, p := range []*string{&c.Assets, &c.Capture, &c.Preset} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %s: %w", *p, err)
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}

// Level parses LogLevel.
//
// Returns:
//   - zerolog.Level: the level
//   - error: error if LogLevel is not a zerolog level name
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
