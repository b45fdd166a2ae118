package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewport.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
demo = "pbr"
width = 1280
height = 720
headless = true
frames = 30
assets = "textures"
max_pixel_ratio = 1.5
log_level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pbr", cfg.Demo)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30, cfg.Frames)
	assert.Equal(t, "textures", cfg.Assets)
	assert.Equal(t, float32(1.5), cfg.MaxPixelRatio)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "width = \"wide\""))
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, "basic", cfg.Demo)
	assert.Equal(t, "oxy-viewport: basic", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, 0, cfg.Frames, "windowed runs last until the window closes")
	assert.Equal(t, "assets", cfg.Assets)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Zero(t, cfg.MaxPixelRatio, "the pixel ratio follows the display unless capped")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{Demo: "clock", Width: 1024, Height: 768, Workers: 2}
	require.NoError(t, cfg.Resolve(Flags{
		Demo:     "gsap",
		Width:    320,
		Headless: true,
		Capture:  "out/frame.webp",
	}))

	assert.Equal(t, "gsap", cfg.Demo)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 768, cfg.Height, "unset flags keep the file value")
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultHeadlessFrames, cfg.Frames)
	assert.Equal(t, filepath.Clean("out/frame.webp"), cfg.Capture)
}

func TestResolveExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Config{Assets: "~/textures", Preset: "~/presets/gui.toml"}
	require.NoError(t, cfg.Resolve(Flags{}))
	assert.Equal(t, filepath.Join(home, "textures"), cfg.Assets)
	assert.Equal(t, filepath.Join(home, "presets", "gui.toml"), cfg.Preset)
}

func TestLevel(t *testing.T) {
	cfg := Config{LogLevel: "warn"}
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	cfg.LogLevel = "chatty"
	_, err = cfg.Level()
	assert.Error(t, err)
}
