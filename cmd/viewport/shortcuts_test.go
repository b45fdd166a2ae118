package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/config"
	"github.com/Carmen-Shannon/oxy-viewport/demos"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/gui"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startGUIDemo(t *testing.T) (engine.Engine, window.HeadlessWindow, *demos.Instance) {
	t.Helper()
	win := window.NewHeadlessWindow(window.WithSize(64, 48))
	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScheduler(engine.NewManualScheduler()),
		engine.WithRendererOptions(renderer.WithWorkers(1)),
	)
	require.NoError(t, err)
	inst, err := demos.Start("gui", eng, demos.Env{Workers: 1, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return eng, win, inst
}

func TestPresetSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gui.toml")
	eng, win, inst := startGUIDemo(t)
	bindShortcuts(eng, inst, config.Config{Preset: path}, zerolog.Nop())

	inst.GUI.Find("move x").(gui.NumberController).SetValue(3.5)
	win.EmitKeyDown(common.KeyS)
	require.NoError(t, eng.Step(0))
	require.FileExists(t, path)

	_, _, fresh := startGUIDemo(t)
	require.NoError(t, loadPreset(fresh, path, zerolog.Nop()))
	assert.Equal(t, float32(3.5), fresh.Objects["cube"].Position()[0])
}

func TestLoadPresetMissingFile(t *testing.T) {
	_, _, inst := startGUIDemo(t)
	assert.NoError(t, loadPreset(inst, filepath.Join(t.TempDir(), "none.toml"), zerolog.Nop()))
}

func TestShortcuts(t *testing.T) {
	eng, win, inst := startGUIDemo(t)
	bindShortcuts(eng, inst, config.Config{}, zerolog.Nop())

	win.EmitKeyDown(common.KeyF11)
	require.NoError(t, eng.Step(0))
	assert.True(t, win.IsFullscreen())

	frames := eng.Frames()
	win.EmitKeyDown(common.KeyEsc)
	require.NoError(t, eng.Step(0))
	assert.False(t, win.IsRunning())
	assert.Equal(t, frames+1, eng.Frames(), "the frame after Esc still renders")
	assert.NoError(t, win.Close(), "Esc leaves releasing the window to its owner")
}

func TestCaptureFrame(t *testing.T) {
	eng, _, _ := startGUIDemo(t)
	path := filepath.Join(t.TempDir(), "frame.webp")
	assert.ErrorIs(t, captureFrame(eng.Renderer(), path), renderer.ErrNoFrame)

	require.NoError(t, eng.Step(1.0/60))
	require.NoError(t, captureFrame(eng.Renderer(), path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
}
