package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/config"
	"github.com/Carmen-Shannon/oxy-viewport/demos"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/rs/zerolog"
)

// bindShortcuts wires the viewport keys:
//
//	Esc  close the window
//	F11  toggle fullscreen
//	P    toggle the profiler
//	H    log the debug panel
//	S    save the debug panel to the preset file
func bindShortcuts(eng engine.Engine, inst *demos.Instance, cfg config.Config, logger zerolog.Logger) {
	profiling := cfg.Profiling
	eng.Window().AddKeyDownListener(func(key common.Key) {
		switch key {
		case common.KeyEsc:
			eng.Post(eng.Window().RequestClose)
		case common.KeyF11:
			eng.Post(func() {
				var err error
				if eng.Window().IsFullscreen() {
					err = eng.Window().ExitFullscreen()
				} else {
					err = eng.Window().RequestFullscreen()
				}
				if err != nil {
					logger.Warn().Err(err).Msg("fullscreen toggle failed")
				}
			})
		case common.KeyP:
			eng.Post(func() {
				profiling = !profiling
				if profiling {
					eng.EnableProfiler()
				} else {
					eng.DisableProfiler()
				}
				logger.Info().Bool("profiling", profiling).Msg("profiler toggled")
			})
		case common.KeyH:
			if inst.GUI == nil {
				return
			}
			eng.Post(func() {
				for _, line := range inst.GUI.Describe() {
					logger.Info().Str("panel", inst.GUI.Name()).Msg(line)
				}
			})
		case common.KeyS:
			if inst.GUI == nil || cfg.Preset == "" {
				return
			}
			eng.Post(func() {
				if err := savePreset(inst, cfg.Preset); err != nil {
					logger.Error().Err(err).Msg("preset not saved")
					return
				}
				logger.Info().Str("path", cfg.Preset).Msg("preset saved")
			})
		}
	})
}

// loadPreset applies a saved panel preset. A missing file is not an error: S creates it.
func loadPreset(inst *demos.Instance, path string, logger zerolog.Logger) error {
	if inst.GUI == nil || path == "" {
		return nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("no preset yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()
	if err := inst.GUI.LoadPreset(f); err != nil {
		return fmt.Errorf("failed to load preset %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("preset loaded")
	return nil
}

func savePreset(inst *demos.Instance, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := inst.GUI.SavePreset(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
