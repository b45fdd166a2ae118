// Command viewport runs one of the demos in a desktop window, or headless for a fixed number of
// frames, optionally capturing the last frame as WebP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-viewport/config"
	"github.com/Carmen-Shannon/oxy-viewport/demos"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/clock"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/wgpu_backend"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window/glfw_window"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GLFW and the WebGPU surface must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "viewport.toml", "path to the TOML config file")
		demo       = flag.String("demo", "", "demo to run: "+strings.Join(demos.Names(), ", "))
		width      = flag.Int("width", 0, "viewport width")
		height     = flag.Int("height", 0, "viewport height")
		fps        = flag.Int("fps", 0, "target frames per second")
		headless   = flag.Bool("headless", false, "render without a window")
		frames     = flag.Int("frames", 0, "stop after this many frames (headless default 120)")
		assets     = flag.String("assets", "", "directory textures are loaded from")
		capture    = flag.String("capture", "", "write the last frame to this .webp file")
		preset     = flag.String("preset", "", "GUI preset file loaded at start and saved with S")
		workers    = flag.Int("workers", 0, "rasterizer and loader workers")
		profiling  = flag.Bool("profile", false, "log frame rate and memory")
		logLevel   = flag.String("log-level", "", "trace, debug, info, warn or error")
		list       = flag.Bool("list", false, "list demos and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *list {
		for _, d := range demos.All() {
			fmt.Printf("%-16s %s\n", d.Name, d.Description)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		log.Debug().Str("path", *configPath).Msg("no config file; using flags")
	}
	err = cfg.Resolve(config.Flags{
		Demo:      *demo,
		Width:     *width,
		Height:    *height,
		FPS:       *fps,
		Headless:  *headless,
		Frames:    *frames,
		Assets:    *assets,
		Capture:   *capture,
		Preset:    *preset,
		Workers:   *workers,
		Profiling: *profiling,
		LogLevel:  *logLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Str("demo", cfg.Demo).Msg("viewport failed")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := log.Logger.With().Str("demo", cfg.Demo).Logger()

	engineOptions := []engine.EngineBuilderOption{
		engine.WithSize(cfg.Width, cfg.Height),
		engine.WithTickRate(float64(cfg.FPS)),
		engine.WithProfiling(cfg.Profiling),
		engine.WithLogger(logger),
	}
	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithWorkers(cfg.Workers),
		renderer.WithMaxPixelRatio(cfg.MaxPixelRatio),
	}

	// Headless runs use virtual time advanced one frame per step, so output does not depend on
	// host speed.
	virtual := time.Unix(0, 0)
	frameTime := time.Second / time.Duration(cfg.FPS)

	var win window.Window
	if cfg.Headless {
		win = window.NewHeadlessWindow(window.WithTitle(cfg.Title), window.WithSize(cfg.Width, cfg.Height))

		scheduler := engine.NewManualScheduler()
		scheduler.Release(cfg.Frames)
		scheduler.Close()
		engineOptions = append(engineOptions,
			engine.WithScheduler(scheduler),
			engine.WithClock(clock.NewClock(clock.WithNow(func() time.Time { return virtual }))),
		)
	} else {
		gw, err := glfw_window.NewWindow(window.WithTitle(cfg.Title), window.WithSize(cfg.Width, cfg.Height))
		if err != nil {
			return err
		}
		win = gw
		backend, err := wgpu_backend.NewWGPUBackend(gw.SurfaceDescriptor())
		if err != nil {
			_ = gw.Close()
			return fmt.Errorf("failed to create WebGPU backend: %w", err)
		}
		rendererOptions = append(rendererOptions, renderer.WithBackend(backend))
	}
	defer win.Close()

	engineOptions = append(engineOptions,
		engine.WithWindow(win),
		engine.WithRendererOptions(append(rendererOptions, renderer.WithLogger(logger))...),
	)
	eng, err := engine.NewEngine(engineOptions...)
	if err != nil {
		return err
	}
	defer eng.Renderer().Release()

	inst, err := demos.Start(cfg.Demo, eng, demos.Env{
		Context: ctx,
		Assets:  cfg.Assets,
		Workers: cfg.Workers,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if err := loadPreset(inst, cfg.Preset, logger); err != nil {
		return err
	}
	if cfg.Headless {
		eng.OnFrame(func(dt, elapsed float32) { virtual = virtual.Add(frameTime) })
	}
	if !cfg.Headless && cfg.Frames > 0 {
		limit := uint64(cfg.Frames)
		eng.OnFrame(func(dt, elapsed float32) {
			if eng.Frames()+1 >= limit {
				eng.Stop()
			}
		})
	}
	bindShortcuts(eng, inst, cfg, logger)

	runErr := eng.Run(ctx)
	if cfg.Capture != "" {
		if err := captureFrame(eng.Renderer(), cfg.Capture); err != nil {
			return errors.Join(runErr, err)
		}
		logger.Info().Str("path", cfg.Capture).Uint64("frames", eng.Frames()).Msg("frame captured")
	}
	return runErr
}

func captureFrame(r renderer.Renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %w", err)
	}
	defer f.Close()
	if err := r.CaptureWebP(f); err != nil {
		return fmt.Errorf("failed to capture frame: %w", err)
	}
	return nil
}
