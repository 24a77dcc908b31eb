package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/1broseidon/cubeclock/internal/clock"
	"github.com/1broseidon/cubeclock/internal/config"
	"github.com/1broseidon/cubeclock/internal/gl"
	"github.com/1broseidon/cubeclock/internal/glxwindow"
	"github.com/1broseidon/cubeclock/internal/idle"
	"github.com/1broseidon/cubeclock/internal/platform"
	"github.com/1broseidon/cubeclock/internal/runtimepath"
)

const (
	windowedWidth  = 800
	windowedHeight = 600
)

var runOpts struct {
	windowed bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the clock",
	Long: `Start the clock. Full screen by default; --windowed opens a normal
window of the configured size (800x600 when unset).`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClock(runOpts.windowed)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runOpts.windowed, "windowed", false,
		"Run in a window instead of full screen")
	rootCmd.AddCommand(runCmd)
}

func runClock(windowed bool) error {
	res, path, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := res.Config
	if windowed {
		cfg.Fullscreen = false
		if cfg.Width == 0 {
			cfg.Width, cfg.Height = windowedWidth, windowedHeight
		}
	}
	logger := setupLogger(cfg.LogLevel)
	logger.Debug("config loaded", "path", path, "files", len(res.Files))

	lock, err := acquireInstanceLock(logger)
	if err != nil {
		return err
	}
	defer lock.Release()

	face, err := clock.LoadFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return err
	}
	glyphs, err := clock.RasterizeDigits(face)
	face.Close()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flame := clock.NewFlameWorker(clock.NewFlame(cfg.Flame.Width, cfg.Flame.Height, nil), cfg.Flame.Interval.D())
	go flame.Run(ctx)

	backend := platform.NewLinuxBackend(cfg.Display, logger)
	scene := clock.NewScene(gl.NewEncoder(backend), glyphs, flame, clock.Options{
		FontSize:      cfg.FontSize,
		RotationSpeed: cfg.RotationSpeed,
		Logger:        logger,
	})

	opts := glxwindow.Options{
		Width:   uint32(cfg.Width),
		Height:  uint32(cfg.Height),
		Caption: cfg.Caption,
		Redraw:  scene.Redraw,
		Logger:  logger,
	}
	if cfg.ExitOnInput {
		opts.Events = scene.Events
	}
	win, err := glxwindow.Create(backend, opts)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Destroy()

	if cfg.HideCursor {
		if err := win.HideCursor(); err != nil {
			logger.Warn("failed to hide cursor", "error", err)
		}
		defer win.ShowCursor()
	}
	if cfg.Fullscreen {
		if err := win.EnterFullscreenPopup(); err != nil {
			logger.Warn("failed to enter fullscreen", "error", err)
		}
	}

	if cfg.InhibitIdle {
		releaseIdle := inhibitIdle(logger)
		defer releaseIdle()
	}

	var reloads <-chan *config.LoadResult
	if watcher, err := config.NewWatcher(path, logger); err != nil {
		logger.Warn("config reload disabled", "error", err)
	} else {
		go watcher.Run(ctx)
		reloads = watcher.Updates()
	}

	go func() {
		<-ctx.Done()
		scene.Stop()
	}()

	start := time.Now()
	frames := loop(win, scene, reloads, cfg.FrameInterval.D(), logger)

	elapsed := time.Since(start)
	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}
	logger.Info("clock stopped",
		"frames", humanize.Comma(frames),
		"uptime", elapsed.Round(time.Second),
		"fps", humanize.FormatFloat("#,###.#", fps),
	)
	return scene.Err()
}

// loop ticks the window until the scene stops or the window closes. Reloaded
// config applies the settings that are safe to change on a live window.
func loop(win *glxwindow.Window, scene *clock.Scene, reloads <-chan *config.LoadResult, interval time.Duration, logger *slog.Logger) int64 {
	var frames int64
	for scene.Running() {
		select {
		case res := <-reloads:
			scene.SetRotationSpeed(res.Config.RotationSpeed)
			interval = res.Config.FrameInterval.D()
			logger.Info("config reloaded",
				"rotation_speed", res.Config.RotationSpeed,
				"frame_interval", res.Config.FrameInterval)
		default:
		}

		if err := win.Update(); err != nil {
			if !errors.Is(err, glxwindow.ErrWindowClosed) {
				logger.Error("update failed", "error", err)
			}
			break
		}
		frames++
		time.Sleep(interval)
	}
	return frames
}

func inhibitIdle(logger *slog.Logger) func() {
	inh, err := idle.Connect(logger)
	if err != nil {
		logger.Warn("idle inhibit unavailable", "error", err)
		return func() {}
	}
	if err := inh.Inhibit("cubeclock", "clock on screen"); err != nil {
		logger.Warn("idle inhibit failed", "error", err)
		return func() {}
	}
	return func() {
		if err := inh.Release(); err != nil {
			logger.Warn("idle release failed", "error", err)
		}
	}
}

// acquireInstanceLock refuses to start a second clock. Other lock failures are
// logged and the clock runs unguarded.
func acquireInstanceLock(logger *slog.Logger) (*runtimepath.InstanceLock, error) {
	path, err := runtimepath.LockPath()
	if err != nil {
		logger.Warn("instance lock unavailable", "error", err)
		return nil, nil
	}
	lock, err := runtimepath.Lock(path)
	if errors.Is(err, runtimepath.ErrAlreadyRunning) {
		return nil, err
	}
	if err != nil {
		logger.Warn("instance lock unavailable", "error", err)
		return nil, nil
	}
	logger.Debug("instance lock held", "path", path)
	return lock, nil
}
