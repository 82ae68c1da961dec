package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/spritewalk/internal/config"
	"github.com/plus3/spritewalk/internal/game"
	"github.com/plus3/spritewalk/internal/input"
	"github.com/plus3/spritewalk/internal/logging"
	"github.com/plus3/spritewalk/internal/render"
	"github.com/plus3/spritewalk/internal/spritesheet"
)

type options struct {
	configPath string
	headless   bool
	scriptPath string
	ticks      uint64
	snapshot   string
	unpaced    bool
	profile    string
	debugUI    bool
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML config file.")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window, rendering to memory.")
	flag.StringVar(&opts.scriptPath, "script", "", "YAML input script replayed in headless mode.")
	flag.Uint64Var(&opts.ticks, "ticks", 0, "Stop after this many ticks (0 runs until quit).")
	flag.StringVar(&opts.snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.BoolVar(&opts.unpaced, "unpaced", false, "Do not sleep between headless ticks.")
	flag.StringVar(&opts.profile, "profile", "", "Write a cpu or mem profile to the working directory.")
	flag.BoolVar(&opts.debugUI, "debug-ui", false, "Show the ImGui debug overlay.")
	flag.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level.")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "spritewalk: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.debugUI {
		cfg.DebugUI = true
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Log.Validate(); err != nil {
			return err
		}
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profile)
	}

	sheet, err := spritesheet.Load(cfg.Sheet.Path)
	if err != nil {
		log.Error("loading sprite sheet failed", zap.String("path", cfg.Sheet.Path), zap.Error(err))
		return err
	}
	log.Info("sprite sheet loaded",
		zap.String("path", cfg.Sheet.Path),
		zap.Int("width", sheet.Bounds().Dx()),
		zap.Int("height", sheet.Bounds().Dy()),
	)

	loop, err := game.NewLoop(cfg, sheet.Bounds(), log)
	if err != nil {
		log.Error("invalid sprite layout", zap.Error(err))
		return err
	}
	defer loop.LogStats()

	if opts.headless {
		err = runHeadless(opts, cfg, loop, sheet, log)
	} else {
		err = game.RunEbiten(cfg, loop, sheet, log)
	}
	if err != nil {
		log.Error("game loop failed", zap.Uint64("tick", loop.Ticks()), zap.Error(err))
		return err
	}

	log.Info("exiting", zap.Uint64("ticks", loop.Ticks()), zap.Stringer("state", loop.State()))
	return nil
}

func runHeadless(opts options, cfg config.Config, loop *game.Loop, sheet image.Image, log *zap.Logger) error {
	source := input.NewScript(nil)
	if opts.scriptPath != "" {
		script, err := input.LoadScript(opts.scriptPath)
		if err != nil {
			return err
		}
		source = script
	}

	var pacer *game.Pacer
	if !opts.unpaced {
		pacer = game.NewPacer(cfg.TPS)
	}

	ctx, stop := signal.NotifyContext(logging.WithLogger(context.Background(), log), os.Interrupt)
	defer stop()

	canvas := render.NewImageCanvas(cfg.Window.Width, cfg.Window.Height, sheet)
	log.Info("running headless",
		zap.String("script", opts.scriptPath),
		zap.Uint64("max_ticks", opts.ticks),
		zap.Bool("paced", pacer != nil),
	)

	err := game.Run(ctx, loop, source, canvas, pacer, opts.ticks)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	if opts.snapshot != "" && canvas.Frames > 0 {
		if err := canvas.SavePNG(opts.snapshot); err != nil {
			return err
		}
		log.Info("snapshot written", zap.String("path", opts.snapshot))
	}
	return nil
}
