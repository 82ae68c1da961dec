package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/internal/config"
	"github.com/plus3/spritewalk/internal/game"
	"github.com/plus3/spritewalk/internal/logging"
	"github.com/plus3/spritewalk/internal/render"
	"github.com/plus3/spritewalk/internal/spritesheet"
	"github.com/plus3/spritewalk/internal/systems"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	walkers := flag.Int("walkers", 1000, "Keyboard controlled walkers sharing each tick's command.")
	wanderers := flag.Int("wanderers", 10000, "Entities moving on their own, outside keyboard control.")
	commandPct := flag.Int("command-pct", 20, "Percentage of ticks that carry a random movement command.")
	renderFrames := flag.Bool("render", false, "Render every tick to a software canvas.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := logging.New(logging.DevelopmentConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	stopProfile, err := startProfile(*profileMode)
	if err != nil {
		log.Fatal("invalid flag", zap.Error(err))
	}
	defer stopProfile()

	log.Info("starting stress test")

	// 1. Setup Registry, Storage, and Scheduler
	cfg := config.Default()
	layout := cfg.Layout()
	storage := ecs.NewStorage(game.NewRegistry())
	scheduler := ecs.NewScheduler(storage)
	systems.Register(scheduler, cfg.Player.Speed)
	renderer := render.NewRenderer(storage)

	sheet, err := spritesheet.Load("")
	if err != nil {
		log.Fatal("loading sprite sheet failed", zap.Error(err))
	}
	canvas := render.NewImageCanvas(cfg.Window.Width, cfg.Window.Height, sheet)

	// 2. Populate Storage
	log.Info("populating storage", zap.Int("walkers", *walkers), zap.Int("wanderers", *wanderers))
	for i := 0; i < *walkers; i++ {
		player := cfg.Player
		player.X = rand.IntN(cfg.Window.Width) - cfg.Window.Width/2
		player.Y = rand.IntN(cfg.Window.Height) - cfg.Window.Height/2
		game.SpawnPlayer(storage, player, layout)
	}
	for i := 0; i < *wanderers; i++ {
		SpawnWanderer(storage, layout, cfg.Window.Width, cfg.Window.Height)
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Walkers:        *walkers,
		Wanderers:      *wanderers,
		CommandPct:     *commandPct,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			tick := scheduler.Ticks()

			updateStart := time.Now()
			if cmd, ok := RandomCommand(*commandPct); ok {
				scheduler.Once(1.0/60.0, cmd)
			} else {
				scheduler.Once(1.0 / 60.0)
			}
			report.UpdateTime.Add(time.Since(updateStart))

			if *renderFrames {
				renderStart := time.Now()
				if err := renderer.Draw(canvas, render.BackgroundColor(tick)); err != nil {
					log.Fatal("render failed", zap.Uint64("tick", tick), zap.Error(err))
				}
				report.RenderTime.Add(time.Since(renderStart))
			}
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.RenderTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	report.Storage = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
