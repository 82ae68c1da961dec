// Package game wires storage, systems, input and rendering into the main loop.
package game

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/ecs/debugui"
	"github.com/plus3/spritewalk/internal/components"
	"github.com/plus3/spritewalk/internal/config"
	"github.com/plus3/spritewalk/internal/input"
	"github.com/plus3/spritewalk/internal/render"
	"github.com/plus3/spritewalk/internal/spritesheet"
	"github.com/plus3/spritewalk/internal/systems"
)

//go:generate go tool stringer -type=State -output=state_string.go

type State int

const (
	Running State = iota
	Terminated
)

// PlayerSheet is the sheet index of the player's sprite sheet.
const PlayerSheet = 0

// Loop owns the game world and advances it one tick per Step.
type Loop struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	renderer  *render.Renderer
	player    ecs.EntityId
	state     State
	dt        float64
	frameTick uint64
	log       *zap.Logger
}

func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	components.Register(registry)
	debugui.RegisterDebugUIComponents(registry)
	return registry
}

// SpawnPlayer creates the keyboard controlled player, standing still and
// showing the first frame of its facing direction.
func SpawnPlayer(storage *ecs.Storage, player config.PlayerConfig, layout spritesheet.Layout) ecs.EntityId {
	anim := layout.Animation(PlayerSheet)
	return storage.Spawn(
		components.Position{X: player.X, Y: player.Y},
		components.Velocity{Speed: 0, Direction: player.Direction},
		anim.Sequence(player.Direction)[0],
		anim,
		components.KeyboardControlled{},
	)
}

// NewLoop validates the sprite layout against the loaded sheet, spawns the
// player and registers the systems.
func NewLoop(cfg config.Config, sheetBounds image.Rectangle, log *zap.Logger) (*Loop, error) {
	layout := cfg.Layout()
	if err := layout.Validate(sheetBounds); err != nil {
		return nil, fmt.Errorf("sprite sheet: %w", err)
	}

	storage := ecs.NewStorage(NewRegistry())
	scheduler := ecs.NewScheduler(storage)
	systems.Register(scheduler, cfg.Player.Speed)

	l := &Loop{
		storage:   storage,
		scheduler: scheduler,
		renderer:  render.NewRenderer(storage),
		player:    SpawnPlayer(storage, cfg.Player, layout),
		state:     Running,
		dt:        1.0 / float64(cfg.TPS),
		log:       log,
	}

	log.Info("player spawned",
		zap.Uint32("entity", l.player.Index()),
		zap.Int("x", cfg.Player.X),
		zap.Int("y", cfg.Player.Y),
		zap.Stringer("direction", cfg.Player.Direction),
	)
	return l, nil
}

func (l *Loop) State() State {
	return l.state
}

func (l *Loop) Storage() *ecs.Storage {
	return l.storage
}

func (l *Loop) Scheduler() *ecs.Scheduler {
	return l.scheduler
}

func (l *Loop) Player() ecs.EntityId {
	return l.player
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.scheduler.Ticks()
}

// Step consumes one poll's events and runs every system once.
// A quit request terminates the loop before any system runs.
func (l *Loop) Step(events []input.Event) State {
	if l.state == Terminated {
		return l.state
	}

	cmd, ok, quit := input.Translate(events)
	if quit {
		l.state = Terminated
		l.log.Info("quit requested", zap.Uint64("tick", l.scheduler.Ticks()))
		return l.state
	}

	l.frameTick = l.scheduler.Ticks()
	if ok {
		l.log.Debug("movement command",
			zap.Uint64("tick", l.frameTick),
			zap.Stringer("kind", cmd.Kind),
			zap.Stringer("direction", cmd.Direction),
		)
		l.scheduler.Once(l.dt, cmd)
	} else {
		l.scheduler.Once(l.dt)
	}
	return l.state
}

// Render draws the most recent tick.
func (l *Loop) Render(canvas render.Canvas) error {
	if err := l.renderer.Draw(canvas, render.BackgroundColor(l.frameTick)); err != nil {
		return fmt.Errorf("render tick %d: %w", l.frameTick, err)
	}
	return nil
}

// EnableDebugUI registers the ImGui system and spawns the debug windows.
// It must run after the game systems so the overlay reflects the current tick.
func (l *Loop) EnableDebugUI() {
	ecs.NewSingleton[debugui.ImguiInputState](l.storage)
	l.scheduler.Register(&debugui.ImguiSystem{})
	debugui.SpawnDebugUI(l.storage, l.scheduler, l.player)
}

// LogStats writes per-system timings at info level.
func (l *Loop) LogStats() {
	stats := l.scheduler.GetStats()
	for _, sys := range stats.Systems {
		l.log.Info("system stats",
			zap.String("system", sys.Name),
			zap.Int64("runs", sys.ExecutionCount),
			zap.Duration("avg", sys.AvgDuration),
			zap.Duration("max", sys.MaxDuration),
		)
	}
}
