// Package systems holds the per-tick game logic. Systems are registered with
// an ecs.Scheduler and run in the order keyboard, physics, animator.
package systems

import (
	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/internal/components"
)

// PlayerMovementSpeed is the speed, in pixels per tick, given by a Move command.
const PlayerMovementSpeed = 10

// KeyboardSystem applies the tick's MovementCommand to keyboard controlled entities.
type KeyboardSystem struct {
	Controlled ecs.Query[struct {
		*components.KeyboardControlled
		*components.Velocity
	}]
	Speed int
}

func NewKeyboardSystem(speed int) *KeyboardSystem {
	return &KeyboardSystem{Speed: speed}
}

func (s *KeyboardSystem) Execute(frame *ecs.UpdateFrame) {
	cmd, ok := ecs.ReadMessage[components.MovementCommand](frame)
	if !ok {
		return
	}

	for entity := range s.Controlled.Values() {
		switch cmd.Kind {
		case components.CommandMove:
			entity.Velocity.Speed = s.Speed
			entity.Velocity.Direction = cmd.Direction
		case components.CommandStop:
			entity.Velocity.Speed = 0
		}
	}
}

// PhysicsSystem moves entities along their velocity. Screen y grows downward.
type PhysicsSystem struct {
	Bodies ecs.Query[struct {
		*components.Position
		*components.Velocity
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		vel := body.Velocity
		if vel.Speed == 0 {
			continue
		}

		switch vel.Direction {
		case components.Right:
			body.Position.X += vel.Speed
		case components.Left:
			body.Position.X -= vel.Speed
		case components.Down:
			body.Position.Y += vel.Speed
		case components.Up:
			body.Position.Y -= vel.Speed
		}
	}
}

// AnimatorSystem advances the walk cycle of moving entities.
type AnimatorSystem struct {
	Animated ecs.Query[struct {
		*components.MovementAnimation
		*components.Sprite
		*components.Velocity
	}]
}

func (s *AnimatorSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Animated.Values() {
		if entity.Velocity.Speed == 0 {
			continue
		}

		anim := entity.MovementAnimation
		frames := anim.Sequence(entity.Velocity.Direction)
		if len(frames) == 0 {
			continue
		}

		anim.CurrentFrame = (anim.CurrentFrame + 1) % len(frames)
		*entity.Sprite = frames[anim.CurrentFrame]
	}
}

// Register adds the game systems to scheduler in their required order.
func Register(scheduler *ecs.Scheduler, speed int) {
	scheduler.Register(NewKeyboardSystem(speed))
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&AnimatorSystem{})
}
