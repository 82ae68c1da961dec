// Package components holds the plain data attached to game entities.
package components

import (
	"image"

	"github.com/plus3/spritewalk/ecs"
)

//go:generate go tool stringer -type=Direction,CommandKind -output=components_string.go

// Direction is one of the four cardinal directions an entity can face.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every Direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four declared directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

type Position struct {
	X, Y int
}

// Velocity is a speed along a single direction. Speed 0 means stationary.
type Velocity struct {
	Speed     int
	Direction Direction
}

// Sprite is a rectangular region of a loaded sprite sheet.
type Sprite struct {
	Sheet  int
	Region image.Rectangle
}

// MovementAnimation holds one frame sequence per direction.
// CurrentFrame is always interpreted modulo the active sequence length.
type MovementAnimation struct {
	CurrentFrame int
	UpFrames     []Sprite
	DownFrames   []Sprite
	LeftFrames   []Sprite
	RightFrames  []Sprite
}

// Sequence returns the frames used while moving in direction d.
func (a *MovementAnimation) Sequence(d Direction) []Sprite {
	switch d {
	case Up:
		return a.UpFrames
	case Down:
		return a.DownFrames
	case Left:
		return a.LeftFrames
	case Right:
		return a.RightFrames
	}
	return nil
}

// KeyboardControlled marks entities that respond to movement commands.
type KeyboardControlled struct{}

type CommandKind int

const (
	CommandStop CommandKind = iota
	CommandMove
)

// MovementCommand is posted to a single tick's update frame.
type MovementCommand struct {
	Kind      CommandKind
	Direction Direction
}

func Move(d Direction) MovementCommand {
	return MovementCommand{Kind: CommandMove, Direction: d}
}

func Stop() MovementCommand {
	return MovementCommand{Kind: CommandStop}
}

// Register adds every component type in this package to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[MovementAnimation](registry)
	ecs.RegisterComponent[KeyboardControlled](registry)
}
