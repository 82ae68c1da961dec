package components

import (
	"testing"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "Down", "LEFT", "right"} {
		d, err := ParseDirection(name)
		require.NoError(t, err, name)
		assert.True(t, d.Valid())
	}

	_, err := ParseDirection("north")
	assert.Error(t, err)
}

func TestDirectionTextRoundTrip(t *testing.T) {
	for _, d := range Directions {
		text, err := d.MarshalText()
		require.NoError(t, err)

		var back Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}

	_, err := Direction(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Direction(7)", Direction(7).String())
}

func TestSequence(t *testing.T) {
	anim := MovementAnimation{
		UpFrames:    []Sprite{{Sheet: 1}},
		DownFrames:  []Sprite{{Sheet: 2}},
		LeftFrames:  []Sprite{{Sheet: 3}},
		RightFrames: []Sprite{{Sheet: 4}},
	}

	assert.Equal(t, 1, anim.Sequence(Up)[0].Sheet)
	assert.Equal(t, 2, anim.Sequence(Down)[0].Sheet)
	assert.Equal(t, 3, anim.Sequence(Left)[0].Sheet)
	assert.Equal(t, 4, anim.Sequence(Right)[0].Sheet)
	assert.Nil(t, anim.Sequence(Direction(-1)))
}

func TestCommands(t *testing.T) {
	assert.Equal(t, MovementCommand{Kind: CommandMove, Direction: Left}, Move(Left))
	assert.Equal(t, CommandStop, Stop().Kind)
	assert.Equal(t, "CommandMove", CommandMove.String())
}

func TestRegister(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	Register(registry)
	storage := ecs.NewStorage(registry)

	assert.NotPanics(t, func() {
		storage.Spawn(Position{}, Velocity{}, Sprite{}, MovementAnimation{}, KeyboardControlled{})
	})
}
