package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/profile"

	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/internal/components"
	"github.com/plus3/spritewalk/internal/spritesheet"
)

// SpawnWanderer adds an animated entity with a random heading that ignores
// keyboard commands, so physics and animation run over more than the walkers.
func SpawnWanderer(storage *ecs.Storage, layout spritesheet.Layout, width, height int) ecs.EntityId {
	dir := components.Directions[rand.IntN(len(components.Directions))]
	anim := layout.Animation(0)

	return storage.Spawn(
		components.Position{X: rand.IntN(width) - width/2, Y: rand.IntN(height) - height/2},
		components.Velocity{Speed: rand.IntN(4), Direction: dir},
		anim.Sequence(dir)[0],
		anim,
	)
}

// RandomCommand returns a movement command on roughly pct percent of calls.
func RandomCommand(pct int) (components.MovementCommand, bool) {
	if rand.IntN(100) >= pct {
		return components.MovementCommand{}, false
	}
	if rand.IntN(4) == 0 {
		return components.Stop(), true
	}
	return components.Move(components.Directions[rand.IntN(len(components.Directions))]), true
}

// startProfile starts a cpu or mem profile; an empty mode profiles nothing.
func startProfile(mode string) (stop func(), err error) {
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop, nil
	}
	return nil, fmt.Errorf("unknown profile mode %q", mode)
}
