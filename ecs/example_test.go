package ecs_test

import (
	"fmt"

	"github.com/plus3/spritewalk/ecs"
)

type Transform struct {
	X, Y int
}

type Heading struct {
	DX, DY int
}

// Steer is posted to the scheduler once per tick.
type Steer struct {
	DX, DY int
}

type SteeringSystem struct {
	Entities ecs.Query[struct{ *Heading }]
}

func (s *SteeringSystem) Execute(frame *ecs.UpdateFrame) {
	steer, ok := ecs.ReadMessage[Steer](frame)
	if !ok {
		return
	}
	for entity := range s.Entities.Values() {
		entity.Heading.DX, entity.Heading.DY = steer.DX, steer.DY
	}
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*Heading
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Heading.DX
		entity.Transform.Y += entity.Heading.DY
	}
}

// ExampleScheduler shows systems running in registration order, with a
// per-tick message read by the first system and acted on by the second.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Heading](registry)
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Transform{}, Heading{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SteeringSystem{})
	scheduler.Register(&PhysicsSystem{})

	scheduler.Once(1.0, Steer{DX: 10})
	scheduler.Once(1.0)
	scheduler.Once(1.0, Steer{DY: -10})

	pos := ecs.ReadComponent[Transform](storage, id)
	fmt.Printf("position: %d,%d after %d ticks\n", pos.X, pos.Y, scheduler.Ticks())

	// Output:
	// position: 20,-10 after 3 ticks
}

// ExampleView_Values shows a view with an optional field and the entity ID.
func ExampleView_Values() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Heading](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Transform{X: 1, Y: 1}, Heading{DX: 1})
	storage.Spawn(Transform{X: 5, Y: 5})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Transform
		Heading *Heading `ecs:"optional"`
	}](storage)

	for entity := range view.Values() {
		fmt.Printf("entity %d at %d,%d moving=%t\n", entity.Id.Index(), entity.Transform.X, entity.Transform.Y, entity.Heading != nil)
	}

	// Output:
	// entity 0 at 1,1 moving=true
	// entity 1 at 5,5 moving=false
}

type Clock struct {
	Ticks int
}

// ExampleNewSingleton shows state shared outside any entity.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	clock := ecs.NewSingleton(storage, Clock{Ticks: 41})
	clock.Get().Ticks++

	again := ecs.NewSingleton[Clock](storage)
	fmt.Println("ticks:", again.Get().Ticks)

	// Output:
	// ticks: 42
}
