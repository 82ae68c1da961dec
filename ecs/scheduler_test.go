package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type Boost struct {
	Amount float32
}

// BoostSystem applies a Boost message to every velocity
type BoostSystem struct {
	Entities ecs.Query[struct{ *Velocity }]
	Seen     int
}

func (s *BoostSystem) Execute(frame *ecs.UpdateFrame) {
	boost, ok := ecs.ReadMessage[Boost](frame)
	if !ok {
		return
	}
	s.Seen++
	for item := range s.Entities.Values() {
		item.Velocity.DX += boost.Amount
	}
}

type orderRecorder struct {
	name  string
	order *[]string
}

func (s *orderRecorder) Execute(frame *ecs.UpdateFrame) {
	*s.order = append(*s.order, s.name)
}

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("system execution order", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		var order []string
		scheduler.Register(&orderRecorder{name: "keyboard", order: &order})
		scheduler.Register(&orderRecorder{name: "physics", order: &order})
		scheduler.Register(&orderRecorder{name: "animator", order: &order})

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, []string{"keyboard", "physics", "animator", "keyboard", "physics", "animator"}, order)
		assert.Equal(t, uint64(2), scheduler.Ticks())
	})

	t.Run("query initialization and execution", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(1.0)

		assert.Equal(t, 1, movement.ExecuteCount)
		assert.Equal(t, 1, health.ExecuteCount)
		assert.Equal(t, 100.0, health.TotalHealth)
	})

	t.Run("custom state persistence", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Health{Current: 50, Max: 100})
		storage.Spawn(Health{Current: 75, Max: 100})

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)
		assert.Equal(t, 125.0, health.TotalHealth)

		storage.Spawn(Health{Current: 25, Max: 100})

		scheduler.Once(1.0)
		assert.Equal(t, 150.0, health.TotalHealth)
	})

	t.Run("later systems see earlier writes in the same tick", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 0, DY: 0})

		scheduler.Register(&BoostSystem{})
		scheduler.Register(&MovementSystem{})

		scheduler.Once(1.0, Boost{Amount: 3})

		assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
	})

	t.Run("messages last exactly one tick", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		id := storage.Spawn(Velocity{})
		boost := &BoostSystem{}
		scheduler.Register(boost)

		scheduler.Once(1.0, Boost{Amount: 1})
		scheduler.Once(1.0)
		scheduler.Once(1.0, Boost{Amount: 1}, Boost{Amount: 5})

		assert.Equal(t, 2, boost.Seen)
		assert.Equal(t, float32(6), ecs.ReadComponent[Velocity](storage, id).DX)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})

		scheduler.Register(&MovementSystem{})
		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
	})

	t.Run("commands integration", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		spawnSystem := &testSpawnSystem{}
		scheduler.Register(spawnSystem)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(1.0)
		assert.True(t, spawnSystem.executed)
		assert.Equal(t, 0, movement.Entities.Len(), "spawn is deferred until flush")

		scheduler.Once(1.0)
		assert.Equal(t, 1, movement.Entities.Len())
	})
}
