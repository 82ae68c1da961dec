package ecs_test

import (
	"testing"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	full := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	partial := storage.Spawn(Position{X: 5, Y: 6})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(3), item.Velocity.DX)

	assert.Nil(t, view.Get(partial), "missing required component")

	storage.Delete(full)
	assert.Nil(t, view.Get(full), "deleted entity")
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}

	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withHealth := storage.Spawn(Position{X: 1}, Health{Current: 10, Max: 10})
	without := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	item := view.Get(withHealth)
	require.NotNil(t, item)
	require.NotNil(t, item.Health)
	assert.Equal(t, 10, item.Health.Current)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Health)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewOptionalOnlyMatchesAllEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Name{Value: "a"})

	view := ecs.NewView[struct {
		Name *Name `ecs:"optional"`
	}](storage)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Velocity{})
	b := storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		*Velocity
	}](storage)

	var ids []ecs.EntityId
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.Id)
		ids = append(ids, item.Id)
	}
	assert.ElementsMatch(t, []ecs.EntityId{a, b}, ids)
}

func TestViewIterUnknownComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{})

	// No Velocity has ever been spawned, so the column does not exist
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for range view.Iter() {
		t.Fatal("expected no matches")
	}
}

func TestViewMarkerComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	player := storage.Spawn(Position{X: 1}, PlayerController{})
	storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		*PlayerController
	}](storage)

	var matched []ecs.EntityId
	for item := range view.Values() {
		matched = append(matched, item.Id)
	}
	assert.Equal(t, []ecs.EntityId{player}, matched)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Health *Health `ecs:"optional"`
	}{Position: &Position{X: 9}})

	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Health *Health `ecs:"optional"`
		}{})
	})
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}
