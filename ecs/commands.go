package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The Scheduler
// flushes it once every system of the tick has executed, so queries never
// observe a half-applied change.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []componentChange
	removes []componentChange
	defers  []func()
}

type componentChange struct {
	entity    EntityId
	component any
	compType  reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run after the structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, componentChange{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, componentChange{entity: entity, compType: compType})
}

// Flush applies deletes, removals, additions and spawns in that order, then
// runs deferred functions, and resets the buffer. Changes aimed at an entity
// deleted in the same flush are dropped because its ID is no longer alive.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.removes {
		storage.RemoveComponent(cmd.entity, cmd.compType)
	}

	for _, cmd := range c.adds {
		storage.AddComponent(cmd.entity, cmd.component)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
