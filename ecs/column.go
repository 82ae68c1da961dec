package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentColumn {
		return newColumn[T](t)
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

// componentColumn is the type-erased view of a column[T].
type componentColumn interface {
	Type() reflect.Type
	Insert(entity uint32, item any) bool
	Remove(entity uint32)
	Has(entity uint32) bool
	Get(entity uint32) any
	Pointer(entity uint32) unsafe.Pointer
	Len() int
	Entities() []uint32
}

const columnBlockSize = 64

// column is a sparse set holding every component of one type.
// Values are packed densely in fixed-size blocks so pointers handed out
// stay valid while the column grows; they are invalidated by Remove, which
// moves the last value into the freed slot.
type column[T any] struct {
	typ    reflect.Type
	blocks []*[columnBlockSize]T
	owners []uint32
	sparse *intmap.Map[uint32, int]
}

func newColumn[T any](t reflect.Type) *column[T] {
	return &column[T]{
		typ:    t,
		sparse: intmap.New[uint32, int](64),
	}
}

func (c *column[T]) at(slot int) *T {
	return &c.blocks[slot/columnBlockSize][slot%columnBlockSize]
}

func (c *column[T]) Type() reflect.Type {
	return c.typ
}

// Insert stores item for the entity, overwriting any previous value.
// Returns false if item is neither a T nor a *T.
func (c *column[T]) Insert(entity uint32, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	if slot, ok := c.sparse.Get(entity); ok {
		*c.at(slot) = value
		return true
	}

	slot := len(c.owners)
	if slot/columnBlockSize >= len(c.blocks) {
		c.blocks = append(c.blocks, new([columnBlockSize]T))
	}
	*c.at(slot) = value
	c.owners = append(c.owners, entity)
	c.sparse.Put(entity, slot)
	return true
}

func (c *column[T]) Remove(entity uint32) {
	slot, ok := c.sparse.Get(entity)
	if !ok {
		return
	}

	last := len(c.owners) - 1
	if slot != last {
		moved := c.owners[last]
		*c.at(slot) = *c.at(last)
		c.owners[slot] = moved
		c.sparse.Put(moved, slot)
	}

	var zero T
	*c.at(last) = zero
	c.owners = c.owners[:last]
	c.sparse.Del(entity)
}

func (c *column[T]) Has(entity uint32) bool {
	return c.sparse.Has(entity)
}

// Get returns a *T for the entity, or nil.
func (c *column[T]) Get(entity uint32) any {
	slot, ok := c.sparse.Get(entity)
	if !ok {
		return nil
	}
	return c.at(slot)
}

func (c *column[T]) Pointer(entity uint32) unsafe.Pointer {
	slot, ok := c.sparse.Get(entity)
	if !ok {
		return nil
	}
	return unsafe.Pointer(c.at(slot))
}

func (c *column[T]) Len() int {
	return len(c.owners)
}

// Entities returns the slot indices of the entities in dense order.
// The slice is owned by the column and must not be modified.
func (c *column[T]) Entities() []uint32 {
	return c.owners
}
