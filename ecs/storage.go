package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage is the entity/component store. It owns every component value;
// systems borrow pointers into it for the duration of one update.
type Storage struct {
	registry   *ComponentRegistry
	slots      []entitySlot
	free       []uint32
	alive      int
	columns    map[reflect.Type]componentColumn
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]componentColumn),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	cols := make([]componentColumn, len(types))
	for i, typ := range types {
		cols[i] = s.column(typ, true)
	}

	id := s.allocate()
	for i, comp := range components {
		cols[i].Insert(id.Index(), comp)
	}
	return id
}

func (s *Storage) allocate() EntityId {
	s.alive++
	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[index].alive = true
		return NewEntityId(s.slots[index].generation, index)
	}

	index := uint32(len(s.slots))
	s.slots = append(s.slots, entitySlot{generation: 1, alive: true})
	return NewEntityId(1, index)
}

// Alive reports whether id refers to an entity that has not been deleted
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(s.slots) {
		return false
	}
	slot := s.slots[index]
	return slot.alive && slot.generation == id.Generation()
}

// EntityCount returns the number of live entities
func (s *Storage) EntityCount() int {
	return s.alive
}

// Delete removes all data related to the entity ID.
// Deleting a stale or unknown ID is a no-op.
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}

	index := id.Index()
	for _, col := range s.columns {
		col.Remove(index)
	}

	slot := &s.slots[index]
	slot.alive = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	s.free = append(s.free, index)
	s.alive--
}

// AddComponent attaches (or replaces) a component on a live entity.
// Entity IDs are stable, so the returned ID equals id; it is 0 if id is not alive.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	if !s.Alive(id) {
		return 0
	}
	compType := componentType(component)
	s.column(compType, true).Insert(id.Index(), component)
	return id
}

// RemoveComponent detaches a component. An entity left without components
// is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	if !s.Alive(id) {
		return 0
	}

	if col := s.columns[compType]; col != nil {
		col.Remove(id.Index())
	}

	for _, col := range s.columns {
		if col.Has(id.Index()) {
			return id
		}
	}

	s.Delete(id)
	return 0
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	col := s.columns[compType]
	if col == nil {
		return nil
	}
	return col.Get(id.Index())
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	col := s.columns[compType]
	return col != nil && col.Has(id.Index())
}

// ComponentTypes returns the types attached to an entity, sorted by name
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}

	var types []reflect.Type
	for typ, col := range s.columns {
		if col.Has(id.Index()) {
			types = append(types, typ)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// column returns the column for typ, creating it from the registry when create is set
func (s *Storage) column(typ reflect.Type, create bool) componentColumn {
	if col, ok := s.columns[typ]; ok {
		return col
	}
	if !create {
		return nil
	}

	factory := s.registry.getFactory(typ)
	if factory == nil {
		panic("component type " + typ.String() + " not registered")
	}
	col := factory()
	s.columns[typ] = col
	return col
}

// idAt builds the current EntityId for a live slot index
func (s *Storage) idAt(index uint32) EntityId {
	return NewEntityId(s.slots[index].generation, index)
}

// AddSingleton stores a component that is not attached to any entity.
// Adding a singleton of a type that already exists overwrites its value in place.
func (s *Storage) AddSingleton(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if entry, ok := s.singletons[val.Type()]; ok {
		entry.value.Elem().Set(val)
		return
	}

	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	s.singletons[val.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton fills target, which must be a **T, with a pointer to the
// singleton of type T. Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(val.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	val.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the value type of a component, unwrapping one pointer level
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}

	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// but not pointers, maps, channels, or functions
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// extractComponentTypes resolves the component type of every spawn argument, in order
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}
	return types
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
