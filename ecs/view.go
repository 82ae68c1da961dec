package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
// A field of type EntityId is filled with the ID of the matched entity.
type View[T any] struct {
	storage *Storage
	fields  []viewField

	hasId    bool
	idOffset uintptr
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return v
}

// columns resolves the column of every field. ok is false when a required
// component has no column yet, meaning no entity can match.
func (v *View[T]) columns() (cols []componentColumn, ok bool) {
	cols = make([]componentColumn, len(v.fields))
	for i, f := range v.fields {
		cols[i] = v.storage.column(f.typ, false)
		if cols[i] == nil && !f.optional {
			return nil, false
		}
	}
	return cols, true
}

// driver picks the smallest required column to iterate. nil means the view
// has no required components and every live entity is a candidate.
func (v *View[T]) driver(cols []componentColumn) componentColumn {
	var best componentColumn
	for i, f := range v.fields {
		if f.optional {
			continue
		}
		if best == nil || cols[i].Len() < best.Len() {
			best = cols[i]
		}
	}
	return best
}

// populate writes component pointers for the entity at index into the struct at ptr
func (v *View[T]) populate(ptr unsafe.Pointer, index uint32, cols []componentColumn) bool {
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(ptr, f.offset)

		var component unsafe.Pointer
		if cols[i] != nil {
			component = cols[i].Pointer(index)
		}
		if component == nil && !f.optional {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = component
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(ptr, v.idOffset)) = v.storage.idAt(index)
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not alive or is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}
	cols, ok := v.columns()
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), id.Index(), cols)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities that have all the required components.
// Entities must not be deleted while the iterator is running; use Commands instead.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		cols, ok := v.columns()
		if !ok {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		visit := func(index uint32) bool {
			if !v.populate(resultPtr, index, cols) {
				return true
			}
			return yield(v.storage.idAt(index), result)
		}

		if driver := v.driver(cols); driver != nil {
			for _, index := range driver.Entities() {
				if !visit(index) {
					return
				}
			}
			return
		}

		for index, slot := range v.storage.slots {
			if !slot.alive {
				continue
			}
			if !visit(uint32(index)) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with the components referenced by data.
// Nil optional fields are skipped; a nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
