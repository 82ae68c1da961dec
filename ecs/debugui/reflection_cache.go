package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
// Type has one pointer level removed; IsPointer records that it was there.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

// ReflectionCache memoises FieldInfo per type; the inspector walks the same
// few component types every frame.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}

	fields := describeFields(t)
	actual, _ := rc.fields.LoadOrStore(t, fields)
	return actual.([]FieldInfo)
}

func describeFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		kind := fieldType.Kind()
		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			IsStruct:  kind == reflect.Struct,
			IsSlice:   kind == reflect.Slice,
			IsMap:     kind == reflect.Map,
		})
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
