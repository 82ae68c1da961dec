package debugui

import (
	"image"
	"reflect"
	"testing"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walker struct {
	Name   string
	Steps  int8
	Region image.Rectangle
	Frames []int
	hidden int
	Target *walker
}

func TestReflectionCache(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[walker]())
	require.Len(t, fields, 5, "unexported fields are skipped")

	assert.Equal(t, "Region", fields[2].Name)
	assert.True(t, fields[2].IsStruct)
	assert.True(t, fields[3].IsSlice)
	assert.True(t, fields[4].IsPointer)
	assert.Equal(t, 5, fields[4].Index)

	assert.Equal(t, fields, cache.GetFields(reflect.TypeFor[walker]()))
	assert.Empty(t, cache.GetFields(reflect.TypeFor[int]()))
}

func TestSetters(t *testing.T) {
	w := &walker{}
	val := reflect.ValueOf(w).Elem()

	assert.True(t, setInt(val.Field(1), 100))
	assert.Equal(t, int8(100), w.Steps)
	assert.False(t, setInt(val.Field(1), 1000), "overflow")
	assert.Equal(t, int8(100), w.Steps)

	assert.True(t, setInt(val.Field(2).Field(0).Field(0), 7))
	assert.Equal(t, 7, w.Region.Min.X)

	assert.False(t, setInt(reflect.ValueOf(3), 4), "not addressable")

	var u uint8
	assert.True(t, setUint(reflect.ValueOf(&u).Elem(), 200))
	assert.False(t, setUint(reflect.ValueOf(&u).Elem(), 300))

	var f float32
	assert.True(t, setFloat(reflect.ValueOf(&f).Elem(), 1.5))
	assert.Equal(t, float32(1.5), f)
}

func TestPerformanceRecord(t *testing.T) {
	perf := NewPerformanceStatsComponent(4)

	assert.InDelta(t, 4.0, perf.Record(0.016), 0.001)
	perf.Record(0.016)
	perf.Record(0.016)
	assert.InDelta(t, 16.0, perf.Record(0.016), 0.001)
	assert.InDelta(t, 16.0, perf.Record(0.016), 0.001, "ring overwrites oldest")
}

func TestSpawnDebugUI(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	SpawnDebugUI(storage, scheduler, 0)

	count := 0
	for item := range ecs.NewView[struct{ *ImguiItem }](storage).Values() {
		assert.NotNil(t, item.ImguiItem.Render)
		count++
	}
	assert.Equal(t, 2, count)
}
