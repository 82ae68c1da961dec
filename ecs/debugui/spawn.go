package debugui

import "github.com/plus3/spritewalk/ecs"

// SpawnDebugUI spawns the performance window and an inspector for the entity
// to watch. Both render through ImguiSystem, so they appear only when it is
// registered and an ImGui frame is open.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler, inspect ecs.EntityId) {
	perf := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()
	inspector := NewComponentInspectorComponent(inspect)

	storage.Spawn(ImguiItem{
		Render: func() {
			perf.Render(storage, scheduler, timer.GetDeltaTime())
		},
	})
	storage.Spawn(ImguiItem{
		Render: func() {
			inspector.Render(storage)
		},
	})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
