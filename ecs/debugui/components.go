package debugui

import (
	"github.com/plus3/spritewalk/ecs"
)

// ComponentInspectorComponent edits the components of one entity in place.
type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

// PerformanceStatsComponent keeps a ring of recent frame times.
type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
