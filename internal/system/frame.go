package system

import "github.com/skyraid/skyraid/internal/core/ecs"

// Frame carries the per-tick snapshot shared by the update and collision
// phases. The simulation fills it before running the phases so both see
// exactly the same set, and nothing spawned this tick.
type Frame struct {
	Tick     uint64
	Snapshot []ecs.EntityID
}
