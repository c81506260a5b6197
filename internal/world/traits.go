package world

import (
	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/rng"
)

// Context is what an entity may touch during its own update. Spawn and
// Despawn only enqueue; nothing becomes visible until the registry commits.
type Context interface {
	Spawn(e *Entity) ecs.EntityID
	Despawn(e *Entity)
	RNG() *rng.Source
	Field() Rect
	Tick() uint64
}

// Updater is implemented by behaviours that act once per tick.
type Updater interface {
	Update(e *Entity, ctx Context)
}

// Collector marks the designated collector. Only a friendly, non-collectible
// entity whose behaviour implements Collector consumes pickups.
type Collector interface {
	Collect(eff Effect)
}

// Shielded behaviours can temporarily ignore damage.
type Shielded interface {
	Shielded() bool
}
