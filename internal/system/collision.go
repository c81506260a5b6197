package system

import (
	"slices"
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/event"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/world"
	"go.uber.org/zap"
)

// CollisionResolver turns bounding-box overlaps into gameplay effects.
//
// Pairs are classified in priority order:
//  1. projectile vs projectile: nothing
//  2. exactly one collectible: the designated collector consumes it
//  3. friendly vs hostile: one damage event each; a projectile killing a
//     hostile non-projectile scores a kill
//  4. same side: nothing
//
// An entity destroyed earlier in the pass takes no part in later pairs. A
// live entity can still be hit by several colliders in the same tick.
type CollisionResolver struct {
	reg *world.Registry
	lvl *level.Level
	bus *event.Bus
	log *zap.Logger

	grid *world.Grid
	near []int
}

func NewCollisionResolver(reg *world.Registry, lvl *level.Level, bus *event.Bus, log *zap.Logger) *CollisionResolver {
	return &CollisionResolver{reg: reg, lvl: lvl, bus: bus, log: log, grid: world.NewGrid()}
}

// Resolve evaluates every overlapping pair (i, j), i < j, of snapshot in
// index order. The grid only prunes pairs that cannot overlap, so the
// outcome is the same as a full pairwise scan. Mutations are limited to
// the two entities' health/destroyed state, level counters, registry
// removal requests and events.
func (r *CollisionResolver) Resolve(snapshot []ecs.EntityID) {
	ents := make([]*world.Entity, 0, len(snapshot))
	for _, id := range snapshot {
		if e, ok := r.reg.Get(id); ok {
			ents = append(ents, e)
		}
	}

	r.grid.Reset()
	for i, e := range ents {
		if !e.Destroyed {
			r.grid.Insert(i, e.Bounds())
		}
	}

	for i, a := range ents {
		if a.Destroyed {
			continue
		}
		r.near = r.grid.Nearby(a.Bounds(), r.near[:0])
		slices.Sort(r.near)
		r.near = slices.Compact(r.near)
		for _, j := range r.near {
			if a.Destroyed {
				break
			}
			if j <= i {
				continue
			}
			b := ents[j]
			if b.Destroyed {
				continue
			}
			if !a.Bounds().Intersects(b.Bounds()) {
				continue
			}
			r.apply(a, b)
		}
	}
}

func (r *CollisionResolver) apply(a, b *world.Entity) {
	switch {
	case a.Projectile && b.Projectile:
		return
	case a.Collectible != b.Collectible:
		if b.Collectible {
			r.collect(b, a)
		} else {
			r.collect(a, b)
		}
	case a.Collectible:
		return // two pickups
	case a.Friendly != b.Friendly:
		r.damage(a, b)
	}
}

func (r *CollisionResolver) collect(item, collector *world.Entity) {
	if !collector.Friendly || collector.Collectible {
		return
	}
	c, ok := collector.Behavior.(world.Collector)
	if !ok {
		return
	}
	c.Collect(item.Effect)
	r.lvl.RecordCollect(item)
	item.Destroy()
	r.reg.Remove(item.ID)
	event.Emit(r.bus, event.ItemCollected{
		EntityID: item.ID,
		Effect:   item.Effect.Kind.String(),
		Amount:   item.Effect.Amount,
	})
}

func (r *CollisionResolver) damage(a, b *world.Entity) {
	aKilled := a.Hit(1)
	bKilled := b.Hit(1)

	if a.Projectile != b.Projectile {
		target, killed := b, bKilled
		if !a.Projectile {
			target, killed = a, aKilled
		}
		if killed && !target.Friendly {
			r.lvl.RecordKill(target)
			event.Emit(r.bus, event.EnemyKilled{
				EntityID: target.ID,
				Kind:     target.Kind.String(),
				Score:    target.ScoreValue,
			})
			r.log.Debug("enemy killed",
				zap.Stringer("kind", target.Kind),
				zap.Int("kills", r.lvl.KillCount))
		}
	}

	r.retire(a, aKilled)
	r.retire(b, bKilled)
}

func (r *CollisionResolver) retire(e *world.Entity, killed bool) {
	if !killed {
		return
	}
	r.reg.Remove(e.ID)
	event.Emit(r.bus, event.EntityDestroyed{EntityID: e.ID, Kind: e.Kind.String()})
}

// CollisionSystem runs the resolver over the tick snapshot.
// Phase 2 (Collision).
type CollisionSystem struct {
	frame    *Frame
	resolver *CollisionResolver
}

func NewCollisionSystem(frame *Frame, resolver *CollisionResolver) *CollisionSystem {
	return &CollisionSystem{frame: frame, resolver: resolver}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.resolver.Resolve(s.frame.Snapshot)
}
