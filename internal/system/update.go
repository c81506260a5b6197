package system

import (
	"time"

	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/world"
)

// UpdateSystem calls each live entity's own update over the tick snapshot.
// Entities enqueued during the pass (projectiles, despawns) take effect at
// commit.
// Phase 1 (Update).
type UpdateSystem struct {
	frame *Frame
	reg   *world.Registry
	ctx   world.Context
}

func NewUpdateSystem(frame *Frame, reg *world.Registry, ctx world.Context) *UpdateSystem {
	return &UpdateSystem{frame: frame, reg: reg, ctx: ctx}
}

func (s *UpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UpdateSystem) Update(_ time.Duration) {
	for _, id := range s.frame.Snapshot {
		e, ok := s.reg.Get(id)
		if !ok || e.Destroyed {
			continue
		}
		if u, ok := e.Behavior.(world.Updater); ok {
			u.Update(e, s.ctx)
		}
	}
}
