package system

import (
	"time"

	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/world"
	"go.uber.org/zap"
)

// CommitSystem applies the registry's pending add/remove queues. It is the
// only place the active set changes during a tick.
// Phase 3 (Commit).
type CommitSystem struct {
	reg *world.Registry
	log *zap.Logger
}

func NewCommitSystem(reg *world.Registry, log *zap.Logger) *CommitSystem {
	return &CommitSystem{reg: reg, log: log}
}

func (s *CommitSystem) Phase() coresys.Phase { return coresys.PhaseCommit }

func (s *CommitSystem) Update(_ time.Duration) {
	added, removed := s.reg.Commit()
	if added > 0 || removed > 0 {
		s.log.Debug("registry commit",
			zap.Int("added", added),
			zap.Int("removed", removed),
			zap.Int("active", s.reg.Len()))
	}
}
