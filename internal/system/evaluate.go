package system

import (
	"time"

	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/level"
)

// EvaluateSystem runs the level's win/loss check after commit.
// Phase 4 (Evaluate).
type EvaluateSystem struct {
	machine *level.StateMachine
	stats   func() level.Stats
}

func NewEvaluateSystem(machine *level.StateMachine, stats func() level.Stats) *EvaluateSystem {
	return &EvaluateSystem{machine: machine, stats: stats}
}

func (s *EvaluateSystem) Phase() coresys.Phase { return coresys.PhaseEvaluate }

func (s *EvaluateSystem) Update(_ time.Duration) {
	s.machine.Evaluate(s.stats())
}
