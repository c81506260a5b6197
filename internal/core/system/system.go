package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseSpawn     Phase = iota // 0: population top-up, enqueues only
	PhaseUpdate                 // 1: per-entity movement and firing
	PhaseCollision              // 2: pairwise resolution over the tick snapshot
	PhaseCommit                 // 3: apply pending add/remove
	PhaseEvaluate               // 4: level win/loss check
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawn:
		return "spawn"
	case PhaseUpdate:
		return "update"
	case PhaseCollision:
		return "collision"
	case PhaseCommit:
		return "commit"
	case PhaseEvaluate:
		return "evaluate"
	}
	return "unknown"
}

// System is the interface every per-tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
