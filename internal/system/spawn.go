package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/rng"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/world"
	"go.uber.org/zap"
)

// Factory builds one spawn candidate. Returning nil is a broken level
// definition and panics.
type Factory func() *world.Entity

// SpawnController places new entities probabilistically under population
// caps, rejecting candidates that overlap anything already on the field.
type SpawnController struct {
	reg          *world.Registry
	rng          *rng.Source
	retryCeiling int
	log          *zap.Logger
}

func NewSpawnController(reg *world.Registry, src *rng.Source, log *zap.Logger) *SpawnController {
	return &SpawnController{reg: reg, rng: src, log: log}
}

// SetRetryCeiling bounds the overlap retries of a single attempt. n <= 0
// restores the default, which is the call's maxBurst.
func (c *SpawnController) SetRetryCeiling(n int) { c.retryCeiling = n }

// TrySpawn runs min(maxBurst, populationCap) - currentCount attempts. Each
// attempt draws one Bernoulli trial; on success it builds candidates until
// one fits without overlap or the retry ceiling is reached, in which case
// the attempt is dropped. Returns the number of entities enqueued.
func (c *SpawnController) TrySpawn(factory Factory, maxBurst int, probability float64, currentCount, populationCap int) int {
	if factory == nil {
		panic("system: TrySpawn with nil factory")
	}
	toAttempt := min(maxBurst-currentCount, populationCap-currentCount)
	if toAttempt <= 0 {
		return 0
	}
	ceiling := c.retryCeiling
	if ceiling <= 0 {
		ceiling = maxBurst
	}

	occupied := c.occupied()
	spawned := 0
	for i := 0; i < toAttempt; i++ {
		if !c.rng.Bernoulli(probability) {
			continue
		}
		for retry := 0; ; retry++ {
			e := factory()
			if e == nil {
				panic("system: spawn factory returned nil")
			}
			b := e.Bounds()
			if !overlapsAny(b, occupied) {
				e.ID, _ = c.reg.Add(e)
				occupied = append(occupied, b)
				spawned++
				break
			}
			if retry >= ceiling {
				c.log.Debug("spawn attempt dropped: field saturated",
					zap.Stringer("kind", e.Kind),
					zap.Int("retries", retry))
				break
			}
		}
	}
	return spawned
}

func (c *SpawnController) occupied() []world.Rect {
	snap := c.reg.Snapshot()
	out := make([]world.Rect, 0, len(snap))
	for _, id := range snap {
		if e, ok := c.reg.Get(id); ok && !e.Destroyed {
			out = append(out, e.Bounds())
		}
	}
	return out
}

func overlapsAny(b world.Rect, others []world.Rect) bool {
	for _, o := range others {
		if b.Intersects(o) {
			return true
		}
	}
	return false
}

// SpawnRule feeds one population category from the level configuration.
type SpawnRule struct {
	Category    world.Category
	Factory     Factory
	MaxBurst    int
	Probability float64
	Cap         int

	// Ready gates the rule; nil means always. Once disables the rule after
	// its first successful spawn.
	Ready func() bool
	Once  bool

	done bool
}

// SpawnSystem tops up every configured category once per tick.
// Phase 0 (Spawn).
type SpawnSystem struct {
	ctrl  *SpawnController
	lvl   *level.Level
	rules []*SpawnRule
}

func NewSpawnSystem(ctrl *SpawnController, lvl *level.Level) *SpawnSystem {
	return &SpawnSystem{ctrl: ctrl, lvl: lvl}
}

func (s *SpawnSystem) AddRule(r SpawnRule) {
	s.rules = append(s.rules, &r)
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	for _, r := range s.rules {
		if r.done || (r.Ready != nil && !r.Ready()) {
			continue
		}
		n := s.ctrl.TrySpawn(r.Factory, r.MaxBurst, r.Probability, s.lvl.Population(r.Category), r.Cap)
		s.lvl.AddPopulation(r.Category, n)
		if n > 0 && r.Once {
			r.done = true
		}
	}
}
