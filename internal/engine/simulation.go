// Package engine wires one level's registry, systems, state machine and
// event bus into a Simulation and drives it on a fixed tick.
package engine

import (
	"fmt"
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/event"
	"github.com/skyraid/skyraid/internal/core/rng"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/system"
	"github.com/skyraid/skyraid/internal/world"
	"go.uber.org/zap"
)

const (
	DefaultTick         = 50 * time.Millisecond
	DefaultPlayerHealth = 5
	DefaultFuelAmount   = 20

	defaultEnemySpeed  = 6
	defaultPickupSpeed = 4
)

// DefaultField is the play area in world units.
var DefaultField = world.Rect{W: 1300, H: 750}

// Options configures a Simulation. Zero values take the defaults above.
type Options struct {
	Level        level.Config
	Seed         int64
	Tick         time.Duration
	Field        world.Rect
	PlayerHealth int // used when Level.PlayerHealth is 0
	RetryCeiling int
	Scripts      level.ScriptResolver // required only for "script" predicates
	Log          *zap.Logger
}

// Simulation is the per-level context object. Everything a tick touches
// hangs off it; nothing is global, so several levels can run side by side.
// Not safe for concurrent use: drive it from one goroutine (see Clock).
type Simulation struct {
	name  string
	tick  time.Duration
	field world.Rect
	log   *zap.Logger

	rng     *rng.Source
	bus     *event.Bus
	reg     *world.Registry
	lvl     *level.Level
	machine *level.StateMachine
	runner  *coresys.Runner
	frame   *system.Frame
	ctx     *simContext

	player   *world.Entity
	controls *world.Player
}

// New builds a Simulation in the Running state with the player committed.
// An invalid level definition panics; an unresolvable script predicate is
// returned as an error.
func New(opts Options) (*Simulation, error) {
	cfg := opts.Level
	cfg.MustValidate()
	if opts.Tick < 0 {
		panic(fmt.Sprintf("engine: negative tick %s", opts.Tick))
	}
	if opts.Tick == 0 {
		opts.Tick = DefaultTick
	}
	if opts.Field.W <= 0 || opts.Field.H <= 0 {
		opts.Field = DefaultField
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	win, err := level.BuildAny(cfg.Win, opts.Scripts)
	if err != nil {
		return nil, fmt.Errorf("level %s: win predicate: %w", cfg.Name, err)
	}
	lose, err := level.BuildAny(cfg.Lose, opts.Scripts)
	if err != nil {
		return nil, fmt.Errorf("level %s: loss predicate: %w", cfg.Name, err)
	}
	if len(cfg.Lose) == 0 {
		lose = level.PlayerDestroyed()
	}

	s := &Simulation{
		name:  cfg.Name,
		tick:  opts.Tick,
		field: opts.Field,
		log:   opts.Log.With(zap.String("level", cfg.Name)),
		rng:   rng.New(opts.Seed),
		bus:   event.NewBus(),
		reg:   world.NewRegistry(),
		lvl:   level.New(cfg),
		frame: &system.Frame{},
	}
	s.ctx = &simContext{s: s}
	s.machine = level.NewStateMachine(cfg.Name, win, lose, s.bus)
	s.reg.OnRemove(func(_ ecs.EntityID, e *world.Entity) {
		s.lvl.ReleasePopulation(e.Category)
	})

	health := cfg.PlayerHealth
	if health == 0 {
		health = opts.PlayerHealth
	}
	if health == 0 {
		health = DefaultPlayerHealth
	}
	s.player, s.controls = world.NewPlayer(s.field.X+5, s.field.Y+s.field.H/2-world.PlayerHeight/2, health)
	if cfg.PlayerFuel > 0 {
		s.controls.Fuel = cfg.PlayerFuel
		s.controls.MaxFuel = cfg.PlayerFuel
		s.controls.FuelDrainEvery = max(cfg.FuelDrainEvery, 1)
	}
	s.Spawn(s.player)
	s.reg.Commit()

	spawner := system.NewSpawnController(s.reg, s.rng, s.log)
	spawner.SetRetryCeiling(opts.RetryCeiling)
	spawns := system.NewSpawnSystem(spawner, s.lvl)
	s.addSpawnRules(spawns, cfg)

	s.runner = coresys.NewRunner()
	s.runner.Register(spawns)
	s.runner.Register(system.NewUpdateSystem(s.frame, s.reg, s.ctx))
	s.runner.Register(system.NewCollisionSystem(s.frame, system.NewCollisionResolver(s.reg, s.lvl, s.bus, s.log)))
	s.runner.Register(system.NewCommitSystem(s.reg, s.log))
	s.runner.Register(system.NewEvaluateSystem(s.machine, s.Stats))

	s.log.Info("level ready",
		zap.Int64("seed", opts.Seed),
		zap.Duration("tick", s.tick),
		zap.Int("player_health", health))
	return s, nil
}

func (s *Simulation) addSpawnRules(spawns *system.SpawnSystem, cfg level.Config) {
	f := s.field
	if r := cfg.Enemy; r.Cap > 0 {
		health, speed := orInt(r.Health, 1), orFloat(r.Speed, defaultEnemySpeed)
		spawns.AddRule(system.SpawnRule{
			Category: world.CategoryEnemy,
			Factory: func() *world.Entity {
				y := s.rng.Range(f.Y, f.Bottom()-world.EnemyHeight)
				return world.NewEnemyPlane(f.Right()-world.EnemyWidth, y, health, speed, r.FireProbability)
			},
			MaxBurst:    r.MaxBurst,
			Probability: r.Probability,
			Cap:         r.Cap,
		})
	}
	if r := cfg.Coin; r.Cap > 0 {
		speed := orFloat(r.Speed, defaultPickupSpeed)
		spawns.AddRule(system.SpawnRule{
			Category: world.CategoryCoin,
			Factory: func() *world.Entity {
				y := s.rng.Range(f.Y, f.Bottom()-world.CoinSize)
				return world.NewCoin(f.Right()-world.CoinSize, y, speed)
			},
			MaxBurst:    r.MaxBurst,
			Probability: r.Probability,
			Cap:         r.Cap,
		})
	}
	if r := cfg.Fuel; r.Cap > 0 {
		speed, amount := orFloat(r.Speed, defaultPickupSpeed), orInt(r.Amount, DefaultFuelAmount)
		spawns.AddRule(system.SpawnRule{
			Category: world.CategoryFuel,
			Factory: func() *world.Entity {
				y := s.rng.Range(f.Y, f.Bottom()-world.FuelHeight)
				return world.NewFuel(f.Right()-world.FuelWidth, y, speed, amount)
			},
			MaxBurst:    r.MaxBurst,
			Probability: r.Probability,
			Cap:         r.Cap,
		})
	}
	if b := cfg.Boss; b != nil {
		spawns.AddRule(system.SpawnRule{
			Category: world.CategoryBoss,
			Factory: func() *world.Entity {
				y := s.rng.Range(f.Y, f.Bottom()-world.BossHeight)
				return world.NewBoss(f.Right()-world.BossWidth-20, y, b.Health, b.FireProbability, b.ShieldProbability, b.ShieldTicks)
			},
			MaxBurst:    1,
			Probability: 1,
			Cap:         1,
			Ready:       func() bool { return s.lvl.KillCount >= b.AfterKills },
			Once:        true,
		})
	}
}

// Step advances exactly one tick: spawn, update, collision, commit,
// evaluate. Events raised during the tick are delivered after it. Returns
// false without doing anything unless the level is Running.
func (s *Simulation) Step() bool {
	if s.machine.State() != level.Running {
		return false
	}
	s.frame.Tick++
	s.frame.Snapshot = s.reg.Snapshot()
	s.runner.Tick(s.tick)
	s.bus.Flush()

	if st := s.machine.State(); st.Terminal() {
		s.log.Info("level finished",
			zap.Stringer("state", st),
			zap.Uint64("tick", s.frame.Tick),
			zap.Int("score", s.lvl.Score),
			zap.Int("kills", s.lvl.KillCount),
			zap.Int("coins", s.lvl.CoinsCollected))
	}
	return true
}

// Spawn enqueues e (level scripts, entity updates). It becomes visible at
// the next commit and counts against its category's population at once.
// Spawning an entity that is already pending or active is a no-op.
func (s *Simulation) Spawn(e *world.Entity) ecs.EntityID {
	id, queued := s.reg.Add(e)
	e.ID = id
	if queued {
		s.lvl.AddPopulation(e.Category, 1)
	}
	return id
}

// Pause and Resume toggle Running/Paused; anything else is a no-op.
func (s *Simulation) Pause() bool {
	ok := s.machine.Pause()
	s.bus.Flush()
	return ok
}

func (s *Simulation) Resume() bool {
	ok := s.machine.Resume()
	s.bus.Flush()
	return ok
}

// Stats is what the level predicates see.
func (s *Simulation) Stats() level.Stats {
	st := level.Stats{
		Tick:            s.frame.Tick,
		Score:           s.lvl.Score,
		Kills:           s.lvl.KillCount,
		Coins:           s.lvl.CoinsCollected,
		PlayerHealth:    s.player.Health,
		PlayerDestroyed: s.player.Destroyed,
		BossDefeated:    s.lvl.BossDefeated,
	}
	if s.controls.MaxFuel > 0 {
		st.FuelEnabled = true
		st.Fuel = s.controls.Fuel
	}
	if t := s.lvl.Config.TimerTicks; t > 0 {
		st.TimerEnabled = true
		st.TimerRemaining = t - int(s.frame.Tick)
	}
	return st
}

// Snapshot returns the committed entities for a renderer, in insertion order.
func (s *Simulation) Snapshot() []world.View {
	ids := s.reg.Snapshot()
	out := make([]world.View, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.reg.Get(id); ok {
			out = append(out, e.View())
		}
	}
	return out
}

func (s *Simulation) Name() string                { return s.name }
func (s *Simulation) State() level.State          { return s.machine.State() }
func (s *Simulation) Tick() uint64                { return s.frame.Tick }
func (s *Simulation) TickDuration() time.Duration { return s.tick }
func (s *Simulation) Field() world.Rect           { return s.field }
func (s *Simulation) Seed() int64                 { return s.rng.Seed() }
func (s *Simulation) Level() *level.Level         { return s.lvl }
func (s *Simulation) Bus() *event.Bus             { return s.bus }
func (s *Simulation) Player() *world.Entity       { return s.player }

// Controls is the player's command surface: MoveUp, MoveDown, Stop, Fire.
func (s *Simulation) Controls() *world.Player { return s.controls }

// Population returns the live-plus-pending count for c.
func (s *Simulation) Population(c world.Category) int { return s.lvl.Population(c) }

// Lifecycle hooks for UI collaborators. Handlers run after the tick (or
// the Pause/Resume call) that raised them.

func (s *Simulation) OnCompleted(fn func(score int)) {
	event.Subscribe(s.bus, func(e event.LevelCompleted) { fn(e.Score) })
}

func (s *Simulation) OnLost(fn func(score int)) {
	event.Subscribe(s.bus, func(e event.LevelLost) { fn(e.Score) })
}

func (s *Simulation) OnPaused(fn func()) {
	event.Subscribe(s.bus, func(event.LevelPaused) { fn() })
}

func (s *Simulation) OnResumed(fn func()) {
	event.Subscribe(s.bus, func(event.LevelResumed) { fn() })
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
