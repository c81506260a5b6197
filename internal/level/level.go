package level

import "github.com/skyraid/skyraid/internal/world"

// Level holds the per-level counters mutated by the collision phase and
// read by the predicates. One per Simulation; never shared.
type Level struct {
	Config Config

	Score          int
	KillCount      int
	CoinsCollected int
	BossDefeated   bool

	population [world.NumCategories]int
}

func New(cfg Config) *Level {
	return &Level{Config: cfg}
}

func (l *Level) Name() string { return l.Config.Name }

// Population returns the live-plus-pending count for c.
func (l *Level) Population(c world.Category) int { return l.population[c] }

func (l *Level) AddPopulation(c world.Category, n int) {
	if c == world.CategoryNone {
		return
	}
	l.population[c] += n
}

// ReleasePopulation is called once per entity leaving the level.
func (l *Level) ReleasePopulation(c world.Category) {
	if c == world.CategoryNone || l.population[c] == 0 {
		return
	}
	l.population[c]--
}

// RecordKill credits a hostile destroyed by a projectile.
func (l *Level) RecordKill(e *world.Entity) {
	l.KillCount++
	l.Score += e.ScoreValue
	if e.Kind == world.KindBoss {
		l.BossDefeated = true
	}
}

// RecordCollect credits a consumed collectible.
func (l *Level) RecordCollect(e *world.Entity) {
	if e.Effect.Kind == world.EffectCoin {
		l.CoinsCollected++
	}
	l.Score += e.ScoreValue
}
