package engine

import (
	"testing"

	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, cfg level.Config, seed int64) *Simulation {
	t.Helper()
	s, err := New(Options{Level: cfg, Seed: seed})
	require.NoError(t, err)
	return s
}

// parkEnemy places a stationary enemy just ahead of the player's gun so
// that the next shot overlaps it the moment it appears.
func parkEnemy(t *testing.T, s *Simulation) *world.Entity {
	t.Helper()
	p := s.Player()
	enemy := world.NewEnemyPlane(p.Right()+1, p.Y-6, 1, 0, 0)
	s.Spawn(enemy)
	require.True(t, s.Step())
	require.Len(t, s.Snapshot(), 2)
	return enemy
}

func TestNewCommitsPlayer(t *testing.T) {
	s := newSim(t, level.Config{Name: "empty"}, 1)
	views := s.Snapshot()
	require.Len(t, views, 1)
	assert.Equal(t, world.KindPlayer, views[0].Kind)
	assert.Equal(t, DefaultPlayerHealth, views[0].Health)
	assert.Equal(t, level.Running, s.State())
	assert.Equal(t, uint64(0), s.Tick())
}

func TestNewRejectsBrokenLevel(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = New(Options{Level: level.Config{Name: "bad", Enemy: level.SpawnRule{Probability: 2}}})
	})
	assert.Panics(t, func() {
		_, _ = New(Options{Level: level.Config{Name: "bad"}, Tick: -1})
	})
}

func TestScriptPredicateWithoutResolver(t *testing.T) {
	_, err := New(Options{Level: level.Config{
		Name: "scripted",
		Win:  []level.PredicateSpec{{Kind: level.KindScript, Script: "won"}},
	}})
	assert.Error(t, err)
}

func TestSpawnedProjectileNotCollidedSameTick(t *testing.T) {
	s := newSim(t, level.Config{Name: "range"}, 1)
	enemy := parkEnemy(t, s)

	s.Controls().Fire()
	require.True(t, s.Step())
	assert.False(t, enemy.Destroyed, "projectile spawned this tick must not collide yet")
	assert.Equal(t, 1, enemy.Health)
	assert.Equal(t, 0, s.Level().KillCount)
	assert.Len(t, s.Snapshot(), 3, "projectile is committed at the end of the tick")

	require.True(t, s.Step())
	assert.True(t, enemy.Destroyed)
	assert.Equal(t, 1, s.Level().KillCount)
	assert.Equal(t, world.EnemyScore, s.Level().Score)
	assert.Len(t, s.Snapshot(), 1)
	assert.Equal(t, 0, s.Population(world.CategoryEnemy))
}

func TestWinOnKills(t *testing.T) {
	s := newSim(t, level.Config{
		Name: "one-kill",
		Win:  []level.PredicateSpec{{Kind: level.KindKills, Value: 1}},
	}, 1)
	var completed []int
	s.OnCompleted(func(score int) { completed = append(completed, score) })

	parkEnemy(t, s)
	s.Controls().Fire()
	s.Step()
	assert.Empty(t, completed)
	s.Step()

	assert.Equal(t, level.Completed, s.State())
	assert.Equal(t, []int{world.EnemyScore}, completed)

	tick := s.Tick()
	assert.False(t, s.Step(), "completed level does not tick")
	assert.Equal(t, tick, s.Tick())
	assert.Len(t, completed, 1)
}

func TestLossWhenPlayerDestroyed(t *testing.T) {
	s := newSim(t, level.Config{Name: "fragile", PlayerHealth: 1}, 1)
	var lost int
	s.OnLost(func(int) { lost++ })

	p := s.Player()
	s.Spawn(world.NewProjectile(p.X+40, p.Y+10, world.ProjectileSpeed, false))
	s.Step() // commit the shot
	assert.Equal(t, level.Running, s.State())
	s.Step()

	assert.True(t, p.Destroyed)
	assert.Equal(t, level.Lost, s.State())
	assert.Equal(t, 1, lost)
	assert.Empty(t, s.Snapshot())
}

func TestLossBeatsWinSameTick(t *testing.T) {
	s := newSim(t, level.Config{
		Name:       "tie",
		TimerTicks: 1,
		Win:        []level.PredicateSpec{{Kind: level.KindTimer}},
		Lose:       []level.PredicateSpec{{Kind: level.KindTimer}},
	}, 1)
	s.Step()
	assert.Equal(t, level.Lost, s.State())
}

func TestTimerWin(t *testing.T) {
	s := newSim(t, level.Config{
		Name:       "survive",
		TimerTicks: 3,
		Win:        []level.PredicateSpec{{Kind: level.KindTimer}},
	}, 1)
	s.Step()
	s.Step()
	assert.Equal(t, level.Running, s.State())
	assert.Equal(t, 1, s.Stats().TimerRemaining)
	s.Step()
	assert.Equal(t, level.Completed, s.State())
}

func TestFuelExhaustedLoses(t *testing.T) {
	s := newSim(t, level.Config{
		Name:           "dry",
		PlayerFuel:     2,
		FuelDrainEvery: 1,
		Lose:           []level.PredicateSpec{{Kind: level.KindFuelExhausted}},
	}, 1)
	s.Step()
	assert.Equal(t, 1, s.Stats().Fuel)
	assert.Equal(t, level.Running, s.State())
	s.Step()
	assert.Equal(t, level.Lost, s.State())
}

func TestPauseStopsTicks(t *testing.T) {
	s := newSim(t, level.Config{Name: "pausable"}, 1)
	paused, resumed := 0, 0
	s.OnPaused(func() { paused++ })
	s.OnResumed(func() { resumed++ })

	s.Step()
	assert.True(t, s.Pause())
	assert.False(t, s.Pause())
	assert.Equal(t, 1, paused)

	assert.False(t, s.Step())
	assert.Equal(t, uint64(1), s.Tick())

	assert.True(t, s.Resume())
	assert.False(t, s.Resume())
	assert.Equal(t, 1, resumed)
	assert.True(t, s.Step())
	assert.Equal(t, uint64(2), s.Tick())
}

func TestBossSpawnsOnce(t *testing.T) {
	s := newSim(t, level.Config{
		Name: "boss",
		Boss: &level.BossRule{Health: 3},
	}, 1)
	s.Step()
	assert.Equal(t, 1, s.Population(world.CategoryBoss))
	for i := 0; i < 30; i++ {
		s.Step()
	}
	bosses := 0
	for _, v := range s.Snapshot() {
		if v.Kind == world.KindBoss {
			bosses++
		}
	}
	assert.Equal(t, 1, bosses)
}

func busyLevel() level.Config {
	return level.Config{
		Name:         "busy",
		PlayerHealth: 1000,
		PlayerFuel:   500,
		Enemy:        level.SpawnRule{Cap: 5, MaxBurst: 2, Probability: 0.3, Speed: 9, FireProbability: 0.05},
		Coin:         level.SpawnRule{Cap: 2, MaxBurst: 1, Probability: 0.1},
		Fuel:         level.SpawnRule{Cap: 1, MaxBurst: 1, Probability: 0.05, Amount: 10},
		Boss:         &level.BossRule{AfterKills: 3, Health: 5, FireProbability: 0.1, ShieldProbability: 0.05, ShieldTicks: 4},
	}
}

// pilot is a deterministic input script: fire always, sweep up and down.
func pilot(s *Simulation) {
	c := s.Controls()
	c.Fire()
	if s.Tick()%40 < 20 {
		c.MoveUp()
	} else {
		c.MoveDown()
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newSim(t, busyLevel(), 7)
	b := newSim(t, busyLevel(), 7)
	c := newSim(t, busyLevel(), 8)

	for i := 0; i < 300; i++ {
		pilot(a)
		pilot(b)
		pilot(c)
		a.Step()
		b.Step()
		c.Step()
		require.Equal(t, a.Digest(), b.Digest(), "tick %d", a.Tick())
	}
	assert.NotEqual(t, a.Digest(), c.Digest())
}

func TestPopulationTracksCommittedEntities(t *testing.T) {
	cfg := busyLevel()
	s := newSim(t, cfg, 42)
	caps := map[world.Category]int{
		world.CategoryEnemy: cfg.Enemy.Cap,
		world.CategoryCoin:  cfg.Coin.Cap,
		world.CategoryFuel:  cfg.Fuel.Cap,
		world.CategoryBoss:  1,
	}

	for i := 0; i < 400; i++ {
		pilot(s)
		if !s.Step() {
			break
		}
		counts := map[world.Category]int{}
		for _, id := range s.reg.Snapshot() {
			e, ok := s.reg.Get(id)
			require.True(t, ok)
			require.False(t, e.Destroyed, "destroyed entity survived commit")
			require.False(t, e.Health <= 0, "zero-health entity still active")
			counts[e.Category]++
		}
		for c, limit := range caps {
			assert.Equal(t, counts[c], s.Population(c), "%s population", c)
			assert.LessOrEqual(t, s.Population(c), limit, "%s cap", c)
		}
	}
}

func TestRepeatedSpawnCountsOnce(t *testing.T) {
	s := newSim(t, level.Config{Name: "range"}, 1)
	enemy := world.NewEnemyPlane(600, 100, 1, 0, 0)
	id := s.Spawn(enemy)
	assert.Equal(t, id, s.Spawn(enemy))
	assert.Equal(t, 1, s.Population(world.CategoryEnemy))

	require.True(t, s.Step())
	assert.Equal(t, id, s.Spawn(enemy), "active entity keeps its handle")
	assert.Equal(t, 1, s.Population(world.CategoryEnemy))

	enemy.Destroy()
	s.reg.Remove(enemy.ID)
	require.True(t, s.Step())
	assert.Len(t, s.Snapshot(), 1)
	assert.Equal(t, 0, s.Population(world.CategoryEnemy))
}
