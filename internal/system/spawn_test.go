package system

import (
	"testing"

	"github.com/skyraid/skyraid/internal/core/rng"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// rowFactory places each candidate 100 units right of the previous one.
func rowFactory(calls *int) Factory {
	return func() *world.Entity {
		x := float64(*calls) * 100
		*calls++
		return world.New(world.KindEnemyPlane, x, 0, 50, 50, 1)
	}
}

func fixedFactory(calls *int, x, y float64) Factory {
	return func() *world.Entity {
		*calls++
		return world.New(world.KindEnemyPlane, x, y, 50, 50, 1)
	}
}

func newController(seed int64) (*SpawnController, *world.Registry, *rng.Source) {
	reg := world.NewRegistry()
	src := rng.New(seed)
	return NewSpawnController(reg, src, zap.NewNop()), reg, src
}

func TestTrySpawnCappedByPopulation(t *testing.T) {
	c, reg, _ := newController(1)
	calls := 0
	n := c.TrySpawn(rowFactory(&calls), 5, 1.0, 0, 3)
	assert.Equal(t, 3, n)

	assert.Empty(t, reg.Snapshot(), "spawns stay pending until commit")
	added, _ := reg.Commit()
	assert.Equal(t, 3, added)
}

func TestTrySpawnCappedByBurst(t *testing.T) {
	c, _, _ := newController(1)
	calls := 0
	assert.Equal(t, 2, c.TrySpawn(rowFactory(&calls), 2, 1.0, 0, 10))
}

func TestTrySpawnSaturatedIsNoop(t *testing.T) {
	c, reg, src := newController(1)
	calls := 0
	assert.Equal(t, 0, c.TrySpawn(rowFactory(&calls), 5, 1.0, 3, 3))
	assert.Equal(t, 0, c.TrySpawn(rowFactory(&calls), 2, 1.0, 4, 10))
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(0), src.Draws(), "no RNG draws when nothing to attempt")
	added, _ := reg.Commit()
	assert.Equal(t, 0, added)
}

func TestTrySpawnZeroProbability(t *testing.T) {
	c, _, src := newController(1)
	calls := 0
	assert.Equal(t, 0, c.TrySpawn(rowFactory(&calls), 4, 0, 0, 4))
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(4), src.Draws(), "one Bernoulli draw per attempt")
}

func TestTrySpawnRetriesOverlapInPlace(t *testing.T) {
	c, reg, src := newController(1)
	blocker := world.New(world.KindEnemyPlane, 0, 0, 100, 100, 1)
	blocker.ID, _ = reg.Add(blocker)
	reg.Commit()

	calls := 0
	factory := func() *world.Entity {
		calls++
		if calls == 1 {
			return world.New(world.KindCoin, 10, 10, 20, 20, 1)
		}
		return world.New(world.KindCoin, 500, 10, 20, 20, 1)
	}
	assert.Equal(t, 1, c.TrySpawn(factory, 1, 1.0, 0, 1))
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(1), src.Draws(), "a retry does not draw a new trial")
}

func TestTrySpawnBoundedRetriesOnSaturatedField(t *testing.T) {
	c, reg, _ := newController(1)
	blocker := world.New(world.KindEnemyPlane, 0, 0, 1000, 1000, 1)
	blocker.ID, _ = reg.Add(blocker)
	reg.Commit()
	c.SetRetryCeiling(2)

	calls := 0
	n := c.TrySpawn(fixedFactory(&calls, 10, 10), 3, 1.0, 0, 3)
	assert.Equal(t, 0, n)
	assert.Equal(t, 9, calls, "three attempts, each tried once plus two retries")
}

func TestTrySpawnDefaultCeilingIsMaxBurst(t *testing.T) {
	c, reg, _ := newController(1)
	blocker := world.New(world.KindEnemyPlane, 0, 0, 1000, 1000, 1)
	blocker.ID, _ = reg.Add(blocker)
	reg.Commit()

	calls := 0
	assert.Equal(t, 0, c.TrySpawn(fixedFactory(&calls, 10, 10), 4, 1.0, 0, 1))
	assert.Equal(t, 5, calls)
}

func TestTrySpawnCandidatesDoNotStack(t *testing.T) {
	c, _, _ := newController(1)
	calls := 0
	assert.Equal(t, 1, c.TrySpawn(fixedFactory(&calls, 10, 10), 3, 1.0, 0, 3))
}

func TestTrySpawnIgnoresDestroyedOccupants(t *testing.T) {
	c, reg, _ := newController(1)
	corpse := world.New(world.KindEnemyPlane, 0, 0, 1000, 1000, 1)
	corpse.ID, _ = reg.Add(corpse)
	reg.Commit()
	corpse.Destroy()

	calls := 0
	assert.Equal(t, 1, c.TrySpawn(fixedFactory(&calls, 10, 10), 1, 1.0, 0, 1))
}

func TestTrySpawnNeverExceedsCap(t *testing.T) {
	src := rng.New(99)
	for i := 0; i < 200; i++ {
		c, _, _ := newController(int64(i))
		maxBurst, popCap, current := src.Intn(8), src.Intn(8), src.Intn(8)
		p := src.Float64()
		calls := 0
		n := c.TrySpawn(rowFactory(&calls), maxBurst, p, current, popCap)
		bound := min(maxBurst, popCap) - current
		if bound < 0 {
			bound = 0
		}
		assert.LessOrEqual(t, n, bound, "burst=%d cap=%d current=%d", maxBurst, popCap, current)
		assert.GreaterOrEqual(t, n, 0)
	}
}

func TestTrySpawnRejectsBrokenFactories(t *testing.T) {
	c, _, _ := newController(1)
	assert.Panics(t, func() { c.TrySpawn(nil, 1, 1, 0, 1) })
	assert.Panics(t, func() {
		c.TrySpawn(func() *world.Entity { return nil }, 1, 1, 0, 1)
	})
}

func TestSpawnSystemTracksPopulation(t *testing.T) {
	c, reg, _ := newController(1)
	lvl := level.New(level.Config{Name: "test"})
	sys := NewSpawnSystem(c, lvl)

	calls := 0
	sys.AddRule(SpawnRule{
		Category:    world.CategoryEnemy,
		Factory:     rowFactory(&calls),
		MaxBurst:    4,
		Probability: 1,
		Cap:         4,
	})
	sys.Update(0)
	assert.Equal(t, 4, lvl.Population(world.CategoryEnemy))
	reg.Commit()

	sys.Update(0)
	assert.Equal(t, 4, lvl.Population(world.CategoryEnemy), "cap reached, no more spawns")
	assert.Equal(t, 4, reg.Len())
}

func TestSpawnSystemOnceRule(t *testing.T) {
	c, _, _ := newController(1)
	lvl := level.New(level.Config{Name: "test"})
	sys := NewSpawnSystem(c, lvl)

	ready := false
	calls := 0
	sys.AddRule(SpawnRule{
		Category:    world.CategoryBoss,
		Factory:     rowFactory(&calls),
		MaxBurst:    1,
		Probability: 1,
		Cap:         1,
		Ready:       func() bool { return ready },
		Once:        true,
	})

	sys.Update(0)
	require.Equal(t, 0, calls)

	ready = true
	sys.Update(0)
	assert.Equal(t, 1, calls)

	lvl.ReleasePopulation(world.CategoryBoss)
	sys.Update(0)
	assert.Equal(t, 1, calls, "boss spawns only once")
}
