package engine

import (
	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/rng"
	"github.com/skyraid/skyraid/internal/world"
)

// simContext is the world.Context handed to entity updates.
type simContext struct {
	s *Simulation
}

func (c *simContext) Spawn(e *world.Entity) ecs.EntityID { return c.s.Spawn(e) }

func (c *simContext) Despawn(e *world.Entity) {
	e.Destroy()
	c.s.reg.Remove(e.ID)
}

func (c *simContext) RNG() *rng.Source  { return c.s.rng }
func (c *simContext) Field() world.Rect { return c.s.field }
func (c *simContext) Tick() uint64      { return c.s.frame.Tick }
