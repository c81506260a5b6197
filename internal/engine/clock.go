package engine

import (
	"context"
	"time"

	"github.com/skyraid/skyraid/internal/level"
	"go.uber.org/zap"
)

// Command is work run on the clock goroutine between ticks, such as player
// input or a pause request coming from another goroutine.
type Command func(*Simulation)

// Clock drives a Simulation in real time at its fixed tick. Commands are
// the only way to touch the simulation while Run is active.
type Clock struct {
	sim    *Simulation
	cmds   chan Command
	before func(*Simulation)
	log    *zap.Logger
}

func NewClock(sim *Simulation) *Clock {
	return &Clock{
		sim:  sim,
		cmds: make(chan Command, 64),
		log:  sim.log,
	}
}

// BeforeTick sets a hook run on the clock goroutine right before each tick.
// If the hook cancels Run's context the tick is not taken.
func (c *Clock) BeforeTick(fn func(*Simulation)) { c.before = fn }

// Submit queues cmd for the clock goroutine. It returns false when the
// queue is full and the command was dropped.
func (c *Clock) Submit(cmd Command) bool {
	select {
	case c.cmds <- cmd:
		return true
	default:
		c.log.Warn("command queue full, dropping command")
		return false
	}
}

// Run ticks until the level reaches a terminal state or ctx is done. Ticks
// are skipped while paused; commands are still served.
func (c *Clock) Run(ctx context.Context) (level.State, error) {
	ticker := time.NewTicker(c.sim.TickDuration())
	defer ticker.Stop()

	for {
		if st := c.sim.State(); st.Terminal() {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return c.sim.State(), ctx.Err()
		case cmd := <-c.cmds:
			cmd(c.sim)
		case <-ticker.C:
			if c.sim.State() != level.Running {
				continue
			}
			if c.before != nil {
				c.before(c.sim)
				if err := ctx.Err(); err != nil {
					return c.sim.State(), err
				}
			}
			c.sim.Step()
		}
	}
}
