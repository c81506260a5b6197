package main

import (
	"slices"

	"github.com/skyraid/skyraid/internal/engine"
	"github.com/skyraid/skyraid/internal/world"
)

// autopilot stands in for a human at the controls: it lines up with the
// nearest hostile and keeps the trigger down, and goes for fuel when low.
type autopilot struct {
	deadband float64
	lowFuel  int
}

func newAutopilot() *autopilot {
	return &autopilot{deadband: 4, lowFuel: 10}
}

func (a *autopilot) steer(s *engine.Simulation) {
	c := s.Controls()
	p := s.Player()
	if p.Destroyed {
		return
	}
	c.Fire()

	target, ok := a.pick(s.Snapshot(), c.MaxFuel > 0 && c.Fuel <= a.lowFuel)
	if !ok {
		c.Stop()
		return
	}
	dy := (target.Y + target.H/2) - (p.Y + p.H/2)
	switch {
	case dy > a.deadband:
		c.MoveDown()
	case dy < -a.deadband:
		c.MoveUp()
	default:
		c.Stop()
	}
}

// pick returns the closest hostile, or the closest fuel token when
// wantFuel is set and one is on screen.
func (a *autopilot) pick(views []world.View, wantFuel bool) (world.Rect, bool) {
	if wantFuel {
		if r, ok := leftmost(views, world.KindFuel); ok {
			return r, true
		}
	}
	return leftmost(views, world.KindEnemyPlane, world.KindBoss)
}

func leftmost(views []world.View, kinds ...world.Kind) (world.Rect, bool) {
	var best world.Rect
	found := false
	for _, v := range views {
		if !slices.Contains(kinds, v.Kind) {
			continue
		}
		if !found || v.Bounds.X < best.X {
			best, found = v.Bounds, true
		}
	}
	return best, found
}
