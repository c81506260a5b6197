package world

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridNearbySpansCells(t *testing.T) {
	g := NewGrid()
	g.Insert(0, Rect{X: 90, Y: 90, W: 20, H: 20}) // corner of four cells
	g.Insert(1, Rect{X: 500, Y: 500, W: 10, H: 10})
	g.Insert(2, Rect{X: -50, Y: 10, W: 30, H: 30})

	near := g.Nearby(Rect{X: 105, Y: 105, W: 5, H: 5}, nil)
	assert.Equal(t, []int{0}, near)

	near = g.Nearby(Rect{X: -10, Y: 0, W: 5, H: 5}, nil)
	assert.Equal(t, []int{2}, near)
}

func TestGridReset(t *testing.T) {
	g := NewGrid()
	g.Insert(7, Rect{X: 10, Y: 10, W: 10, H: 10})
	g.Reset()
	assert.Empty(t, g.Nearby(Rect{X: 10, Y: 10, W: 10, H: 10}, nil))
}

// Every overlapping pair must be reported as a candidate.
func TestGridFindsAllOverlaps(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	boxes := make([]Rect, 200)
	g := NewGrid()
	for i := range boxes {
		boxes[i] = Rect{X: r.Float64()*1300 - 100, Y: r.Float64() * 750, W: 5 + r.Float64()*150, H: 5 + r.Float64()*60}
		g.Insert(i, boxes[i])
	}
	for i, a := range boxes {
		near := g.Nearby(a, nil)
		for j, b := range boxes {
			if a.Intersects(b) {
				assert.True(t, slices.Contains(near, j), "pair %d,%d missed", i, j)
			}
		}
	}
}
