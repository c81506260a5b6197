package world

import "math"

// Grid is a uniform-cell broad phase. A box is filed under every cell it
// touches, so two overlapping boxes always share at least one cell.
// Accessed only from the tick goroutine, no locks.

const cellSize = 100

type cellKey struct {
	cx int32
	cy int32
}

func toCellCoord(v float64) int32 {
	return int32(math.Floor(v / cellSize))
}

// Grid maps cells to caller-chosen integer keys (snapshot positions).
type Grid struct {
	cells map[cellKey][]int
}

func NewGrid() *Grid {
	return &Grid{
		cells: make(map[cellKey][]int),
	}
}

// Reset empties the grid, keeping its storage for the next tick.
func (g *Grid) Reset() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

// Insert files key under every cell b touches.
func (g *Grid) Insert(key int, b Rect) {
	g.cover(b, func(k cellKey) {
		g.cells[k] = append(g.cells[k], key)
	})
}

// Nearby appends to dst every key sharing a cell with b. A key may appear
// more than once; the caller does the exact overlap test.
func (g *Grid) Nearby(b Rect, dst []int) []int {
	g.cover(b, func(k cellKey) {
		dst = append(dst, g.cells[k]...)
	})
	return dst
}

func (g *Grid) cover(b Rect, fn func(cellKey)) {
	x0, x1 := toCellCoord(b.X), toCellCoord(b.Right())
	y0, y1 := toCellCoord(b.Y), toCellCoord(b.Bottom())
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			fn(cellKey{cx: cx, cy: cy})
		}
	}
}
