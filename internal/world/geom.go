package world

// Rect is an axis-aligned bounding box. X,Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// ClampY returns the top coordinate that keeps a box of height h inside r.
func (r Rect) ClampY(y, h float64) float64 {
	if y < r.Y {
		return r.Y
	}
	if y+h > r.Bottom() {
		return r.Bottom() - h
	}
	return y
}
