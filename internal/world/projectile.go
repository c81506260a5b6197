package world

const (
	ProjectileWidth  = 20
	ProjectileHeight = 6
	ProjectileSpeed  = 15
)

// Projectile flies in a straight horizontal line and leaves the level once
// it is off the field.
type Projectile struct {
	DX float64
}

// NewProjectile builds a one-hit projectile moving dx per tick. friendly
// picks the side it damages.
func NewProjectile(x, y, dx float64, friendly bool) *Entity {
	e := New(KindProjectile, x, y, ProjectileWidth, ProjectileHeight, 1)
	e.Friendly = friendly
	e.Projectile = true
	e.DestroyOnContact = true
	if !friendly {
		dx = -abs(dx)
	}
	e.Behavior = &Projectile{DX: dx}
	return e
}

func (p *Projectile) Update(e *Entity, ctx Context) {
	e.X += p.DX
	if !ctx.Field().Intersects(e.Bounds()) {
		ctx.Despawn(e)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
