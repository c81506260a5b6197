package world

const (
	EnemyWidth  = 75
	EnemyHeight = 30
	EnemyScore  = 10
)

// EnemyPlane flies right to left and fires at random.
type EnemyPlane struct {
	Speed           float64
	FireProbability float64 // per tick
}

func NewEnemyPlane(x, y float64, health int, speed, fireProbability float64) *Entity {
	e := New(KindEnemyPlane, x, y, EnemyWidth, EnemyHeight, health)
	e.Category = CategoryEnemy
	e.ScoreValue = EnemyScore
	e.Behavior = &EnemyPlane{Speed: speed, FireProbability: fireProbability}
	return e
}

func (p *EnemyPlane) Update(e *Entity, ctx Context) {
	e.X -= p.Speed
	if e.Right() < ctx.Field().X {
		ctx.Despawn(e)
		return
	}
	if ctx.RNG().Bernoulli(p.FireProbability) {
		ctx.Spawn(NewProjectile(e.X-ProjectileWidth, e.Y+e.H/2-ProjectileHeight/2, ProjectileSpeed, false))
	}
}
