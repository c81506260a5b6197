package world

const (
	BossWidth  = 150
	BossHeight = 60
	BossScore  = 100

	bossMoveEvery = 10 // ticks between heading changes
	bossSpeed     = 6
)

// Boss hovers near the right edge, changes vertical heading at random every
// few ticks, fires, and raises a shield that absorbs all damage while up.
type Boss struct {
	FireProbability   float64
	ShieldProbability float64
	ShieldTicks       int

	heading    int
	shieldLeft int
	moved      int
}

func NewBoss(x, y float64, health int, fireProbability, shieldProbability float64, shieldTicks int) *Entity {
	e := New(KindBoss, x, y, BossWidth, BossHeight, health)
	e.Category = CategoryBoss
	e.ScoreValue = BossScore
	e.Behavior = &Boss{
		FireProbability:   fireProbability,
		ShieldProbability: shieldProbability,
		ShieldTicks:       shieldTicks,
	}
	return e
}

func (b *Boss) Shielded() bool { return b.shieldLeft > 0 }

func (b *Boss) Update(e *Entity, ctx Context) {
	r := ctx.RNG()
	if b.moved%bossMoveEvery == 0 {
		b.heading = r.Intn(3) - 1
	}
	b.moved++
	e.Y = ctx.Field().ClampY(e.Y+float64(b.heading)*bossSpeed, e.H)

	if b.shieldLeft > 0 {
		b.shieldLeft--
	} else if r.Bernoulli(b.ShieldProbability) {
		b.shieldLeft = b.ShieldTicks
	}

	if r.Bernoulli(b.FireProbability) {
		ctx.Spawn(NewProjectile(e.X-ProjectileWidth, e.Y+e.H/2-ProjectileHeight/2, ProjectileSpeed, false))
	}
}
