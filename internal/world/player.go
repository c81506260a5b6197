package world

const (
	PlayerWidth  = 75
	PlayerHeight = 28
)

// Player is the user plane's behaviour. Input arrives upstream as discrete
// commands that only record intent; the next Update applies them.
type Player struct {
	Speed        float64
	FireCooldown int // ticks between shots

	// Fuel drains by one unit every FuelDrainEvery ticks. MaxFuel 0 turns
	// fuel off entirely.
	Fuel           int
	MaxFuel        int
	FuelDrainEvery int

	dir      int
	fire     bool
	cooldown int
	shots    int
}

// NewPlayer builds the user plane with default handling. Tune the returned
// behaviour before the first tick if the level needs something else.
func NewPlayer(x, y float64, health int) (*Entity, *Player) {
	p := &Player{Speed: 8, FireCooldown: 3}
	e := New(KindPlayer, x, y, PlayerWidth, PlayerHeight, health)
	e.Friendly = true
	e.Behavior = p
	return e, p
}

func (p *Player) MoveUp()   { p.dir = -1 }
func (p *Player) MoveDown() { p.dir = 1 }
func (p *Player) Stop()     { p.dir = 0 }
func (p *Player) Fire()     { p.fire = true }

// Shots returns the number of projectiles fired so far.
func (p *Player) Shots() int { return p.shots }

func (p *Player) Update(e *Entity, ctx Context) {
	field := ctx.Field()
	e.Y = field.ClampY(e.Y+float64(p.dir)*p.Speed, e.H)

	if p.cooldown > 0 {
		p.cooldown--
	}
	if p.fire && p.cooldown == 0 {
		ctx.Spawn(NewProjectile(e.X+e.W, e.Y+e.H/2-ProjectileHeight/2, ProjectileSpeed, true))
		p.cooldown = p.FireCooldown
		p.shots++
	}
	p.fire = false

	if p.MaxFuel > 0 && p.FuelDrainEvery > 0 && p.Fuel > 0 && ctx.Tick()%uint64(p.FuelDrainEvery) == 0 {
		p.Fuel--
	}
}

func (p *Player) Collect(eff Effect) {
	if eff.Kind != EffectFuel {
		return
	}
	p.Fuel += eff.Amount
	if p.MaxFuel > 0 && p.Fuel > p.MaxFuel {
		p.Fuel = p.MaxFuel
	}
}
