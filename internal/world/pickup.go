package world

const (
	CoinSize   = 25
	CoinScore  = 5
	FuelWidth  = 25
	FuelHeight = 30
)

// Pickup drifts left until collected or off the field.
type Pickup struct {
	Speed float64
}

func NewCoin(x, y, speed float64) *Entity {
	e := New(KindCoin, x, y, CoinSize, CoinSize, 1)
	e.Category = CategoryCoin
	e.Collectible = true
	e.Effect = Effect{Kind: EffectCoin, Amount: 1}
	e.ScoreValue = CoinScore
	e.Behavior = &Pickup{Speed: speed}
	return e
}

func NewFuel(x, y, speed float64, amount int) *Entity {
	e := New(KindFuel, x, y, FuelWidth, FuelHeight, 1)
	e.Category = CategoryFuel
	e.Collectible = true
	e.Effect = Effect{Kind: EffectFuel, Amount: amount}
	e.Behavior = &Pickup{Speed: speed}
	return e
}

func (p *Pickup) Update(e *Entity, ctx Context) {
	e.X -= p.Speed
	if e.Right() < ctx.Field().X {
		ctx.Despawn(e)
	}
}
