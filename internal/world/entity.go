package world

import (
	"fmt"

	"github.com/skyraid/skyraid/internal/core/ecs"
)

// Kind names the concrete actor an Entity represents.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemyPlane
	KindBoss
	KindProjectile
	KindCoin
	KindFuel
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemyPlane:
		return "enemy_plane"
	case KindBoss:
		return "boss"
	case KindProjectile:
		return "projectile"
	case KindCoin:
		return "coin"
	case KindFuel:
		return "fuel"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Category groups entities for population caps.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryEnemy
	CategoryBoss
	CategoryCoin
	CategoryFuel
	NumCategories
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryEnemy:
		return "enemy"
	case CategoryBoss:
		return "boss"
	case CategoryCoin:
		return "coin"
	case CategoryFuel:
		return "fuel"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectCoin
	EffectFuel
)

func (k EffectKind) String() string {
	switch k {
	case EffectCoin:
		return "coin"
	case EffectFuel:
		return "fuel"
	}
	return "none"
}

// Effect is what a collectible grants when consumed.
type Effect struct {
	Kind   EffectKind
	Amount int
}

// Entity is the flat data record shared by every actor. Per-kind behaviour
// lives in Behavior and is discovered through the trait interfaces in
// traits.go.
type Entity struct {
	ID       ecs.EntityID
	Kind     Kind
	Category Category

	X, Y float64
	W, H float64

	Health    int
	Destroyed bool

	Friendly         bool
	Collectible      bool
	DestroyOnContact bool
	Projectile       bool

	Effect     Effect // collectibles only
	ScoreValue int

	Behavior any
}

// New builds a bare entity. Health must be positive: a live entity with
// zero health cannot exist.
func New(kind Kind, x, y, w, h float64, health int) *Entity {
	if health <= 0 {
		panic(fmt.Sprintf("world: %s created with health %d", kind, health))
	}
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("world: %s created with size %gx%g", kind, w, h))
	}
	return &Entity{Kind: kind, X: x, Y: y, W: w, H: h, Health: health}
}

func (e *Entity) Bounds() Rect { return Rect{X: e.X, Y: e.Y, W: e.W, H: e.H} }

// Right is the x coordinate of the entity's right edge.
func (e *Entity) Right() float64 { return e.X + e.W }

// Hit applies one damage event and reports whether this call destroyed the
// entity. Health reaching zero and Destroyed flip together. Destroyed and
// shielded entities ignore hits.
func (e *Entity) Hit(damage int) bool {
	if e.Destroyed {
		return false
	}
	if s, ok := e.Behavior.(Shielded); ok && s.Shielded() {
		return false
	}
	e.Health -= damage
	if e.Health <= 0 || e.DestroyOnContact {
		e.Health = 0
		e.Destroyed = true
		return true
	}
	return false
}

// Destroy marks the entity dead without touching health (consumed pickups,
// actors leaving the field).
func (e *Entity) Destroy() { e.Destroyed = true }

// Registry is the two-phase entity registry for one level.
type Registry = ecs.Registry[Entity]

func NewRegistry() *Registry { return ecs.NewRegistry[Entity]() }

// View is the read-only projection handed to renderers.
type View struct {
	ID       ecs.EntityID
	Kind     Kind
	Bounds   Rect
	Health   int
	Friendly bool
}

func (e *Entity) View() View {
	return View{ID: e.ID, Kind: e.Kind, Bounds: e.Bounds(), Health: e.Health, Friendly: e.Friendly}
}
