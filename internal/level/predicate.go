package level

import "fmt"

// Predicate kinds accepted in level definitions.
const (
	KindPlayerDestroyed = "player_destroyed"
	KindKills           = "kills"
	KindCoins           = "coins"
	KindScore           = "score"
	KindTimer           = "timer"
	KindFuelExhausted   = "fuel_exhausted"
	KindBossDefeated    = "boss_defeated"
	KindScript          = "script"
)

// Stats is the read-only view a predicate sees at the end of a tick.
type Stats struct {
	Tick            uint64
	Score           int
	Kills           int
	Coins           int
	PlayerHealth    int
	PlayerDestroyed bool
	Fuel            int
	FuelEnabled     bool
	TimerRemaining  int
	TimerEnabled    bool
	BossDefeated    bool
}

// Predicate is a win or loss condition supplied by the level.
type Predicate func(Stats) bool

// ScriptResolver turns a script function name into a Predicate.
type ScriptResolver interface {
	Predicate(name string) (Predicate, error)
}

func Never() Predicate { return func(Stats) bool { return false } }

func PlayerDestroyed() Predicate {
	return func(s Stats) bool { return s.PlayerDestroyed || s.PlayerHealth <= 0 }
}

func KillsAtLeast(n int) Predicate { return func(s Stats) bool { return s.Kills >= n } }

func CoinsAtLeast(n int) Predicate { return func(s Stats) bool { return s.Coins >= n } }

func ScoreAtLeast(n int) Predicate { return func(s Stats) bool { return s.Score >= n } }

func TimerExpired() Predicate {
	return func(s Stats) bool { return s.TimerEnabled && s.TimerRemaining <= 0 }
}

func FuelExhausted() Predicate {
	return func(s Stats) bool { return s.FuelEnabled && s.Fuel <= 0 }
}

func BossDefeated() Predicate { return func(s Stats) bool { return s.BossDefeated } }

// AnyOf is true when at least one of ps is.
func AnyOf(ps ...Predicate) Predicate {
	return func(s Stats) bool {
		for _, p := range ps {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// Build resolves a single spec. scripts may be nil when no spec uses Lua.
func (p PredicateSpec) Build(scripts ScriptResolver) (Predicate, error) {
	switch p.Kind {
	case KindPlayerDestroyed:
		return PlayerDestroyed(), nil
	case KindKills:
		return KillsAtLeast(p.Value), nil
	case KindCoins:
		return CoinsAtLeast(p.Value), nil
	case KindScore:
		return ScoreAtLeast(p.Value), nil
	case KindTimer:
		return TimerExpired(), nil
	case KindFuelExhausted:
		return FuelExhausted(), nil
	case KindBossDefeated:
		return BossDefeated(), nil
	case KindScript:
		if scripts == nil {
			return nil, fmt.Errorf("predicate %q: no script engine", p.Script)
		}
		return scripts.Predicate(p.Script)
	}
	return nil, fmt.Errorf("unknown predicate kind %q", p.Kind)
}

// BuildAny combines specs with AnyOf. An empty list never fires.
func BuildAny(specs []PredicateSpec, scripts ScriptResolver) (Predicate, error) {
	if len(specs) == 0 {
		return Never(), nil
	}
	ps := make([]Predicate, 0, len(specs))
	for _, spec := range specs {
		p, err := spec.Build(scripts)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return AnyOf(ps...), nil
}
