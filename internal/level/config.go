package level

import (
	"errors"
	"fmt"
)

// Config is the per-level inbound configuration. Zero values fall back to
// engine defaults where noted.
type Config struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`

	PlayerHealth   int `yaml:"player_health"` // 0 = engine default
	PlayerFuel     int `yaml:"player_fuel"`   // 0 = fuel disabled
	FuelDrainEvery int `yaml:"fuel_drain_every"`
	TimerTicks     int `yaml:"timer_ticks"` // 0 = no timer

	Enemy SpawnRule `yaml:"enemy"`
	Coin  SpawnRule `yaml:"coin"`
	Fuel  SpawnRule `yaml:"fuel"`
	Boss  *BossRule `yaml:"boss,omitempty"`

	Win  []PredicateSpec `yaml:"win"`
	Lose []PredicateSpec `yaml:"lose"`
}

// SpawnRule drives one population category.
type SpawnRule struct {
	Cap             int     `yaml:"cap"`
	MaxBurst        int     `yaml:"max_burst"`
	Probability     float64 `yaml:"probability"`
	Health          int     `yaml:"health"`
	Speed           float64 `yaml:"speed"`
	FireProbability float64 `yaml:"fire_probability"` // enemies only
	Amount          int     `yaml:"amount"`           // fuel per token
}

// BossRule spawns a single boss once the kill count reaches AfterKills.
type BossRule struct {
	AfterKills        int     `yaml:"after_kills"`
	Health            int     `yaml:"health"`
	FireProbability   float64 `yaml:"fire_probability"`
	ShieldProbability float64 `yaml:"shield_probability"`
	ShieldTicks       int     `yaml:"shield_ticks"`
}

// PredicateSpec names a win or loss condition. Kind "script" calls the Lua
// function named by Script.
type PredicateSpec struct {
	Kind   string `yaml:"kind"`
	Value  int    `yaml:"value,omitempty"`
	Script string `yaml:"script,omitempty"`
}

// Validate reports every problem with the definition at once.
func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.PlayerHealth < 0 {
		errs = append(errs, fmt.Errorf("player_health %d is negative", c.PlayerHealth))
	}
	if c.PlayerFuel < 0 || c.FuelDrainEvery < 0 {
		errs = append(errs, errors.New("fuel settings must not be negative"))
	}
	if c.TimerTicks < 0 {
		errs = append(errs, fmt.Errorf("timer_ticks %d is negative", c.TimerTicks))
	}
	errs = append(errs, c.Enemy.validate("enemy"), c.Coin.validate("coin"), c.Fuel.validate("fuel"))
	if b := c.Boss; b != nil {
		if b.Health <= 0 {
			errs = append(errs, fmt.Errorf("boss: health %d must be positive", b.Health))
		}
		if b.AfterKills < 0 || b.ShieldTicks < 0 {
			errs = append(errs, errors.New("boss: after_kills and shield_ticks must not be negative"))
		}
		errs = append(errs, probability("boss.fire_probability", b.FireProbability),
			probability("boss.shield_probability", b.ShieldProbability))
	}
	for _, p := range append(append([]PredicateSpec{}, c.Win...), c.Lose...) {
		errs = append(errs, p.validate())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("level %q: %w", c.Name, err)
	}
	return nil
}

// MustValidate panics on an invalid definition. Levels built in code are
// programming errors when broken.
func (c Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

func (r SpawnRule) validate(name string) error {
	var errs []error
	if r.Cap < 0 || r.MaxBurst < 0 {
		errs = append(errs, fmt.Errorf("%s: cap and max_burst must not be negative", name))
	}
	if r.Health < 0 {
		errs = append(errs, fmt.Errorf("%s: health %d is negative", name, r.Health))
	}
	if r.Speed < 0 || r.Amount < 0 {
		errs = append(errs, fmt.Errorf("%s: speed and amount must not be negative", name))
	}
	errs = append(errs, probability(name+".probability", r.Probability),
		probability(name+".fire_probability", r.FireProbability))
	return errors.Join(errs...)
}

func probability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s %g outside [0,1]", name, p)
	}
	return nil
}

func (p PredicateSpec) validate() error {
	switch p.Kind {
	case KindPlayerDestroyed, KindTimer, KindFuelExhausted, KindBossDefeated:
		return nil
	case KindKills, KindCoins, KindScore:
		if p.Value <= 0 {
			return fmt.Errorf("predicate %s: value must be positive", p.Kind)
		}
		return nil
	case KindScript:
		if p.Script == "" {
			return errors.New("predicate script: function name is empty")
		}
		return nil
	}
	return fmt.Errorf("unknown predicate kind %q", p.Kind)
}
