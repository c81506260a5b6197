// Package rng is the single source of randomness for a simulation. Spawning
// and fire decisions draw from one seeded Source so a level replays
// identically from the same seed.
package rng

import "math/rand"

// Source wraps a seeded math/rand generator. Not safe for concurrent use;
// each Simulation owns its own.
type Source struct {
	r     *rand.Rand
	seed  int64
	draws uint64
}

func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed)), seed: seed}
}

func (s *Source) Seed() int64 { return s.seed }

// Draws returns how many values have been consumed so far.
func (s *Source) Draws() uint64 { return s.draws }

// Bernoulli consumes exactly one draw and reports success with probability p.
// p <= 0 never succeeds, p >= 1 always does.
func (s *Source) Bernoulli(p float64) bool {
	return s.Float64() < p
}

func (s *Source) Float64() float64 {
	s.draws++
	return s.r.Float64()
}

// Range returns a value in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Float64()*(hi-lo)
}

func (s *Source) Intn(n int) int {
	s.draws++
	return s.r.Intn(n)
}
