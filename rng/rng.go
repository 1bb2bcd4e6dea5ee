// Package rng is the sole source of randomness for the engine. Every roll
// site (hit checks, damage, AI choice, map generation, respawn decisions)
// draws from a Source constructed from a fixed seed so that identical input
// sequences reproduce identical results (spec §5, §8 Determinism).
package rng

import "math/rand"

// Source wraps a seeded math/rand generator. It is never the package-level
// global rand functions: those draw from a process-wide, unseedable stream
// and would break determinism the instant two engines ran in the same
// process. Grounded in ships/gems.go's `rand.New(rand.NewSource(...))`.
type Source struct {
	r *rand.Rand
}

// New constructs a Source from a fixed seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// D20 rolls a single twenty-sided die, returning a value in [1, 20].
func (s *Source) D20() int {
	return s.r.Intn(20) + 1
}

// Dice rolls an ndm-style expression (e.g. count=1, sides=6 for "1d6") and
// returns the sum, each die in [1, sides].
func (s *Source) Dice(count, sides int) int {
	if count <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += s.r.Intn(sides) + 1
	}
	return total
}

// Chance reports whether a draw from [0,1) is strictly less than p — the
// engine-wide "roll < chance ⇒ hit" convention (spec §4.4, §8).
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Shuffle randomizes n elements in place using the Fisher-Yates swap swap
// function, mirroring rand.Rand.Shuffle's contract.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Perm returns a pseudo-random permutation of [0,n).
func (s *Source) Perm(n int) []int {
	return s.r.Perm(n)
}

// Bytes fills and returns an n-byte slice drawn from this source, for
// callers that need a deterministic identifier (e.g. a generated door
// entity's id, spec §5/§8: "the RNG must be the sole source of randomness
// for ... map generation") rather than a wall-clock-derived one.
func (s *Source) Bytes(n int) []byte {
	b := make([]byte, n)
	s.r.Read(b)
	return b
}
