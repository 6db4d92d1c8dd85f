package core

import "math/rand"

// Source produces uniformly distributed integers in [0, n).
// *rand.Rand satisfies it, as does *SeededRandom.
type Source interface {
	Intn(n int) int
}

// LCG constants used for stage generation.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// SeededRandom is the linear congruential generator that keys stage layouts.
// The same seed always yields the same sequence.
type SeededRandom struct {
	seed int64
}

// NewSeededRandom creates a generator from a seed.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{seed: seed}
}

// Next advances the generator and returns a value in [0, 1).
func (r *SeededRandom) Next() float64 {
	r.seed = (r.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	if r.seed < 0 {
		r.seed += lcgModulus
	}
	return float64(r.seed) / lcgModulus
}

// Intn returns floor(Next() * n). It returns 0 when n <= 0.
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Next() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// NewRand returns a math/rand generator for gravity refills.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
