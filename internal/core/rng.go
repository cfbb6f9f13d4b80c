package core

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// ClockSeed returns a seed derived from the wall clock, for runs that should
// not repeat.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntRange returns a value in [lo, hi). When hi <= lo it returns lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// FillUniform fills buf with values in [0, scale).
func (r *RNG) FillUniform(buf []float64, scale float64) {
	for i := range buf {
		buf[i] = r.r.Float64() * scale
	}
}
