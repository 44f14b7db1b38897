package pbn

import (
	"math"
	"time"
)

// Random is a seedable pseudo-random source producing floats in [0,1) and
// bounded integers. It exists so that a fixed seed reproduces byte-identical
// K-means clustering runs; cryptographic quality is explicitly not a goal.
//
// Algorithm: state s advances by one on every call; the returned float is
// the fractional part of sin(s)*10000. This mirrors the reference
// implementation's generator exactly so a given seed always yields the same
// stream.
type Random struct {
	seed float64
}

// NewRandom creates a PRNG from an explicit seed.
func NewRandom(seed int64) *Random {
	return &Random{seed: float64(seed)}
}

// NewRandomSeeded creates a PRNG seeded from the current wall clock, for
// callers that did not request reproducibility.
func NewRandomSeeded() *Random {
	return &Random{seed: float64(time.Now().UnixMilli())}
}

// Next returns the next pseudo-random float in [0, 1).
func (r *Random) Next() float64 {
	x := math.Sin(r.seed) * 10000
	r.seed++
	return x - math.Floor(x)
}

// RandInt returns a pseudo-random integer in [lo, hi] inclusive.
func (r *Random) RandInt(lo, hi int) int {
	return int(r.Next()*float64(hi-lo+1)) + lo
}
