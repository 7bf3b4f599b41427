/*
Package rng provides the deterministic random sources used for maze generation.

A Source is a plain function returning uniform values in [0, 1). Generators take
a Source explicitly instead of reading process-wide random state, so the same
seed always reproduces the same maze.
*/
package rng

import "time"

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Source yields uniform pseudo-random values in [0, 1).
type Source func() float64

// LCG is the linear congruential generator seed = (seed*9301 + 49297) % 233280.
type LCG struct {
	state int64
}

// NewLCG creates an LCG for the given seed. Negative seeds are folded into the
// modulus range, which leaves the produced sequence unchanged for positive seeds.
func NewLCG(seed int64) *LCG {
	s := seed % modulus
	if s < 0 {
		s += modulus
	}
	return &LCG{state: s}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = (l.state*multiplier + increment) % modulus
	return float64(l.state) / modulus
}

// Seeded returns a Source backed by a fresh LCG.
func Seeded(seed int64) Source {
	return NewLCG(seed).Float64
}

// DefaultSeed derives a seed from the wall clock, for non-reproducible output.
func DefaultSeed() int64 {
	return time.Now().UnixMilli()
}

// Intn maps one draw of src onto [0, n).
func Intn(src Source, n int) int {
	i := int(src() * float64(n))
	if i >= n {
		return n - 1
	}
	return i
}
