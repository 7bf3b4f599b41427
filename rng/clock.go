package rng

import "sync/atomic"

// SeedClock hands out clock seeds that never repeat: a reading at or behind the
// last issued seed is stepped to last+1.
type SeedClock struct {
	last atomic.Int64
	now  func() int64
}

// NewSeedClock creates a SeedClock reading now, or the wall clock when now is nil.
func NewSeedClock(now func() int64) *SeedClock {
	if now == nil {
		now = DefaultSeed
	}
	return &SeedClock{now: now}
}

// Next returns a seed strictly greater than every seed returned before.
func (c *SeedClock) Next() int64 {
	for {
		last := c.last.Load()
		next := max(c.now(), last+1)
		if c.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

var processClock = NewSeedClock(nil)

// NextSeed draws from a process-wide SeedClock.
func NextSeed() int64 {
	return processClock.Next()
}
