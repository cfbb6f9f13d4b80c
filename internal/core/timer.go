package core

import "time"

// Interval reports when at least a fixed duration has elapsed since the last
// time it fired. Drivers use it to rate-limit progress output.
type Interval struct {
	every time.Duration
	last  time.Time
	now   func() time.Time
}

// NewInterval constructs an Interval firing at most once per d. A
// non-positive d fires on every call.
func NewInterval(d time.Duration) *Interval {
	return &Interval{every: d, now: time.Now}
}

// Due reports whether the interval has elapsed, and restarts it if so. The
// first call always fires.
func (iv *Interval) Due() bool {
	now := iv.now()
	if iv.last.IsZero() || now.Sub(iv.last) >= iv.every {
		iv.last = now
		return true
	}
	return false
}
