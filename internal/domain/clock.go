package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze report timestamps
// via SetClock.
var clock = clockwork.NewRealClock()

// KST is the fixed +09:00 zone used for report timestamps and forecast buckets.
var KST = time.FixedZone("KST", 9*60*60)

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time in KST from the package clock.
func Now() time.Time {
	return clock.Now().In(KST)
}
