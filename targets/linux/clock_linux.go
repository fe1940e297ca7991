//go:build linux

package linux

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MonotonicClock reads CLOCK_MONOTONIC.
// A failing or regressing clock is a fatal environment fault and panics.
type MonotonicClock struct {
	last Timespec
}

var _ Clock = (*MonotonicClock)(nil)

// NewMonotonicClock returns a clock backed by CLOCK_MONOTONIC
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Now returns the current monotonic time
func (c *MonotonicClock) Now() Timespec {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic(fmt.Errorf("clock_gettime(CLOCK_MONOTONIC): %w", err))
	}
	now := Timespec{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}
	if now.Before(c.last) {
		panic(fmt.Sprintf("monotonic clock regressed: %d.%09d < %d.%09d",
			now.Sec, now.Nsec, c.last.Sec, c.last.Nsec))
	}
	c.last = now
	return now
}

func toUnixTimespec(ts Timespec) unix.Timespec {
	return unix.NsecToTimespec(ts.Sec*NsecsPerSec + ts.Nsec)
}
