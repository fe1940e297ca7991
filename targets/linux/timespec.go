package linux

import "time"

// NsecsPerSec is the number of nanoseconds in one second
const NsecsPerSec = 1000000000

// Timespec is a monotonic wall-clock reading.
// Nsec is always in [0, NsecsPerSec).
type Timespec struct {
	Sec  int64
	Nsec int64
}

// Before reports whether ts is strictly earlier than other
func (ts Timespec) Before(other Timespec) bool {
	return ts.Sec < other.Sec || (ts.Sec == other.Sec && ts.Nsec < other.Nsec)
}

// Add returns ts shifted by ns nanoseconds. ns may be negative.
func (ts Timespec) Add(ns int64) Timespec {
	ts.Sec += ns / NsecsPerSec
	ts.Nsec += ns % NsecsPerSec
	if ts.Nsec >= NsecsPerSec {
		ts.Sec++
		ts.Nsec -= NsecsPerSec
	} else if ts.Nsec < 0 {
		ts.Sec--
		ts.Nsec += NsecsPerSec
	}
	return ts
}

// AddSeconds returns ts shifted by whole seconds
func (ts Timespec) AddSeconds(sec int64) Timespec {
	ts.Sec += sec
	return ts
}

// Sub returns ts-other in nanoseconds
func (ts Timespec) Sub(other Timespec) int64 {
	return (ts.Sec-other.Sec)*NsecsPerSec + (ts.Nsec - other.Nsec)
}

// Duration returns ts-other as a time.Duration
func (ts Timespec) Duration(other Timespec) time.Duration {
	return time.Duration(ts.Sub(other))
}
