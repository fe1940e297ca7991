package linux

import (
	"errors"

	"github.com/rs/zerolog"

	"gopper-linux/core"
)

// PeriodicInterval is how far CheckPeriodic pushes the caller's deadline
// past the scheduled wake time.
const PeriodicInterval = 2 // seconds

// ErrNilCollaborator is returned by NewTimer when a dependency is missing
var ErrNilCollaborator = errors.New("clock, dispatcher and sleeper are required")

// TimerConfig holds timer configuration.
// The tick rate is not configurable: the counter always runs at
// core.ClockFreq so that it agrees with the scheduler's tick constants.
type TimerConfig struct {
	// Logger receives Trace level dispatch events
	Logger zerolog.Logger
}

// DefaultTimerConfig returns the default timer configuration
func DefaultTimerConfig() *TimerConfig {
	return &TimerConfig{
		Logger: zerolog.Nop(),
	}
}

// ScheduledWake is the next wake point expressed in both time domains
type ScheduledWake struct {
	Tick uint32
	Time Timespec
}

// Timer emulates the hardware timer and its interrupt on a Linux host.
//
// There are no interrupts: the main loop calls Poll, which runs the
// dispatcher synchronously on the caller's goroutine once the scheduled
// wake time has passed, and Wait when it has nothing else to do.
// A Timer must only be used from one goroutine.
type Timer struct {
	clock      Clock
	dispatcher Dispatcher
	sleeper    Sleeper
	log        zerolog.Logger

	// Seconds value that maps to tick 0, fixed at construction
	startSec int64

	wake ScheduledWake
}

var _ core.TimerHardware = (*Timer)(nil)

// NewTimer anchors the tick counter to the current clock reading and arms
// the timer so the first Poll dispatches immediately.
func NewTimer(clock Clock, dispatcher Dispatcher, sleeper Sleeper, cfg *TimerConfig) (*Timer, error) {
	if clock == nil || dispatcher == nil || sleeper == nil {
		return nil, ErrNilCollaborator
	}
	if cfg == nil {
		cfg = DefaultTimerConfig()
	}

	t := &Timer{
		clock:      clock,
		dispatcher: dispatcher,
		sleeper:    sleeper,
		log:        cfg.Logger,
	}
	// Keeps (sec - startSec) * ClockFreq small for a long process lifetime
	t.startSec = clock.Now().Sec + 1
	t.Kick()
	return t, nil
}

// StartSec returns the epoch anchor
func (t *Timer) StartSec() int64 {
	return t.startSec
}

// ToTick converts a clock reading to a counter value.
// Sub-tick remainders are truncated.
func (t *Timer) ToTick(ts Timespec) uint32 {
	return uint32((ts.Sec-t.startSec)*core.ClockFreq + ts.Nsec/core.NsecsPerTick)
}

// FromTick converts a counter value to a clock reading relative to the
// current scheduled wake.
func (t *Timer) FromTick(tick uint32) Timespec {
	return t.fromTick(tick, t.wake)
}

func (t *Timer) fromTick(tick uint32, ref ScheduledWake) Timespec {
	diff := core.TimerDiff(tick, ref.Tick)
	return ref.Time.Add(int64(diff) * core.NsecsPerTick)
}

// ReadTime returns the current time in ticks
func (t *Timer) ReadTime() uint32 {
	return t.ToTick(t.clock.Now())
}

// Kick makes the next Poll dispatch
func (t *Timer) Kick() {
	now := t.clock.Now()
	t.wake = ScheduledWake{Tick: t.ToTick(now), Time: now}
}

// rearm converts next using the previous wake as reference so conversion
// error is bounded by the ticks since the last dispatch.
func (t *Timer) rearm(next uint32) {
	t.wake = ScheduledWake{Tick: next, Time: t.fromTick(next, t.wake)}
}

// NextWake returns the scheduled wake point
func (t *Timer) NextWake() ScheduledWake {
	return t.wake
}

// CheckPeriodic reports whether the scheduled wake time has reached the
// deadline in ts. When it has, ts is moved PeriodicInterval seconds past
// the scheduled wake time.
func (t *Timer) CheckPeriodic(ts *Timespec) bool {
	if t.wake.Time.Before(*ts) {
		return false
	}
	*ts = t.wake.Time.AddSeconds(PeriodicInterval)
	return true
}

// Poll dispatches if the scheduled wake time has arrived
func (t *Timer) Poll() {
	if !t.clock.Now().Before(t.wake.Time) {
		t.Dispatch()
	}
}

// Dispatch runs the dispatcher and arms the timer for the tick it returns
func (t *Timer) Dispatch() {
	next := t.dispatcher.DispatchMany()
	t.rearm(next)
	t.log.Trace().
		Uint32("next_tick", next).
		Int64("wake_sec", t.wake.Time.Sec).
		Int64("wake_nsec", t.wake.Time.Nsec).
		Msg("timer rearmed")
}

// Wait blocks until the scheduled wake time or until the sleeper wakes
// early.
func (t *Timer) Wait() {
	t.sleeper.SleepUntil(t.wake.Time)
}
