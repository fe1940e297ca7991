package linux

// Clock reads the host monotonic clock.
// Successive calls never return a time earlier than a previous call.
type Clock interface {
	Now() Timespec
}

// Sleeper blocks the process until the monotonic clock reaches a deadline.
// It may return early; callers re-check the time after it returns.
type Sleeper interface {
	SleepUntil(deadline Timespec)
}

// Dispatcher runs due scheduled work and returns the tick of the next
// thing that must run.
type Dispatcher interface {
	DispatchMany() uint32
}
