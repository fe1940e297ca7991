package core

// Clock rate of the system timer. The Linux target emulates a 50MHz
// counter; hardware targets override CLOCK_FREQ when they register
// their own constants.
const (
	ClockFreq    = 50000000
	NsecsPerTick = 1000000000 / ClockFreq
)

// TimerDiff returns a-b as a signed quantity.
// The result is only meaningful while the real distance between the two
// counter values is below 2^31 ticks.
func TimerDiff(a, b uint32) int32 {
	return int32(a - b)
}

// TimerIsBefore reports whether tick a comes before tick b, treating the
// 32-bit counter as wrapping.
func TimerIsBefore(a, b uint32) bool {
	return TimerDiff(a, b) < 0
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * ClockFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / ClockFreq)
}
