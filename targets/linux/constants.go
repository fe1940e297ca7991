package linux

import "gopper-linux/core"

// RegisterConstants publishes the target constants
func RegisterConstants() {
	core.RegisterConstant("MCU", "linux")
	core.RegisterConstant("CLOCK_FREQ", uint32(core.ClockFreq))
}
