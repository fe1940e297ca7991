//go:build tinygo && cortexm

package core

import "runtime/interrupt"

// HardwareIRQ masks the CPU interrupts of a Cortex-M microcontroller.
//
// The saved state is the PRIMASK register: 0 means interrupts enabled.
// Enable relies on that encoding, so this type is only built for Cortex-M
// targets.
type HardwareIRQ struct{}

var _ IRQ = HardwareIRQ{}

// primaskEnabled is the PRIMASK value with interrupts unmasked
const primaskEnabled interrupt.State = 0

// Disable disables interrupts
func (HardwareIRQ) Disable() {
	interrupt.Disable()
}

// Enable re-enables interrupts unconditionally
func (HardwareIRQ) Enable() {
	interrupt.Restore(primaskEnabled)
}

// Save disables interrupts and returns the previous state
func (HardwareIRQ) Save() IRQState {
	return IRQState(interrupt.Disable())
}

// Restore restores the interrupt state
func (HardwareIRQ) Restore(state IRQState) {
	interrupt.Restore(interrupt.State(state))
}
