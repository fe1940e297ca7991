package linux

import "gopper-linux/core"

// NopIRQ is the interrupt control of a host with no interrupt context.
// Every method is safe to call at any time and has no effect.
type NopIRQ struct{}

var _ core.IRQ = NopIRQ{}

func (NopIRQ) Disable() {}

func (NopIRQ) Enable() {}

func (NopIRQ) Save() core.IRQState { return 0 }

func (NopIRQ) Restore(state core.IRQState) {}
