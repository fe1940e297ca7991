package core

// IRQState is the saved interrupt enable state returned by IRQ.Save
type IRQState uintptr

// IRQ masks interrupts around critical sections.
// Targets without interrupt context provide an implementation whose
// methods do nothing.
type IRQ interface {
	Disable()
	Enable()
	Save() IRQState
	Restore(state IRQState)
}
