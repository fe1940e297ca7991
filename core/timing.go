package core

// TimingEvent captures a timer event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtTimerSchedule = 1 // Timer added; Value1 = wake time
	EvtTimerFire     = 2 // Timer ran; Value1 = wake time, Value2 = ticks late
	EvtTimerDefer    = 3 // Dispatch yielded; Value1 = next wake time
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

// TimingRing is a fixed-size ring of the most recent timing events.
// Recording never allocates.
type TimingRing struct {
	events [TimingRingSize]TimingEvent
	head   uint8 // Next write position
}

// Record captures a timing event, overwriting the oldest one
func (r *TimingRing) Record(eventType uint8, clock, value1, value2 uint32) {
	idx := r.head
	r.events[idx] = TimingEvent{
		EventType: eventType,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	r.head = (idx + 1) % TimingRingSize
}

// Events returns recorded events from oldest to newest
func (r *TimingRing) Events() []TimingEvent {
	out := make([]TimingEvent, 0, TimingRingSize)
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := r.events[(r.head+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// Clear empties the ring
func (r *TimingRing) Clear() {
	*r = TimingRing{}
}

// EventName returns a short name for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtTimerSchedule:
		return "TIMER_SCHED"
	case EvtTimerFire:
		return "TIMER_FIRE"
	case EvtTimerDefer:
		return "TIMER_DEFER"
	default:
		return "UNKNOWN"
	}
}
