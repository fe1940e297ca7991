package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingRingOrderAndOverwrite(t *testing.T) {
	var r TimingRing
	assert.Empty(t, r.Events())

	for i := uint32(1); i <= TimingRingSize+5; i++ {
		r.Record(EvtTimerFire, i, i*10, 0)
	}

	events := r.Events()
	require.Len(t, events, TimingRingSize)
	assert.Equal(t, uint32(6), events[0].Clock)
	assert.Equal(t, uint32(TimingRingSize+5), events[len(events)-1].Clock)

	r.Clear()
	assert.Empty(t, r.Events())
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "TIMER_SCHED", EventName(EvtTimerSchedule))
	assert.Equal(t, "TIMER_FIRE", EventName(EvtTimerFire))
	assert.Equal(t, "TIMER_DEFER", EventName(EvtTimerDefer))
	assert.Equal(t, "UNKNOWN", EventName(99))
}

func TestSchedulerRecordsTiming(t *testing.T) {
	s, hw, _ := newTestScheduler(100)

	tm := &Timer{WakeTime: 150, Handler: func(*Timer) uint8 { return SF_DONE }}
	s.AddTimer(tm)
	hw.now = 170
	s.DispatchMany()

	events := s.Timing()
	require.Len(t, events, 2)
	assert.Equal(t, TimingEvent{EventType: EvtTimerSchedule, Clock: 100, Value1: 150}, events[0])
	assert.Equal(t, TimingEvent{EventType: EvtTimerFire, Clock: 170, Value1: 150, Value2: 20}, events[1])
}
