package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

const (
	// IdleTicks is how far ahead DispatchMany reports the next wake
	// when no timer is pending. Must stay well below 2^31.
	IdleTicks = ClockFreq

	// TimerRepeatTicks bounds how long DispatchMany keeps running
	// back-to-back timers before it yields to the main loop.
	TimerRepeatTicks = ClockFreq / 10000 // 100us

	// TimerDeferRepeatTicks is the delay requested after a yield.
	TimerDeferRepeatTicks = ClockFreq / 200000 // 5us

	// TimerMinTryTicks is the window in which a timer that is not yet due
	// is waited for in DispatchMany instead of being left for the next
	// wakeup.
	TimerMinTryTicks = ClockFreq / 500000 // 2us
)

// TimerHardware is the timer backend the scheduler reads time from.
// Kick asks the backend to run DispatchMany as soon as possible.
type TimerHardware interface {
	ReadTime() uint32
	Kick()
}

// SchedulerStats counts dispatch activity
type SchedulerStats struct {
	Dispatched uint64 // Timer handlers run
	Deferred   uint64 // DispatchMany calls that yielded with work still due
}

// Scheduler keeps pending timers sorted by wake time and runs them
// when the timer backend dispatches.
// It is not safe for concurrent use; on targets with real interrupts the
// list is protected by masking them.
type Scheduler struct {
	hw     TimerHardware
	irq    IRQ
	list   *Timer
	stats  SchedulerStats
	timing TimingRing
}

// NewScheduler creates a scheduler that masks interrupts with irq.
// The timer backend usually needs the scheduler as its dispatcher, so it
// is attached afterwards with SetHardware.
func NewScheduler(irq IRQ) *Scheduler {
	return &Scheduler{irq: irq}
}

// SetHardware sets the timer backend. It must be called before the first
// DispatchMany. Timers added before it are queued without kicking.
func (s *Scheduler) SetHardware(hw TimerHardware) {
	s.hw = hw
}

// AddTimer schedules t. If t becomes the earliest pending timer the
// backend is kicked so the new deadline is noticed.
func (s *Scheduler) AddTimer(t *Timer) {
	state := s.irq.Save()
	defer s.irq.Restore(state)

	s.insertTimer(t)
	if s.hw == nil {
		return
	}
	s.timing.Record(EvtTimerSchedule, s.hw.ReadTime(), t.WakeTime, 0)
	if s.list == t {
		s.hw.Kick()
	}
}

// DelTimer removes t if it is pending
func (s *Scheduler) DelTimer(t *Timer) {
	state := s.irq.Save()
	defer s.irq.Restore(state)

	if s.list == t {
		s.list = t.Next
		t.Next = nil
		return
	}
	for cur := s.list; cur != nil; cur = cur.Next {
		if cur.Next == t {
			cur.Next = t.Next
			t.Next = nil
			return
		}
	}
}

// insertTimer inserts a timer in sorted order by WakeTime.
// Timers with equal wake times run in insertion order.
func (s *Scheduler) insertTimer(t *Timer) {
	if s.list == nil || TimerIsBefore(t.WakeTime, s.list.WakeTime) {
		t.Next = s.list
		s.list = t
		return
	}

	current := s.list
	for current.Next != nil && !TimerIsBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// DispatchMany runs all due timers and returns the tick at which it
// must be called again. A timer due within TimerMinTryTicks is spun for
// and run in the same call.
func (s *Scheduler) DispatchMany() uint32 {
	if s.hw == nil {
		panic("scheduler: DispatchMany called before SetHardware")
	}

	repeatUntil := s.hw.ReadTime() + TimerRepeatTicks
	for {
		now := s.hw.ReadTime()
		head := s.list
		if head == nil {
			return now + IdleTicks
		}
		diff := TimerDiff(head.WakeTime, now)
		if diff > TimerMinTryTicks {
			return head.WakeTime
		}
		if TimerIsBefore(repeatUntil, now) {
			next := now + TimerDeferRepeatTicks
			s.stats.Deferred++
			s.timing.Record(EvtTimerDefer, now, next, 0)
			return next
		}
		for diff > 0 {
			now = s.hw.ReadTime()
			diff = TimerDiff(head.WakeTime, now)
		}
		s.runTimer(head, now)
	}
}

func (s *Scheduler) runTimer(t *Timer, now uint32) {
	state := s.irq.Save()
	s.list = t.Next
	t.Next = nil // Clear Next pointer to avoid circular references
	s.irq.Restore(state)

	s.stats.Dispatched++
	s.timing.Record(EvtTimerFire, now, t.WakeTime, uint32(TimerDiff(now, t.WakeTime)))
	if t.Handler(t) == SF_RESCHEDULE {
		state = s.irq.Save()
		s.insertTimer(t)
		s.irq.Restore(state)
	}
}

// Pending returns the number of scheduled timers
func (s *Scheduler) Pending() int {
	n := 0
	for cur := s.list; cur != nil; cur = cur.Next {
		n++
	}
	return n
}

// Stats returns dispatch counters
func (s *Scheduler) Stats() SchedulerStats {
	return s.stats
}

// Timing returns the recent timing events from oldest to newest
func (s *Scheduler) Timing() []TimingEvent {
	return s.timing.Events()
}
