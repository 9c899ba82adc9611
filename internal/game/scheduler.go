package game

import (
	"github.com/zyedidia/generic/heap"
)

// timer is one deferred callback. Timers due on the same tick fire in the
// order they were scheduled.
type timer struct {
	due   int
	seq   int
	label string
	fn    func()
}

// Scheduler runs deferred callbacks on a tick clock. Glide steps, respawns,
// cooldown expiries and periodic effects all live here so the whole run
// advances deterministically from Run.Tick.
type Scheduler struct {
	now       int
	seq       int
	timers    *heap.Heap[timer]
	discarded bool
	fired     int
}

// NewScheduler creates an empty scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: heap.New(func(a, b timer) bool {
			if a.due != b.due {
				return a.due < b.due
			}
			return a.seq < b.seq
		}),
	}
}

// Now returns the tick of the last Advance.
func (s *Scheduler) Now() int { return s.now }

// After schedules fn to run ticks ticks from now. Delays below one tick are
// rounded up so a callback never runs inside the Advance that scheduled it.
// After is a no-op once the scheduler has been discarded.
func (s *Scheduler) After(ticks int, label string, fn func()) {
	if s.discarded {
		return
	}
	if ticks < 1 {
		ticks = 1
	}
	s.seq++
	s.timers.Push(timer{due: s.now + ticks, seq: s.seq, label: label, fn: fn})
}

// Every schedules fn every interval ticks. count < 0 repeats forever.
func (s *Scheduler) Every(interval, count int, label string, fn func()) {
	if count == 0 {
		return
	}
	s.After(interval, label, func() {
		fn()
		if count > 0 {
			count--
		}
		s.Every(interval, count, label, fn)
	})
}

// Advance moves the clock to now and runs every callback due at or before it.
func (s *Scheduler) Advance(now int) {
	s.now = now
	for !s.discarded {
		next, ok := s.timers.Peek()
		if !ok || next.due > now {
			return
		}
		s.timers.Pop()
		s.fired++
		next.fn()
	}
}

// Discard drops every outstanding callback and refuses new ones.
func (s *Scheduler) Discard() {
	s.discarded = true
	for s.timers.Size() > 0 {
		s.timers.Pop()
	}
}

// Discarded reports whether Discard has been called.
func (s *Scheduler) Discarded() bool { return s.discarded }

// Pending returns the number of outstanding callbacks.
func (s *Scheduler) Pending() int { return s.timers.Size() }

// Fired returns the number of callbacks run so far.
func (s *Scheduler) Fired() int { return s.fired }
