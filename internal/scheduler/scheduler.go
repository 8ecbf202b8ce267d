// Package scheduler provides a cycle based event scheduler, used by the
// machines to raise their timed interrupts between CPU steps.
package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event that has become due is removed from the list and executed in order.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]Event
}

// NewScheduler returns a scheduler at cycle 0 with nothing scheduled.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	for i := range s.events {
		s.events[i].eventType = EventType(i)
	}
	return s
}

// Cycle returns the number of cycles the scheduler has been ticked.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers the function to call when an event of eventType
// becomes due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by c cycles, executing every event that is
// due by the new cycle. While a handler runs the scheduler reads as the
// cycle its event was due, so an event that reschedules itself keeps a
// fixed period however coarse the ticks are. Events that become due as a
// result run in the same Tick.
func (s *Scheduler) Tick(c uint64) {
	target := s.cycles + c

	for s.root != nil && s.root.cycle <= target {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		s.cycles = event.cycle
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}

	s.cycles = target
}

// ScheduleEvent schedules an event to be executed cycle cycles from now.
// An event of the same type that is already scheduled is replaced. Events
// due on the same cycle execute in the order they were scheduled.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.DescheduleEvent(eventType)

	this := &s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true

	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	event := s.root
	for event.next != nil && event.next.cycle <= this.cycle {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// DescheduleEvent removes a scheduled event of eventType, if any.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	this := &s.events[eventType]
	if !this.scheduled {
		return
	}

	var prev *Event
	for event := s.root; event != nil; prev, event = event, event.next {
		if event != this {
			continue
		}
		if prev == nil {
			s.root = event.next
		} else {
			prev.next = event.next
		}
		break
	}
	this.next = nil
	this.scheduled = false
}

// Until returns the number of cycles until the next event is due, and
// false if nothing is scheduled.
func (s *Scheduler) Until() (uint64, bool) {
	if s.root == nil {
		return 0, false
	}
	if s.root.cycle <= s.cycles {
		return 0, true
	}
	return s.root.cycle - s.cycles, true
}

// Skip advances the scheduler straight to the next event and executes it.
// This is useful when the CPU is halted with interrupts enabled, and would
// otherwise idle until the next event.
func (s *Scheduler) Skip() {
	if until, ok := s.Until(); ok {
		s.Tick(until)
	}
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%d:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
