package scheduler

// EventType identifies a kind of event. Only one event of each type can be
// scheduled at a time.
type EventType uint8

const (
	// MidScreen fires when the beam reaches the middle of the screen.
	MidScreen EventType = iota
	// VBlank fires when the beam reaches the bottom of the screen.
	VBlank

	eventTypes
)

// Event is an entry in the scheduler's list.
type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}
