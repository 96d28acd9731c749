package vt

import "fmt"

type EventKind uint8

const (
	// EventBell is a C0 BEL.
	EventBell EventKind = iota
	// EventOSC carries an operating system command payload,
	// e.g. "0;new title". The payload is opaque to the buffer;
	// the owner decides what to do with it.
	EventOSC
	// EventResponse carries bytes the terminal wants written back
	// to the application (DSR replies, device attributes).
	EventResponse
)

// Event is a side-channel occurrence surfaced alongside a parse or
// apply call rather than being folded into the cell grid.
type Event struct {
	Kind EventKind
	Data string
}

func (e Event) String() string {
	switch e.Kind {
	case EventBell:
		return "bell"
	case EventOSC:
		return fmt.Sprintf("osc(%q)", e.Data)
	}
	return fmt.Sprintf("response(%q)", e.Data)
}
