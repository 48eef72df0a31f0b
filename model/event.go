package model

type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
)

func (k EventKind) String() string {
	if k == NoteOn {
		return "on"
	}
	return "off"
}

// Event is one parsed NOTE_ON or NOTE_OFF line.
type Event struct {
	Kind EventKind
	Note uint8

	// only meaningful for NoteOn
	Velocity int

	// AbsTick is the running sum of every TIME_SHIFT seen before this event.
	AbsTick int64

	// StartSec and EndSec are set when NOTE_START / NOTE_END directly follow a NOTE_ON.
	StartSec *float64
	EndSec   *float64
}

// HasPreciseTiming reports whether both seconds timestamps were attached.
func (e Event) HasPreciseTiming() bool {
	return e.StartSec != nil && e.EndSec != nil
}

// Parsed is the output of the token parser.
type Parsed struct {
	Header
	Events []Event
}
