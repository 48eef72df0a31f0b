package model

// Note is a single note pulled out of a MIDI file, timed in seconds.
type Note struct {
	Name     string
	StartSec float64
	EndSec   float64
	Velocity int
}

// OutNote is a note ready to be written to a MIDI track.
type OutNote struct {
	Pitch         uint8
	StartTick     int64
	DurationTicks int64

	// normalized to [0,1]
	Velocity float64
}

// Header carries the constant tempo and resolution of a token stream.
type Header struct {
	BPM      int
	Timebase int
}
