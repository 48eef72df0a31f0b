package encoder

import (
	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/token"
	"github.com/jsphweid/miditok/util"
)

// Tokenize turns notes sorted by start time into token lines. Every note is written as
// NOTE_ON, its exact start and end in seconds, a TIME_SHIFT covering its quantized
// length (possibly 0), then NOTE_OFF. The gap before a note is only written when
// positive, so overlapping notes simply follow each other.
func Tokenize(notes []model.Note, tempo int, timebase int) []string {
	lines := make([]string, 0, 2+len(notes)*6)
	lines = append(lines, token.TempoLine(tempo), token.TimebaseLine(timebase))

	secondsPerTick := 60 / float64(tempo) / float64(timebase)

	var lastTick int64
	for _, n := range notes {
		startTick := util.Round(n.StartSec / secondsPerTick)
		endTick := util.Round(n.EndSec / secondsPerTick)

		if delta := startTick - lastTick; delta > 0 {
			lines = append(lines, token.TimeShiftLine(delta))
		}

		lines = append(lines,
			token.NoteOnLine(n.Name, n.Velocity),
			token.NoteStartLine(n.StartSec),
			token.NoteEndLine(n.EndSec),
			token.TimeShiftLine(endTick-startTick),
			token.NoteOffLine(n.Name),
		)

		lastTick = endTick
	}

	return lines
}
