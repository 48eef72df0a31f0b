// Package token defines the command vocabulary of the text token stream.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Tempo     = "TEMPO"
	Timebase  = "TIMEBASE"
	TimeShift = "TIME_SHIFT"
	NoteOn    = "NOTE_ON"
	Velocity  = "VELOCITY"
	NoteStart = "NOTE_START"
	NoteEnd   = "NOTE_END"
	NoteOff   = "NOTE_OFF"
)

func TempoLine(bpm int) string         { return fmt.Sprintf("%s %d", Tempo, bpm) }
func TimebaseLine(ticks int) string    { return fmt.Sprintf("%s %d", Timebase, ticks) }
func TimeShiftLine(delta int64) string { return fmt.Sprintf("%s %d", TimeShift, delta) }
func NoteOffLine(name string) string   { return fmt.Sprintf("%s %s", NoteOff, name) }

func NoteOnLine(name string, velocity int) string {
	return fmt.Sprintf("%s %s %s %d", NoteOn, name, Velocity, velocity)
}

func NoteStartLine(sec float64) string { return NoteStart + " " + FormatSeconds(sec) }
func NoteEndLine(sec float64) string   { return NoteEnd + " " + FormatSeconds(sec) }

// FormatSeconds writes the shortest decimal that parses back to the same float64.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}

// Join builds the stream text. There is no trailing newline.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// Split breaks stream text into lines, tolerating CRLF.
func Split(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
