// Package decoder turns token streams back into MIDI files.
package decoder

import (
	"strings"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/midi"
	"github.com/jsphweid/miditok/token"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Decode parses the token text and builds a single-track file.
func Decode(text string) (*smf.SMF, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.ErrEmptyInput
	}

	parsed, err := ParseTokens(token.Split(text))
	if err != nil {
		return nil, err
	}
	notes := BuildNotes(parsed)
	logrus.WithFields(logrus.Fields{
		"bpm":      parsed.BPM,
		"timebase": parsed.Timebase,
		"events":   len(parsed.Events),
		"notes":    len(notes),
	}).Debug("decoding")

	return midi.Build(parsed.Header, notes)
}

// DecodeBytes returns the serialized file.
func DecodeBytes(text string) ([]byte, error) {
	s, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return midi.Bytes(s)
}

// DecodeToFile writes the decoded file to outputFile, overwriting it. Nothing is written
// when decoding fails.
func DecodeToFile(text string, outputFile string) error {
	s, err := Decode(text)
	if err != nil {
		return err
	}
	return errors.WithMessage(midi.WriteMidiFile(outputFile, s), "decode")
}
