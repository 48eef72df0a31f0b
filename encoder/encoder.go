// Package encoder turns MIDI files into token streams.
package encoder

import (
	"io"
	"os"
	"strings"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/constants"
	"github.com/jsphweid/miditok/midi"
	"github.com/jsphweid/miditok/token"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Encode tokenizes an already parsed file.
func Encode(s *smf.SMF, timebase int) (string, error) {
	if timebase <= 0 || timebase > constants.MaxTimebase {
		return "", errors.Wrapf(apperr.ErrInvalidHeader, "timebase %d must be within 1-%d", timebase, constants.MaxTimebase)
	}
	tempo := ExtractTempo(s)
	if tempo <= 0 {
		return "", errors.Wrapf(apperr.ErrInvalidHeader, "tempo %d", tempo)
	}
	notes := ExtractNotes(s)
	logrus.WithFields(logrus.Fields{"tempo": tempo, "timebase": timebase, "notes": len(notes)}).Debug("encoding")
	return token.Join(Tokenize(notes, tempo, timebase)), nil
}

// EncodeFile reads the midi file at path. A missing file yields apperr.ErrFileNotFound.
func EncodeFile(path string, timebase int) (string, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return "", err
	}
	return Encode(s, timebase)
}

func EncodeReader(r io.Reader, timebase int) (string, error) {
	s, err := midi.ReadMidi(r)
	if err != nil {
		return "", err
	}
	return Encode(s, timebase)
}

// EncodeFileTo encodes path and writes the tokens to out, returning the token count.
func EncodeFileTo(path string, out string, timebase int) (int, error) {
	tokens, err := EncodeFile(path, timebase)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, []byte(tokens), 0644); err != nil {
		return 0, errors.Wrapf(err, "Write failed for tokens file: %v", out)
	}
	return strings.Count(tokens, "\n") + 1, nil
}
