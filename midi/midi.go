package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/miditok/apperr"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	if _, err := os.Stat(filepath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(apperr.ErrFileNotFound, filepath)
		}
		return nil, errors.Wrap(err, "Error reading midi file...")
	}

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file...")
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("Error parsing midi file... %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file...")
	}
	if _, ok := res.TimeFormat.(smf.MetricTicks); !ok {
		return nil, fmt.Errorf("Error parsing midi file... unsupported time format %v", res.TimeFormat)
	}
	return res, nil
}

// Tempo returns the bpm of the earliest tempo event across all tracks.
func Tempo(s *smf.SMF) (float64, bool) {
	var found bool
	var bpm float64
	var at int64
	for _, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var v float64
			if evt.Message.GetMetaTempo(&v) {
				if !found || absTicks < at {
					found, bpm, at = true, v, absTicks
				}
				break
			}
		}
	}
	return bpm, found
}
