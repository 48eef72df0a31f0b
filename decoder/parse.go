package decoder

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/constants"
	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/pitch"
	"github.com/jsphweid/miditok/token"
	"github.com/pkg/errors"
)

func field(parts []string, i int, lineNum int) (string, error) {
	if i >= len(parts) {
		return "", errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: %s is missing a field", lineNum, parts[0])
	}
	return parts[i], nil
}

func parseInt(parts []string, i int, lineNum int) (int64, error) {
	s, err := field(parts, i, lineNum)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: %s %q", lineNum, parts[0], s)
	}
	return v, nil
}

func parseFloat(parts []string, i int, lineNum int) (float64, error) {
	s, err := field(parts, i, lineNum)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: %s %q", lineNum, parts[0], s)
	}
	return v, nil
}

// parseSeconds accepts finite, non-negative seconds only.
func parseSeconds(parts []string, lineNum int) (float64, error) {
	v, err := parseFloat(parts, 1, lineNum)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: %s %v is not a time in seconds", lineNum, parts[0], v)
	}
	return v, nil
}

func parsePitch(parts []string, lineNum int) (uint8, error) {
	if len(parts) < 2 {
		return 0, errors.Wrapf(apperr.ErrInvalidPitchName, "line %d: %s has no pitch", lineNum, parts[0])
	}
	n, err := pitch.Number(parts[1])
	if err != nil {
		return 0, errors.Wrapf(err, "line %d", lineNum)
	}
	return n, nil
}

func parseHeaderValue(parts []string, lineNum int) (int, error) {
	v, err := parseInt(parts, 1, lineNum)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.Wrapf(apperr.ErrInvalidHeader, "line %d: %s %d", lineNum, parts[0], v)
	}
	return int(v), nil
}

// ParseTokens reads token lines into events. The tick position only ever grows: every
// TIME_SHIFT adds to it and each event records the sum so far. NOTE_START and NOTE_END
// attach to the event right before them when that event is a NOTE_ON. Blank and
// unknown lines are skipped.
func ParseTokens(lines []string) (model.Parsed, error) {
	res := model.Parsed{
		Header: model.Header{BPM: constants.DefaultTempo, Timebase: constants.DefaultTimebase},
	}
	var time int64

	for i, raw := range lines {
		lineNum := i + 1
		parts := strings.Fields(raw)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case token.Tempo:
			bpm, err := parseHeaderValue(parts, lineNum)
			if err != nil {
				return res, err
			}
			res.BPM = bpm

		case token.Timebase:
			tb, err := parseHeaderValue(parts, lineNum)
			if err != nil {
				return res, err
			}
			if tb > constants.MaxTimebase {
				return res, errors.Wrapf(apperr.ErrInvalidHeader, "line %d: %s %d is above %d", lineNum, parts[0], tb, constants.MaxTimebase)
			}
			res.Timebase = tb

		case token.TimeShift:
			d, err := parseInt(parts, 1, lineNum)
			if err != nil {
				return res, err
			}
			if d < 0 {
				return res, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: negative %s %d", lineNum, parts[0], d)
			}
			if d > math.MaxInt64-time {
				return res, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: %s overflows the tick position", lineNum, parts[0])
			}
			time += d

		case token.NoteOn:
			note, err := parsePitch(parts, lineNum)
			if err != nil {
				return res, err
			}
			vel, err := parseInt(parts, 3, lineNum)
			if err != nil {
				return res, err
			}
			if vel < 0 || vel > 127 {
				return res, errors.Wrapf(apperr.ErrMalformedNumeric, "line %d: velocity %d outside 0-127", lineNum, vel)
			}
			res.Events = append(res.Events, model.Event{
				Kind:     model.NoteOn,
				Note:     note,
				Velocity: int(vel),
				AbsTick:  time,
			})

		case token.NoteStart, token.NoteEnd:
			sec, err := parseSeconds(parts, lineNum)
			if err != nil {
				return res, err
			}
			if len(res.Events) == 0 {
				continue
			}
			last := &res.Events[len(res.Events)-1]
			if last.Kind != model.NoteOn {
				continue
			}
			if parts[0] == token.NoteStart {
				last.StartSec = &sec
			} else {
				last.EndSec = &sec
			}

		case token.NoteOff:
			note, err := parsePitch(parts, lineNum)
			if err != nil {
				return res, err
			}
			res.Events = append(res.Events, model.Event{
				Kind:    model.NoteOff,
				Note:    note,
				AbsTick: time,
			})
		}
	}

	return res, nil
}
