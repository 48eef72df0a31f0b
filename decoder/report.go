package decoder

import (
	"strings"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/token"
)

// Report summarizes a token stream the way BuildNotes would read it.
func Report(text string) (model.TokenReport, error) {
	var r model.TokenReport
	if strings.TrimSpace(text) == "" {
		return r, apperr.ErrEmptyInput
	}

	lines := token.Split(text)
	parsed, err := ParseTokens(lines)
	if err != nil {
		return r, err
	}

	r.BPM = parsed.BPM
	r.Timebase = parsed.Timebase
	r.NumLines = len(lines)

	// offs that close a precisely timed note are expected and not counted as unmatched
	held := make(map[uint8]bool)
	precise := make(map[uint8]int)
	for _, e := range parsed.Events {
		r.TotalTicks = e.AbsTick
		if e.Kind == model.NoteOn {
			r.NumOn++
			if e.HasPreciseTiming() {
				precise[e.Note]++
			} else {
				r.MissingPrecise++
				held[e.Note] = true
			}
			continue
		}
		r.NumOff++
		switch {
		case held[e.Note]:
			delete(held, e.Note)
		case precise[e.Note] > 0:
			precise[e.Note]--
		default:
			r.UnmatchedOffs++
		}
	}
	r.NumNotes = len(BuildNotes(parsed))
	return r, nil
}
