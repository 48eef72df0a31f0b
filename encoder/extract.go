package encoder

import (
	"sort"

	"github.com/jsphweid/miditok/constants"
	"github.com/jsphweid/miditok/midi"
	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/pitch"
	"github.com/jsphweid/miditok/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ExtractTempo rounds the first declared tempo, falling back to the default.
func ExtractTempo(s *smf.SMF) int {
	bpm, ok := midi.Tempo(s)
	if !ok {
		return constants.DefaultTempo
	}
	return int(util.Round(bpm))
}

// ExtractNotes flattens every track into a single list ordered by start time. Notes
// starting together keep the order they were found in.
func ExtractNotes(s *smf.SMF) []model.Note {
	var notes []model.Note
	for _, track := range midi.TrackNotes(s) {
		for _, n := range track {
			notes = append(notes, model.Note{
				Name:     pitch.Name(n.Pitch),
				StartSec: n.Time,
				EndSec:   n.Time + n.Duration,
				Velocity: int(util.Round(n.Velocity * 127)),
			})
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].StartSec < notes[j].StartSec
	})
	return notes
}
