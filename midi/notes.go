package midi

import (
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// SourceNote is a note as stored in a MIDI file, with times in seconds and velocity
// normalized to [0,1].
type SourceNote struct {
	Pitch    uint8
	Time     float64
	Duration float64
	Velocity float64
}

type openNote struct {
	absTicks int64
	velocity uint8
	index    int
}

type noteKey struct {
	channel uint8
	key     uint8
}

type tempoChange struct {
	absTicks int64
	bpm      float64
}

// tempoMap converts ticks to seconds in floating point. SMF.TimeAt works in whole
// microseconds, which would round the seconds written to NOTE_START / NOTE_END.
type tempoMap struct {
	ticksPerBeat float64
	changes      []tempoChange
}

func newTempoMap(s *smf.SMF, ticksPerBeat uint16) tempoMap {
	var changes []tempoChange
	for _, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var bpm float64
			if evt.Message.GetMetaTempo(&bpm) && bpm > 0 {
				changes = append(changes, tempoChange{absTicks: absTicks, bpm: bpm})
			}
		}
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].absTicks < changes[j].absTicks
	})
	return tempoMap{ticksPerBeat: float64(ticksPerBeat), changes: changes}
}

func (m tempoMap) seconds(absTicks int64) float64 {
	var sec float64
	var last int64
	bpm := 120.0
	for _, c := range m.changes {
		if c.absTicks >= absTicks {
			break
		}
		sec += float64(c.absTicks-last) * 60 / (bpm * m.ticksPerBeat)
		last, bpm = c.absTicks, c.bpm
	}
	return sec + float64(absTicks-last)*60/(bpm*m.ticksPerBeat)
}

func secondsFunc(s *smf.SMF) func(int64) float64 {
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok && tf > 0 {
		return newTempoMap(s, uint16(tf)).seconds
	}
	return func(absTicks int64) float64 {
		return float64(s.TimeAt(absTicks)) / 1_000_000
	}
}

// TrackNotes pairs note starts with note ends inside each track. Overlapping notes on
// the same key are closed first-in first-out. Notes that are never closed are dropped.
// The result keeps track order, and within a track the order in which notes started.
func TrackNotes(s *smf.SMF) [][]SourceNote {
	seconds := secondsFunc(s)
	res := make([][]SourceNote, 0, len(s.Tracks))
	for _, track := range s.Tracks {
		var notes []SourceNote
		var closed []bool
		open := make(map[noteKey][]openNote)

		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var ch, key, vel uint8
			switch {
			case evt.Message.GetNoteStart(&ch, &key, &vel):
				k := noteKey{ch, key}
				open[k] = append(open[k], openNote{absTicks: absTicks, velocity: vel, index: len(notes)})
				notes = append(notes, SourceNote{Pitch: key})
				closed = append(closed, false)
			case evt.Message.GetNoteEnd(&ch, &key):
				k := noteKey{ch, key}
				pending := open[k]
				if len(pending) == 0 {
					continue
				}
				on := pending[0]
				open[k] = pending[1:]

				start := seconds(on.absTicks)
				notes[on.index].Time = start
				notes[on.index].Duration = seconds(absTicks) - start
				notes[on.index].Velocity = float64(on.velocity) / 127
				closed[on.index] = true
			}
		}

		var kept []SourceNote
		for i, n := range notes {
			if closed[i] {
				kept = append(kept, n)
			}
		}
		res = append(res, kept)
	}
	return res
}
