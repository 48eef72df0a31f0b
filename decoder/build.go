package decoder

import (
	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/util"
)

type activeNote struct {
	start    int64
	velocity float64
}

func secondsToTicks(sec float64, h model.Header) int64 {
	return util.Round(sec * float64(h.BPM) * float64(h.Timebase) / 60)
}

// BuildNotes resolves events into notes. A NOTE_ON carrying both seconds timestamps
// becomes a note on its own. Otherwise it is held by pitch until the next NOTE_OFF of
// the same pitch closes it. A NOTE_OFF with nothing held is ignored.
func BuildNotes(p model.Parsed) []model.OutNote {
	var notes []model.OutNote
	active := make(map[uint8]activeNote)

	for _, e := range p.Events {
		switch e.Kind {
		case model.NoteOn:
			velocity := float64(e.Velocity) / 127
			if e.HasPreciseTiming() {
				start := secondsToTicks(*e.StartSec, p.Header)
				end := secondsToTicks(*e.EndSec, p.Header)
				notes = append(notes, model.OutNote{
					Pitch:         e.Note,
					StartTick:     start,
					DurationTicks: util.Max(end-start, 0),
					Velocity:      velocity,
				})
				continue
			}
			active[e.Note] = activeNote{start: e.AbsTick, velocity: velocity}

		case model.NoteOff:
			on, ok := active[e.Note]
			if !ok {
				continue
			}
			delete(active, e.Note)
			notes = append(notes, model.OutNote{
				Pitch:         e.Note,
				StartTick:     on.start,
				DurationTicks: util.Max(e.AbsTick-on.start, 0),
				Velocity:      on.velocity,
			})
		}
	}

	return notes
}
