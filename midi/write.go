package midi

import (
	"bytes"
	"os"
	"sort"

	"github.com/jsphweid/miditok/model"
	"github.com/jsphweid/miditok/util"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type timedMessage struct {
	tick int64
	rank int
	msg  gomidi.Message
}

// at equal ticks: offs of sounding notes, then ons, then offs of zero-length notes
// largest delta a variable-length quantity can hold
const maxDelta = 0x0FFFFFFF

const (
	rankOff = iota
	rankOn
	rankZeroOff
)

func velocityByte(v float64) uint8 {
	// velocity 0 on a note on would read back as a note off
	return uint8(util.Clamp(util.Round(v*127), 1, 127))
}

// Build creates a file with a single track holding the tempo and every note on channel 0.
func Build(header model.Header, notes []model.OutNote) (*smf.SMF, error) {
	if header.BPM <= 0 || header.Timebase <= 0 || header.Timebase > 0x7FFF {
		return nil, errors.Errorf("cannot build midi with tempo %d and timebase %d", header.BPM, header.Timebase)
	}

	msgs := make([]timedMessage, 0, len(notes)*2)
	for _, n := range notes {
		start := util.Max(n.StartTick, 0)
		end := util.Max(n.StartTick+util.Max(n.DurationTicks, 0), start)
		dur := end - start
		offRank := rankOff
		if dur == 0 {
			offRank = rankZeroOff
		}
		msgs = append(msgs,
			timedMessage{tick: start, rank: rankOn, msg: gomidi.NoteOn(0, n.Pitch, velocityByte(n.Velocity))},
			timedMessage{tick: end, rank: offRank, msg: gomidi.NoteOff(0, n.Pitch)},
		)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].rank < msgs[j].rank
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(float64(header.BPM)))
	var last int64
	for _, m := range msgs {
		if m.tick-last > maxDelta {
			return nil, errors.Errorf("cannot build midi: gap of %d ticks before tick %d is above %d", m.tick-last, m.tick, maxDelta)
		}
		track.Add(uint32(m.tick-last), m.msg)
		last = m.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(header.Timebase)
	if err := s.Add(track); err != nil {
		return nil, errors.Wrap(err, "could not add track")
	}
	return s, nil
}

func Bytes(s *smf.SMF) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "could not serialize midi")
	}
	return buf.Bytes(), nil
}

// WriteMidiFile overwrites path with the serialized file.
func WriteMidiFile(path string, s *smf.SMF) error {
	data, err := Bytes(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "Write failed for midi file: %v", path)
	}
	return nil
}
