package midi

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func buildAndReread(t *testing.T, header model.Header, notes []model.OutNote) *smf.SMF {
	t.Helper()
	s, err := Build(header, notes)
	require.NoError(t, err)
	data, err := Bytes(s)
	require.NoError(t, err)
	res, err := ReadMidi(bytes.NewReader(data))
	require.NoError(t, err)
	return res
}

func TestBuildWritesTempoAndTimebase(t *testing.T) {
	s := buildAndReread(t, model.Header{BPM: 100, Timebase: 240}, nil)

	assert := assert.New(t)
	assert.Equal(smf.MetricTicks(240), s.TimeFormat)
	assert.Len(s.Tracks, 1)
	bpm, ok := Tempo(s)
	assert.True(ok)
	assert.InDelta(100.0, bpm, 1e-9)
}

func TestBuildThenTrackNotes(t *testing.T) {
	notes := []model.OutNote{
		{Pitch: 60, StartTick: 0, DurationTicks: 480, Velocity: 100.0 / 127},
		{Pitch: 64, StartTick: 480, DurationTicks: 960, Velocity: 1},
		{Pitch: 67, StartTick: 480, DurationTicks: 0, Velocity: 0.5},
	}
	s := buildAndReread(t, model.Header{BPM: 120, Timebase: 480}, notes)

	tracks := TrackNotes(s)
	require.Len(t, tracks, 1)
	got := tracks[0]
	require.Len(t, got, 3)

	assert := assert.New(t)
	assert.Equal(uint8(60), got[0].Pitch)
	assert.InDelta(0.0, got[0].Time, 1e-6)
	assert.InDelta(0.5, got[0].Duration, 1e-6)
	assert.InDelta(100.0/127, got[0].Velocity, 1e-9)

	assert.Equal(uint8(64), got[1].Pitch)
	assert.InDelta(0.5, got[1].Time, 1e-6)
	assert.InDelta(1.0, got[1].Duration, 1e-6)

	assert.Equal(uint8(67), got[2].Pitch)
	assert.InDelta(0.0, got[2].Duration, 1e-6)
}

func TestBuildClampsVelocityToAudibleRange(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(1), velocityByte(0))
	assert.Equal(uint8(127), velocityByte(1.5))
	assert.Equal(uint8(64), velocityByte(64.0/127))
}

func TestBuildRejectsBadHeader(t *testing.T) {
	_, err := Build(model.Header{BPM: 0, Timebase: 480}, nil)
	assert.Error(t, err)
	_, err = Build(model.Header{BPM: 120, Timebase: 40000}, nil)
	assert.Error(t, err)
}

func TestTempoMissing(t *testing.T) {
	var track smf.Track
	track.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(track))

	_, ok := Tempo(s)
	assert.False(t, ok)
}

func TestReadMidiFileNotFound(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.True(t, errors.Is(err, apperr.ErrFileNotFound), "got %v", err)
}

func TestWriteMidiFileThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	s, err := Build(model.Header{BPM: 90, Timebase: 480}, []model.OutNote{{Pitch: 21, StartTick: 10, DurationTicks: 5, Velocity: 0.5}})
	require.NoError(t, err)
	require.NoError(t, WriteMidiFile(path, s))

	res, err := ReadMidiFile(path)
	require.NoError(t, err)
	notes := TrackNotes(res)
	require.Len(t, notes[0], 1)
	assert.Equal(t, uint8(21), notes[0][0].Pitch)
}

func TestReadMidiGarbage(t *testing.T) {
	_, err := ReadMidi(bytes.NewReader([]byte("not a midi file")))
	assert.Error(t, err)
}

func TestBuildClampsNegativeStartButKeepsEnd(t *testing.T) {
	// -5s..1s at 120 bpm / 480
	s := buildAndReread(t, model.Header{BPM: 120, Timebase: 480}, []model.OutNote{
		{Pitch: 60, StartTick: -4800, DurationTicks: 5760, Velocity: 1},
		{Pitch: 62, StartTick: -100, DurationTicks: 50, Velocity: 1},
	})
	notes := TrackNotes(s)
	require.Len(t, notes[0], 2)

	assert := assert.New(t)
	assert.InDelta(0.0, notes[0][0].Time, 1e-9)
	assert.InDelta(1.0, notes[0][0].Duration, 1e-9)
	assert.InDelta(0.0, notes[0][1].Duration, 1e-9)
}

func TestBuildRejectsGapsTooLargeForADelta(t *testing.T) {
	_, err := Build(model.Header{BPM: 120, Timebase: 960}, []model.OutNote{
		{Pitch: 60, StartTick: 0, DurationTicks: 9_600_000_000, Velocity: 1},
	})
	assert.Error(t, err)

	_, err = Build(model.Header{BPM: 120, Timebase: 960}, []model.OutNote{
		{Pitch: 60, StartTick: maxDelta, DurationTicks: maxDelta, Velocity: 1},
	})
	assert.NoError(t, err)
}

func TestTrackNotesKeepsSubMicrosecondSeconds(t *testing.T) {
	s := buildAndReread(t, model.Header{BPM: 100, Timebase: 7}, []model.OutNote{
		{Pitch: 60, StartTick: 1, DurationTicks: 1, Velocity: 1},
	})
	notes := TrackNotes(s)
	require.Len(t, notes[0], 1)

	// one tick is 60/700 s = 0.0857142857...
	assert.InDelta(t, 60.0/700, notes[0][0].Time, 1e-12)
	assert.InDelta(t, 60.0/700, notes[0][0].Duration, 1e-12)
}

func TestTrackNotesFollowsTempoChanges(t *testing.T) {
	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, gomidi.NoteOn(0, 60, 100))
	track.Add(480, smf.MetaTempo(60))
	track.Add(480, gomidi.NoteOff(0, 60))
	track.Close(0)

	src := smf.New()
	src.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, src.Add(track))
	data, err := Bytes(src)
	require.NoError(t, err)
	s, err := ReadMidi(bytes.NewReader(data))
	require.NoError(t, err)

	notes := TrackNotes(s)
	require.Len(t, notes[0], 1)
	// half a second at 120 bpm, then one second at 60 bpm
	assert.InDelta(t, 1.5, notes[0][0].Duration, 1e-12)
}
