package smfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/simonhull/tablature/internal/gptest"
	"github.com/simonhull/tablature/internal/types"
)

func exampleSong() *types.Song {
	s := gptest.NewSong(3, 2)
	s.Title = "Example"
	s.Tempo = 96
	s.Measures[1].Flags = types.MeasureNumerator | types.MeasureDenominator
	s.Measures[1].Numerator = 3
	s.Measures[1].Denominator = 4
	s.Measures[2].Marker = &types.Marker{Name: "Outro"}
	s.Ports[0].Channels[0] = types.MidiChannel{Instrument: 25, Volume: 13, Balance: 8, Reverb: 0, Chorus: 16}
	s.Ports[0].Channels[1] = types.MidiChannel{Instrument: 0xFFFFFFFF, Volume: 16}
	return s
}

func roundTrip(t *testing.T, song *types.Song) *smf.SMF {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, song))

	out, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return out
}

func TestWrite_Conductor(t *testing.T) {
	out := roundTrip(t, exampleSong())
	require.Len(t, out.Tracks, 3, "conductor plus one track per song track")

	ticks, ok := out.TimeFormat.(smf.MetricTicks)
	require.True(t, ok)
	assert.Equal(t, uint16(Resolution), ticks.Resolution())

	var (
		bpm     float64
		meters  [][2]uint8
		markers []string
		abs     []uint32
		now     uint32
	)
	for _, ev := range out.Tracks[0] {
		now += ev.Delta
		var num, denom uint8
		var text string
		switch {
		case ev.Message.GetMetaTempo(&bpm):
		case ev.Message.GetMetaMeter(&num, &denom):
			meters = append(meters, [2]uint8{num, denom})
			abs = append(abs, now)
		case ev.Message.GetMetaMarker(&text):
			markers = append(markers, text)
			abs = append(abs, now)
		}
	}

	assert.InDelta(t, 96.0, bpm, 0.01)
	assert.Equal(t, [][2]uint8{{4, 4}, {3, 4}}, meters)
	assert.Equal(t, []string{"Outro"}, markers)
	// 4/4 at 0, 3/4 after one 4/4 bar, the marker after one 3/4 bar.
	assert.Equal(t, []uint32{0, 4 * Resolution, 7 * Resolution}, abs)
}

func TestWrite_LongSongDeltas(t *testing.T) {
	// 300 bars of 255/1 span more ticks than one delta can encode.
	s := gptest.NewSong(300, 1)
	s.Measures[0].Flags = types.MeasureNumerator | types.MeasureDenominator
	s.Measures[0].Numerator = 255
	s.Measures[0].Denominator = 1

	out := roundTrip(t, s)
	var total uint64
	for _, ev := range out.Tracks[0] {
		require.LessOrEqual(t, ev.Delta, uint32(maxDelta))
		total += uint64(ev.Delta)
		var num, denom uint8
		if ev.Message.GetMetaMeter(&num, &denom) {
			assert.Equal(t, [2]uint8{255, 1}, [2]uint8{num, denom})
		}
	}
	assert.Equal(t, uint64(300*255*Resolution*4), total)
}

func TestWrite_InstrumentTracks(t *testing.T) {
	out := roundTrip(t, exampleSong())

	var ch, prog, ctl, val uint8
	programs := map[uint8]uint8{}
	volumes := map[uint8]uint8{}
	chorus := map[uint8]uint8{}
	for _, tr := range out.Tracks[1:] {
		for _, ev := range tr {
			switch {
			case midi.Message(ev.Message).GetProgramChange(&ch, &prog):
				programs[ch] = prog
			case midi.Message(ev.Message).GetControlChange(&ch, &ctl, &val):
				switch ctl {
				case ccVolume:
					volumes[ch] = val
				case ccChorus:
					chorus[ch] = val
				}
			}
		}
	}

	assert.Equal(t, map[uint8]uint8{0: 25}, programs, "no program change for an unset instrument")
	assert.Equal(t, map[uint8]uint8{0: 103, 1: 127}, volumes)
	assert.Equal(t, uint8(127), chorus[0])
}

func TestBuild_NilSong(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrNoSong)
}

func TestBuild_UnroutedTrack(t *testing.T) {
	s := gptest.NewSong(1, 1)
	s.Tracks[0].Port = 9

	out, err := Build(s)
	require.NoError(t, err)
	require.Len(t, out.Tracks, 2)

	var ch, prog uint8
	for _, ev := range out.Tracks[1] {
		assert.False(t, midi.Message(ev.Message).GetProgramChange(&ch, &prog))
	}
}

func TestController(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{1, 7},
		{8, 63},
		{16, 127},
		{200, 127},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, controller(tt.in), "controller(%d)", tt.in)
	}
}
