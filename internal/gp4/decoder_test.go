package gp4

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbin "github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/gptest"
	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/types"
)

func decodeStream(data []byte, opts registry.Options) (*types.Song, error) {
	ctx := context.Background()
	r := tbin.NewReader(ctx, bytes.NewReader(data))
	version, err := r.FixedString(types.VersionTagSize, "version")
	if err != nil {
		return nil, err
	}
	opts.Version = version
	return Decode(ctx, r, opts)
}

func requireKind(t *testing.T, err error, kind types.Kind) {
	t.Helper()
	var e *types.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, "error: %v", err)
}

func TestDecode_MinimalStream(t *testing.T) {
	song, err := decodeStream(gptest.MinimalStream(), registry.Options{})
	require.NoError(t, err)

	assert.Equal(t, types.VersionGP406, song.Version)
	assert.Equal(t, uint32(120), song.Tempo)
	assert.Equal(t, types.Key(0), song.Key)
	assert.Empty(t, song.Title)
	assert.Empty(t, song.Comments)

	require.Len(t, song.Measures, 1)
	require.Len(t, song.Tracks, 1)
	assert.Equal(t, "T", song.Tracks[0].Title)
	assert.Equal(t, 1, song.Tracks[0].ID)
	assert.Equal(t, uint32(6), song.Tracks[0].Strings)

	beats, ok := song.Beats(1, 1)
	require.True(t, ok)
	assert.Empty(t, beats)

	for i, p := range song.Ports {
		assert.Equal(t, uint32(i+1), p.ID)
	}
}

func TestDecode_MinimalStreamTruncated(t *testing.T) {
	data := gptest.MinimalStream()
	for n := 0; n < len(data); n++ {
		_, err := decodeStream(data[:n], registry.Options{})
		require.Error(t, err, "prefix of %d bytes", n)
		assert.True(t, errors.Is(err, types.ErrEOF), "prefix of %d bytes: %v", n, err)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	s := gptest.NewSong(2, 2)
	s.Title = "Song"
	s.Subtitle = "Sub"
	s.Artist = "Artist"
	s.Instructions = "Play it loud"
	s.Comments = []string{"first", "second"}
	s.TripletFeel = types.TripletFeelEighth
	s.LyricsTrack = 1
	s.Lyrics[0] = types.Lyric{Text: "la la", Position: 1}
	s.Lyrics[4] = types.Lyric{Text: "end", Position: 2}
	s.Tempo = 96
	s.Key = -3
	s.Octave = types.OctaveEighthva
	s.Ports[0].Channels[0] = types.MidiChannel{Instrument: 25, Volume: 13, Balance: 8, Chorus: 1, Reverb: 2}

	s.Measures[0].Flags = types.MeasureNumerator | types.MeasureDenominator | types.MeasureRepeatBegin
	s.Measures[0].Numerator = 3
	s.Measures[0].Denominator = 8
	s.Measures[1].Flags = types.MeasureRepeatEnd | types.MeasureAlternateEnding |
		types.MeasureMarker | types.MeasureTonality | types.MeasureDoubleBar
	s.Measures[1].RepeatEnd = 2
	s.Measures[1].AlternateEnding = 1
	s.Measures[1].Marker = &types.Marker{Name: "Chorus", Color: types.Color{R: 255}}
	s.Measures[1].Key = gptest.Ptr(types.Key(2))

	s.Tracks[0].Flags = types.TrackTwelveString
	s.Tracks[0].Capo = 2
	s.Tracks[0].Color = types.Color{R: 10, G: 20, B: 30}
	s.Tracks[1].Flags = types.TrackDrums
	s.Tracks[1].EffectsChannel = 10

	s.Grid[0][0] = []types.Beat{
		{
			Dotted: true,
			Text:   gptest.Ptr("intro"),
			Chord: &types.Chord{
				Format:     types.ChordFormatNew,
				Name:       "Am7",
				Root:       9,
				Type:       3,
				Lowest:     -1,
				Tonality:   1,
				BaseFret:   5,
				Frets:      [7]uint32{0, 1, 0, 2, 0, 0xFFFFFFFF, 0xFFFFFFFF},
				Barres:     []types.Barre{{Fret: 5, Start: 1, End: 6}, {Fret: 7, Start: 2, End: 4}},
				Omissions:  [7]bool{false, false, true},
				Fingerings: [7]uint8{1, 2, 3, 4, 0, 0, 0},
				HasAdd:     true,
				Show:       true,
			},
		},
		{Mode: types.BeatRest, Duration: 1},
		{Mode: types.BeatEmpty},
	}
	s.Grid[1][1] = []types.Beat{
		{
			Duration: 2,
			Tuplet:   3,
			Dynamics: gptest.Ptr(types.DynamicsSlapping),
			Bend: &types.Bend{
				Type: types.BendBendRelease,
				Points: []types.BendPoint{
					{Position: 0, Value: 0},
					{Position: 6, Value: 4, Vibrato: types.VibratoFast},
					{Position: 12, Value: 0},
				},
			},
			Mix: &types.MixTableChange{
				Instrument:     30,
				Volume:         12,
				Balance:        types.MixUnchanged,
				Chorus:         types.MixUnchanged,
				Reverb:         4,
				Phaser:         types.MixUnchanged,
				Tremolo:        types.MixUnchanged,
				Tempo:          140,
				VolumeDuration: 2,
				ReverbDuration: 1,
				TempoDuration:  3,
				AllTracks:      1,
			},
		},
	}

	got, err := decodeStream(gptest.Encode(s), registry.Options{})
	require.NoError(t, err)

	assert.Equal(t, s.Title, got.Title)
	assert.Equal(t, s.Subtitle, got.Subtitle)
	assert.Equal(t, s.Artist, got.Artist)
	assert.Equal(t, s.Instructions, got.Instructions)
	assert.Equal(t, s.Comments, got.Comments)
	assert.Equal(t, s.TripletFeel, got.TripletFeel)
	assert.Equal(t, s.LyricsTrack, got.LyricsTrack)
	assert.Equal(t, s.Lyrics, got.Lyrics)
	assert.Equal(t, s.Tempo, got.Tempo)
	assert.Equal(t, s.Key, got.Key)
	assert.Equal(t, s.Octave, got.Octave)

	ch := got.Ports[0].Channels[0]
	assert.Equal(t, uint32(25), ch.Instrument)
	assert.Equal(t, uint8(13), ch.Volume)
	assert.Equal(t, uint32(1), ch.Port)
	assert.Equal(t, uint32(1), ch.Channel)

	assert.Equal(t, s.Measures, got.Measures)
	assert.True(t, got.Measures[0].RepeatBegin())
	assert.True(t, got.Measures[1].DoubleBar())

	assert.Equal(t, s.Tracks, got.Tracks)
	assert.True(t, got.Tracks[0].IsTwelveString())
	assert.True(t, got.Tracks[1].IsDrums())

	assert.Equal(t, s.Grid, got.Grid)
	assert.Empty(t, got.Warnings)
	assert.True(t, got.Grid[0][0][0].Chord.Omits(5))
}

func TestDecode_MeasureWithoutFlagsKeepsDefaults(t *testing.T) {
	song, err := decodeStream(gptest.Encode(gptest.NewSong(3, 1)), registry.Options{})
	require.NoError(t, err)

	for _, m := range song.Measures {
		assert.Equal(t, uint8(4), m.Numerator)
		assert.Equal(t, uint8(4), m.Denominator)
		assert.Zero(t, m.RepeatEnd)
		assert.Zero(t, m.AlternateEnding)
		assert.Nil(t, m.Marker)
		assert.Nil(t, m.Key)
		assert.False(t, m.HasTimeSignature())
	}
	assert.Equal(t, []int{1, 2, 3}, []int{song.Measures[0].ID, song.Measures[1].ID, song.Measures[2].ID})
}

func TestDecode_KeyOutOfRange(t *testing.T) {
	s := gptest.NewSong(0, 0)
	s.Key = 8
	data := gptest.Encode(s)

	song, err := decodeStream(data, registry.Options{})
	require.NoError(t, err)
	assert.Equal(t, types.Key(8), song.Key, "the stored key is kept")
	require.Len(t, song.Warnings, 1)
	assert.Equal(t, "key", song.Warnings[0].Stage)

	_, err = decodeStream(data, registry.Options{Strict: true})
	requireKind(t, err, types.KindInvalidData)
	assert.Contains(t, err.Error(), "song header")
}

func TestDecode_TrackTitleTooLong(t *testing.T) {
	var buf bytes.Buffer
	sw := tbin.NewSafeWriter(&buf)
	gptest.WriteSong(sw, gptest.NewSong(0, 0))
	data := buf.Bytes()

	// Patch the track count to 1 and append a track whose title length is 41.
	binary.LittleEndian.PutUint32(data[len(data)-4:], 1)
	title := make([]byte, 1+types.MaxTrackTitle)
	title[0] = types.MaxTrackTitle + 1
	data = append(data, 0)
	data = append(data, title...)

	_, err := decodeStream(data, registry.Options{})
	requireKind(t, err, types.KindInvalidData)
	assert.Contains(t, err.Error(), "track 1")
}

func TestDecode_BudgetExhaustedByCounts(t *testing.T) {
	s := gptest.NewSong(0, 0)
	data := gptest.Encode(s)
	binary.LittleEndian.PutUint32(data[len(data)-8:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(data[len(data)-4:], 0xFFFFFFFF)

	_, err := decodeStream(data, registry.Options{})
	requireKind(t, err, types.KindResourceLimit)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestDecode_BudgetExhaustedByBeatCount(t *testing.T) {
	data := gptest.MinimalStream()
	binary.LittleEndian.PutUint32(data[len(data)-4:], 0xFFFFFFFF)

	_, err := decodeStream(data, registry.Options{})
	requireKind(t, err, types.KindResourceLimit)
	assert.Contains(t, err.Error(), "measure 1 track 1")
}

func TestDecode_ShortStreamDeclaringManyBeats(t *testing.T) {
	// A million beats fit the default budget; the stream holds none of them.
	data := gptest.MinimalStream()
	binary.LittleEndian.PutUint32(data[len(data)-4:], 1<<20)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := decodeStream(data, registry.Options{})
	runtime.ReadMemStats(&after)

	requireKind(t, err, types.KindEOF)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(4<<20))
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := tbin.NewReader(ctx, bytes.NewReader(gptest.MinimalStream()))
	_, err := Decode(ctx, r, registry.Options{Version: types.VersionGP406})
	requireKind(t, err, types.KindCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, r.Offset())
}

func TestDecode_WarningsAreLogged(t *testing.T) {
	s := gptest.NewSong(1, 1)
	s.Grid[0][0] = []types.Beat{{Tuplet: 4}}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	song, err := decodeStream(gptest.Encode(s), registry.Options{Logger: logger})
	require.NoError(t, err)
	require.Len(t, song.Warnings, 1)
	assert.Equal(t, "beat", song.Warnings[0].Stage)
	assert.Contains(t, logs.String(), "invalid 4-tuplet ignored")
	assert.Contains(t, logs.String(), "song decoded")
}

func TestDecoder_Registered(t *testing.T) {
	for _, v := range Versions {
		d, ok := registry.Lookup(v)
		require.True(t, ok, v)
		require.NotNil(t, d, v)
	}

	ctx := context.Background()
	data := gptest.MinimalStream()[types.VersionTagSize+1:]
	r := tbin.NewReader(ctx, bytes.NewReader(data))
	song, err := registry.Dispatch(ctx, r, registry.Options{Version: types.VersionGPL406})
	require.NoError(t, err)
	assert.Equal(t, types.VersionGPL406, song.Version)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
