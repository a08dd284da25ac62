// Package gptest builds synthetic v4 streams for tests.
//
// The encoders mirror the decoder grammar field for field. They write
// whatever the model holds, valid or not, so tests can also produce
// malformed streams from a mostly well-formed song.
package gptest

import (
	"bytes"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

// NewSong returns a song with the given number of empty measures and
// six-string tracks titled "T1", "T2", ...
func NewSong(measures, tracks int) *types.Song {
	s := &types.Song{
		Version: types.VersionGP406,
		Tempo:   120,
	}
	for i := range s.Ports {
		s.Ports[i].ID = uint32(i + 1)
	}
	for m := 0; m < measures; m++ {
		s.Measures = append(s.Measures, types.NewMeasure(m+1))
	}
	for t := 0; t < tracks; t++ {
		s.Tracks = append(s.Tracks, types.Track{
			ID:      t + 1,
			Title:   "T" + string(rune('1'+t%9)),
			Strings: 6,
			Tunings: [types.TuningSlots]int32{64, 59, 55, 50, 45, 40, -1},
			Port:    1,
			Channel: uint32(t%16 + 1),
			Frets:   24,
		})
	}
	s.Grid = make([][][]types.Beat, measures)
	for m := range s.Grid {
		s.Grid[m] = make([][]types.Beat, tracks)
		for t := range s.Grid[m] {
			s.Grid[m][t] = []types.Beat{}
		}
	}
	return s
}

// Encode writes s as a complete v4 stream, version tag first.
func Encode(s *types.Song) []byte {
	var buf bytes.Buffer
	sw := binary.NewSafeWriter(&buf)
	WriteSong(sw, s)
	return buf.Bytes()
}

// WriteSong writes every section of s in grammar order.
func WriteSong(sw *binary.SafeWriter, s *types.Song) {
	version := s.Version
	if version == "" {
		version = types.VersionGP406
	}
	_ = sw.WriteFixedString(version, types.VersionTagSize)
	WriteBody(sw, s)
}

// WriteBody writes everything after the version tag.
func WriteBody(sw *binary.SafeWriter, s *types.Song) {
	for _, str := range []string{
		s.Title, s.Subtitle, s.Interpretation, s.Album,
		s.Artist, s.Copyright, s.Writer, s.Instructions,
	} {
		_ = sw.WriteString(str)
	}
	_ = sw.WriteStringArray(s.Comments)

	_ = binary.Write(sw, uint8(s.TripletFeel))

	_ = binary.Write(sw, s.LyricsTrack)
	for _, l := range s.Lyrics {
		_ = sw.WriteLyric(l)
	}

	_ = binary.Write(sw, s.Tempo)
	_ = binary.Write(sw, int32(s.Key))
	_ = binary.Write(sw, uint8(s.Octave))

	for _, p := range s.Ports {
		_ = sw.WriteMidiPort(p)
	}

	_ = binary.Write(sw, uint32(len(s.Measures)))
	_ = binary.Write(sw, uint32(len(s.Tracks)))

	for i := range s.Measures {
		WriteMeasure(sw, &s.Measures[i])
	}
	for i := range s.Tracks {
		WriteTrack(sw, &s.Tracks[i])
	}

	for m := range s.Measures {
		for t := range s.Tracks {
			var beats []types.Beat
			if m < len(s.Grid) && t < len(s.Grid[m]) {
				beats = s.Grid[m][t]
			}
			_ = binary.Write(sw, uint32(len(beats)))
			for i := range beats {
				WriteBeat(sw, &beats[i])
			}
		}
	}
}

// WriteMeasure writes a measure header. The flag byte is derived from
// m.Flags plus the optional fields that are set.
func WriteMeasure(sw *binary.SafeWriter, m *types.Measure) {
	flags := m.Flags
	if m.Marker != nil {
		flags |= types.MeasureMarker
	}
	if m.Key != nil {
		flags |= types.MeasureTonality
	}
	_ = binary.Write(sw, uint8(flags))

	if flags&types.MeasureNumerator != 0 {
		_ = binary.Write(sw, m.Numerator)
	}
	if flags&types.MeasureDenominator != 0 {
		_ = binary.Write(sw, m.Denominator)
	}
	if flags&types.MeasureRepeatEnd != 0 {
		_ = binary.Write(sw, m.RepeatEnd)
	}
	if flags&types.MeasureAlternateEnding != 0 {
		_ = binary.Write(sw, m.AlternateEnding)
	}
	if m.Marker != nil {
		_ = sw.WriteString(m.Marker.Name)
		_ = sw.WriteColor(m.Marker.Color)
	}
	if m.Key != nil {
		_ = binary.Write(sw, int8(*m.Key))
		_ = binary.Write(sw, uint8(0))
	}
}

// WriteTrack writes a track header.
func WriteTrack(sw *binary.SafeWriter, t *types.Track) {
	_ = binary.Write(sw, uint8(t.Flags))
	_ = sw.WriteFixedString(t.Title, types.MaxTrackTitle)
	_ = binary.Write(sw, t.Strings)
	for _, tuning := range t.Tunings {
		_ = binary.Write(sw, tuning)
	}
	_ = binary.Write(sw, t.Port)
	_ = binary.Write(sw, t.Channel)
	_ = binary.Write(sw, t.EffectsChannel)
	_ = binary.Write(sw, t.Frets)
	_ = binary.Write(sw, t.Capo)
	_ = sw.WriteColor(t.Color)
}

// WriteBeat writes a beat record. The flag byte is derived from the
// fields that are set; BeatNormal is written without a status byte.
func WriteBeat(sw *binary.SafeWriter, b *types.Beat) {
	var flags types.BeatFlags
	if b.Dotted {
		flags |= types.BeatDotted
	}
	if b.Chord != nil {
		flags |= types.BeatChord
	}
	if b.Text != nil {
		flags |= types.BeatText
	}
	if b.Dynamics != nil || b.Bend != nil {
		flags |= types.BeatEffects
	}
	if b.Mix != nil {
		flags |= types.BeatMixTable
	}
	if b.Tuplet != 0 {
		flags |= types.BeatTuplet
	}
	if b.Mode != types.BeatNormal {
		flags |= types.BeatStatus
	}
	_ = binary.Write(sw, uint8(flags))

	switch b.Mode {
	case types.BeatEmpty:
		_ = binary.Write(sw, uint8(0))
	case types.BeatRest:
		_ = binary.Write(sw, uint8(2))
	}
	_ = binary.Write(sw, b.Duration)

	if b.Tuplet != 0 {
		_ = binary.Write(sw, b.Tuplet)
	}
	if b.Chord != nil {
		WriteChord(sw, b.Chord)
	}
	if b.Text != nil {
		_ = sw.WriteString(*b.Text)
	}
	if flags&types.BeatEffects != 0 {
		var e1, e2 uint8
		if b.Dynamics != nil {
			e1 |= 1 << 5
		}
		if b.Bend != nil {
			e2 |= 1 << 2
		}
		_ = binary.Write(sw, e1)
		_ = binary.Write(sw, e2)
		if b.Dynamics != nil {
			_ = binary.Write(sw, uint8(*b.Dynamics))
		}
		if b.Bend != nil {
			WriteBend(sw, b.Bend)
		}
	}
	if b.Mix != nil {
		WriteMixTable(sw, b.Mix)
	}
}

// WriteChord writes a chord diagram. A zero Format is written as the
// supported format.
func WriteChord(sw *binary.SafeWriter, c *types.Chord) {
	format := c.Format
	if format == 0 {
		format = types.ChordFormatNew
	}
	_ = binary.Write(sw, format)
	_ = binary.Write(sw, c.Sharp)
	_ = sw.WriteBytes(make([]byte, 3))
	_ = binary.Write(sw, c.Root)
	_ = binary.Write(sw, c.Type)
	_ = binary.Write(sw, c.Extension)
	_ = binary.Write(sw, c.Lowest)
	_ = binary.Write(sw, c.Tonality)
	_ = binary.Write(sw, boolByte(c.HasAdd))
	_ = sw.WriteFixedString(c.Name, types.MaxChordName)
	_ = sw.WriteBytes(make([]byte, 2))
	_ = binary.Write(sw, c.Fifth)
	_ = binary.Write(sw, c.Ninth)
	_ = binary.Write(sw, c.Eleventh)
	_ = binary.Write(sw, c.BaseFret)
	for _, f := range c.Frets {
		_ = binary.Write(sw, f)
	}
	_ = binary.Write(sw, uint8(len(c.Barres)))
	for _, b := range c.Barres {
		_ = binary.Write(sw, b.Fret)
	}
	for _, b := range c.Barres {
		_ = binary.Write(sw, b.Start)
	}
	for _, b := range c.Barres {
		_ = binary.Write(sw, b.End)
	}
	for _, o := range c.Omissions {
		_ = binary.Write(sw, boolByte(o))
	}
	_ = sw.WriteBytes(make([]byte, 1))
	_ = sw.WriteBytes(c.Fingerings[:])
	_ = binary.Write(sw, boolByte(c.Show))
}

// WriteBend writes a bend and its points.
func WriteBend(sw *binary.SafeWriter, b *types.Bend) {
	_ = binary.Write(sw, uint8(b.Type))
	_ = binary.Write(sw, uint32(len(b.Points)))
	for _, p := range b.Points {
		_ = binary.Write(sw, p.Position)
		_ = binary.Write(sw, p.Value)
		_ = binary.Write(sw, uint8(p.Vibrato))
	}
}

// WriteMixTable writes a mix table change. Transition durations are only
// written for parameters that change.
func WriteMixTable(sw *binary.SafeWriter, m *types.MixTableChange) {
	for _, v := range []int8{m.Instrument, m.Volume, m.Balance, m.Chorus, m.Reverb, m.Phaser, m.Tremolo} {
		_ = binary.Write(sw, v)
	}
	_ = binary.Write(sw, m.Tempo)

	params := []struct {
		value    int8
		duration uint8
	}{
		{m.Volume, m.VolumeDuration},
		{m.Balance, m.BalanceDuration},
		{m.Chorus, m.ChorusDuration},
		{m.Reverb, m.ReverbDuration},
		{m.Phaser, m.PhaserDuration},
		{m.Tremolo, m.TremoloDuration},
	}
	for _, p := range params {
		if p.value != types.MixUnchanged {
			_ = binary.Write(sw, p.duration)
		}
	}
	if m.Tempo != -1 {
		_ = binary.Write(sw, m.TempoDuration)
	}
	_ = binary.Write(sw, m.AllTracks)
}

// MinimalStream returns the smallest well-formed v4.06 stream: empty
// metadata, one 4/4 measure, one track titled "T" and an empty beat group.
func MinimalStream() []byte {
	var buf bytes.Buffer
	sw := binary.NewSafeWriter(&buf)

	_ = sw.WriteFixedString(types.VersionGP406, types.VersionTagSize)
	for i := 0; i < 8; i++ {
		_ = sw.WriteBytes([]byte{0x01, 0x00, 0x00, 0x00, 0x00})
	}
	_ = sw.WriteBytes([]byte{0x00, 0x00, 0x00, 0x00}) // comments
	_ = binary.Write(sw, uint8(0))                    // triplet feel
	_ = binary.Write(sw, uint32(0))                   // lyrics track
	for i := 0; i < 5; i++ {
		_ = sw.WriteBytes(make([]byte, 8))
	}
	_ = binary.Write(sw, uint32(120))
	_ = binary.Write(sw, int32(0))
	_ = binary.Write(sw, uint8(0))
	_ = sw.WriteBytes(make([]byte, 4*16*12))
	_ = binary.Write(sw, uint32(1))
	_ = binary.Write(sw, uint32(1))
	_ = binary.Write(sw, uint8(0)) // measure header

	_ = binary.Write(sw, uint8(0))
	_ = sw.WriteFixedString("T", types.MaxTrackTitle)
	_ = binary.Write(sw, uint32(6))
	_ = sw.WriteBytes(make([]byte, 7*4))
	_ = sw.WriteBytes(make([]byte, 5*4))
	_ = sw.WriteColor(types.Color{})

	_ = binary.Write(sw, uint32(0)) // beat count
	return buf.Bytes()
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
