// Package smfexport writes the MIDI setup of a decoded song as a Standard
// MIDI File: a conductor track with tempo, meter and markers, then one
// track per song track carrying its instrument and mixer settings.
//
// Beats are not rendered; the file describes the song's structure and
// channel setup only.
package smfexport

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/simonhull/tablature/internal/types"
)

// Resolution is the number of ticks per quarter note of exported files.
const Resolution = 960

// maxDelta is the largest delta time a variable-length quantity can hold.
const maxDelta = 0x0FFFFFFF

// defaultTempo is used when the song declares a tempo of zero.
const defaultTempo = 120

// General MIDI controller numbers.
const (
	ccVolume = 7
	ccPan    = 10
	ccReverb = 91
	ccChorus = 93
)

// ErrNoSong is returned when Build is called without a song.
var ErrNoSong = errors.New("smfexport: nil song")

// Build converts the song's structure and MIDI setup to an SMF type 1 file.
func Build(song *types.Song) (*smf.SMF, error) {
	if song == nil {
		return nil, ErrNoSong
	}

	out := smf.New()
	out.TimeFormat = smf.MetricTicks(Resolution)

	if err := out.Add(conductor(song)); err != nil {
		return nil, fmt.Errorf("conductor track: %w", err)
	}
	for i := range song.Tracks {
		if err := out.Add(instrument(song, &song.Tracks[i])); err != nil {
			return nil, fmt.Errorf("track %d: %w", song.Tracks[i].ID, err)
		}
	}
	return out, nil
}

// Write builds the SMF for song and writes it to w.
func Write(w io.Writer, song *types.Song) error {
	out, err := Build(song)
	if err != nil {
		return err
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}

// conductor lays out the measures: meter changes and markers at each
// measure boundary, starting with the song tempo.
func conductor(song *types.Song) smf.Track {
	var tr smf.Track
	if song.Title != "" {
		tr.Add(0, smf.MetaTrackSequenceName(song.Title))
	}
	if song.Copyright != "" {
		tr.Add(0, smf.MetaCopyright(song.Copyright))
	}
	tempo := song.Tempo
	if tempo == 0 {
		tempo = defaultTempo
	}
	tr.Add(0, smf.MetaTempo(float64(tempo)))

	num, denom := uint8(types.DefaultNumerator), uint8(types.DefaultDenominator)
	var delta uint32
	for i := range song.Measures {
		m := &song.Measures[i]
		if i == 0 || m.HasTimeSignature() {
			if m.Numerator > 0 {
				num = m.Numerator
			}
			if validDenominator(m.Denominator) {
				denom = m.Denominator
			}
			tr.Add(delta, smf.MetaMeter(num, denom))
			delta = 0
		}
		if m.Marker != nil {
			tr.Add(delta, smf.MetaMarker(m.Marker.Name))
			delta = 0
		}
		ticks := measureTicks(num, denom)
		if delta > maxDelta-ticks {
			// Restate the meter so no delta outgrows its encoding.
			tr.Add(delta, smf.MetaMeter(num, denom))
			delta = 0
		}
		delta += ticks
	}
	tr.Close(delta)
	return tr
}

// instrument emits the track name, program and mixer settings on the
// track's channel.
func instrument(song *types.Song, t *types.Track) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(t.Title))

	mc, ok := song.Channel(t)
	if ok {
		ch := channel(t.Channel)
		if mc.Instrument <= 127 {
			tr.Add(0, midi.ProgramChange(ch, uint8(mc.Instrument)))
		}
		tr.Add(0, midi.ControlChange(ch, ccVolume, controller(mc.Volume)))
		tr.Add(0, midi.ControlChange(ch, ccPan, controller(mc.Balance)))
		tr.Add(0, midi.ControlChange(ch, ccReverb, controller(mc.Reverb)))
		tr.Add(0, midi.ControlChange(ch, ccChorus, controller(mc.Chorus)))
	}
	tr.Close(0)
	return tr
}

// controller scales a stored mixer value (0..16) to a MIDI controller value.
func controller(v uint8) uint8 {
	c := int(v)<<3 - 1
	switch {
	case c < 0:
		return 0
	case c > 127:
		return 127
	}
	return uint8(c)
}

// channel converts a 1-based channel number to a 0-based MIDI channel.
func channel(n uint32) uint8 {
	if n < 1 || n > 16 {
		return 0
	}
	return uint8(n - 1)
}

func validDenominator(d uint8) bool {
	return d != 0 && d&(d-1) == 0
}

// measureTicks is the length of a measure of num/denom in ticks.
func measureTicks(num, denom uint8) uint32 {
	return uint32(num) * Resolution * 4 / uint32(denom)
}
