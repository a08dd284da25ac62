package gp4

import (
	"fmt"
	"unsafe"

	"github.com/simonhull/tablature/internal/types"
)

const (
	lyricLines = 5
	midiPorts  = 4
)

func (p *parser) readAttributes() error {
	fields := []struct {
		dst  *string
		what string
	}{
		{&p.song.Title, "title"},
		{&p.song.Subtitle, "subtitle"},
		{&p.song.Interpretation, "interpretation"},
		{&p.song.Album, "album"},
		{&p.song.Artist, "artist"},
		{&p.song.Copyright, "copyright"},
		{&p.song.Writer, "writer"},
		{&p.song.Instructions, "instructions"},
	}
	for _, f := range fields {
		s, err := p.r.String(f.what)
		if err != nil {
			return err
		}
		*f.dst = s
	}

	comments, err := p.r.StringArray("comments")
	if err != nil {
		return err
	}
	p.song.Comments = comments
	return nil
}

func (p *parser) readTripletFeel() error {
	b, err := p.r.U8("triplet feel")
	if err != nil {
		return err
	}
	if b != 0 {
		p.song.TripletFeel = types.TripletFeelEighth
	}
	return nil
}

func (p *parser) readLyrics() error {
	track, err := p.r.U32("lyrics track")
	if err != nil {
		return err
	}
	p.song.LyricsTrack = track

	for i := 0; i < lyricLines; i++ {
		l, err := p.r.Lyric(fmt.Sprintf("lyric %d", i+1))
		if err != nil {
			return err
		}
		p.song.Lyrics[i] = l
	}
	return nil
}

// readGlobals reads tempo, key signature and octave.
func (p *parser) readGlobals() error {
	tempo, err := p.r.U32("tempo")
	if err != nil {
		return err
	}
	p.song.Tempo = tempo

	off := p.r.Offset()
	key, err := p.r.I32("key")
	if err != nil {
		return err
	}
	p.song.Key = types.Key(key)
	if !p.song.Key.Valid() {
		if err := p.warn("key", off, "key signature %d outside -7..7", key); err != nil {
			return err
		}
	}

	octave, err := p.r.U8("octave")
	if err != nil {
		return err
	}
	p.song.Octave = types.Octave(octave)
	return nil
}

func (p *parser) readPorts() error {
	for i := 0; i < midiPorts; i++ {
		port, err := p.r.MidiPort(uint32(i + 1))
		if err != nil {
			return err
		}
		p.song.Ports[i] = port
	}
	return nil
}

// readCounts reads the measure and track counts and charges the model
// they imply before anything is allocated.
func (p *parser) readCounts() (nMeasures, nTracks uint32, err error) {
	if nMeasures, err = p.r.U32("measure count"); err != nil {
		return 0, 0, err
	}
	if nTracks, err = p.r.U32("track count"); err != nil {
		return 0, 0, err
	}
	if err = p.r.Reserve(uint64(nMeasures), uint64(unsafe.Sizeof(types.Measure{})), "measures"); err != nil {
		return 0, 0, err
	}
	if err = p.r.Reserve(uint64(nTracks), uint64(unsafe.Sizeof(types.Track{})), "tracks"); err != nil {
		return 0, 0, err
	}
	groups := uint64(nMeasures) * uint64(nTracks)
	if err = p.r.Reserve(groups, uint64(unsafe.Sizeof([]types.Beat(nil))), "beat groups"); err != nil {
		return 0, 0, err
	}

	p.log.DebugContext(p.ctx, "header decoded",
		"title", p.song.Title,
		"tempo", p.song.Tempo,
		"measures", nMeasures,
		"tracks", nTracks)
	return nMeasures, nTracks, nil
}
