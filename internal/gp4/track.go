package gp4

import (
	"fmt"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

func (p *parser) readTracks(n uint32) error {
	p.song.Tracks = make([]types.Track, 0, binary.Prealloc(n))
	for i := uint32(0); i < n; i++ {
		t, err := p.readTrack(int(i) + 1)
		if err != nil {
			return fmt.Errorf("track %d: %w", i+1, err)
		}
		p.song.Tracks = append(p.song.Tracks, t)
	}
	return nil
}

// readTrack reads one track header. All seven tuning slots are always
// present, whatever the string count.
func (p *parser) readTrack(id int) (types.Track, error) {
	t := types.Track{ID: id}

	flags, err := p.r.U8("track flags")
	if err != nil {
		return t, err
	}
	t.Flags = types.TrackFlags(flags)

	if t.Title, err = p.r.FixedString(types.MaxTrackTitle, "track title"); err != nil {
		return t, err
	}

	cr := binary.NewChainReader(p.r)
	t.Strings = binary.ReadChained[uint32](cr, "string count")
	for i := range t.Tunings {
		t.Tunings[i] = binary.ReadChained[int32](cr, "tuning")
	}
	t.Port = binary.ReadChained[uint32](cr, "port")
	t.Channel = binary.ReadChained[uint32](cr, "channel")
	t.EffectsChannel = binary.ReadChained[uint32](cr, "effects channel")
	t.Frets = binary.ReadChained[uint32](cr, "fret count")
	t.Capo = binary.ReadChained[uint32](cr, "capo")
	if err := cr.Error(); err != nil {
		return t, err
	}

	if t.Color, err = p.r.Color("track color"); err != nil {
		return t, err
	}
	return t, nil
}
