package gp4

import (
	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

// readChord reads a chord diagram in the new (format 1) layout. Any other
// format is rejected before the rest of the diagram is read.
func (p *parser) readChord() (*types.Chord, error) {
	off := p.r.Offset()
	format, err := p.r.U8("chord format")
	if err != nil {
		return nil, err
	}
	if format != types.ChordFormatNew {
		return nil, &types.Error{
			Kind:   types.KindNotSupported,
			What:   "chord format",
			Offset: off,
			Reason: "only the new chord diagram layout is supported",
		}
	}

	c := &types.Chord{Format: format}
	cr := binary.NewChainReader(p.r)

	c.Sharp = binary.ReadChained[uint8](cr, "chord sharp")
	cr.Skip(3, "chord padding")
	c.Root = binary.ReadChained[uint8](cr, "chord root")
	c.Type = binary.ReadChained[uint8](cr, "chord type")
	c.Extension = binary.ReadChained[uint8](cr, "chord extension")
	c.Lowest = binary.ReadChained[int32](cr, "chord lowest note")
	c.Tonality = binary.ReadChained[int32](cr, "chord tonality")
	c.HasAdd = cr.Bool("chord add")
	c.Name = cr.FixedString(types.MaxChordName, "chord name")
	cr.Skip(2, "chord padding")
	c.Fifth = binary.ReadChained[uint8](cr, "chord fifth")
	c.Ninth = binary.ReadChained[uint8](cr, "chord ninth")
	c.Eleventh = binary.ReadChained[uint8](cr, "chord eleventh")
	c.BaseFret = binary.ReadChained[uint32](cr, "chord base fret")
	for i := range c.Frets {
		c.Frets[i] = binary.ReadChained[uint32](cr, "chord fret")
	}
	if err := cr.Error(); err != nil {
		return nil, err
	}

	off = p.r.Offset()
	nBarres, err := p.r.U8("barre count")
	if err != nil {
		return nil, err
	}
	if nBarres > types.MaxBarres {
		return nil, p.invalid("barre count", off, "%d barres, at most %d allowed", nBarres, types.MaxBarres)
	}
	if nBarres > 0 {
		c.Barres = make([]types.Barre, nBarres)
	}
	for i := range c.Barres {
		c.Barres[i].Fret = binary.ReadChained[uint8](cr, "barre fret")
	}
	for i := range c.Barres {
		c.Barres[i].Start = binary.ReadChained[uint8](cr, "barre start")
	}
	for i := range c.Barres {
		c.Barres[i].End = binary.ReadChained[uint8](cr, "barre end")
	}

	for i := range c.Omissions {
		c.Omissions[i] = cr.Bool("chord omission")
	}
	cr.Skip(1, "chord padding")
	for i := range c.Fingerings {
		c.Fingerings[i] = binary.ReadChained[uint8](cr, "chord fingering")
	}
	c.Show = cr.Bool("chord show")
	if err := cr.Error(); err != nil {
		return nil, err
	}
	return c, nil
}
