package gp4

import (
	"fmt"
	"unsafe"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

// Effect bits of the first and second effect bytes of a beat.
const (
	effectDynamics = 1 << 5 // first byte
	effectBend     = 1 << 2 // second byte
)

// Status byte values.
const (
	statusEmpty = 0
	statusRest  = 2
)

var beatSize = uint64(unsafe.Sizeof(types.Beat{}))

// readGrid reads one beat group per (measure, track) pair, measures outermost.
func (p *parser) readGrid() error {
	p.song.Grid = make([][][]types.Beat, len(p.song.Measures))
	for m := range p.song.Grid {
		row := make([][]types.Beat, len(p.song.Tracks))
		for t := range row {
			beats, err := p.readBeatGroup()
			if err != nil {
				return fmt.Errorf("measure %d track %d: %w", m+1, t+1, err)
			}
			row[t] = beats
		}
		p.song.Grid[m] = row
	}
	return nil
}

func (p *parser) readBeatGroup() ([]types.Beat, error) {
	n, err := p.r.U32("beat count")
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []types.Beat{}, nil
	}
	if err := p.r.Reserve(uint64(n), beatSize, "beats"); err != nil {
		return nil, err
	}
	beats := make([]types.Beat, 0, binary.Prealloc(n))
	for i := uint32(0); i < n; i++ {
		var b types.Beat
		if err := p.readBeat(&b); err != nil {
			return nil, fmt.Errorf("beat %d: %w", i+1, err)
		}
		beats = append(beats, b)
	}
	return beats, nil
}

// readBeat reads one beat record: flags, optional status, duration, then
// tuplet, chord, text, effects and mix table as the flags announce them.
func (p *parser) readBeat(b *types.Beat) error {
	raw, err := p.r.U8("beat flags")
	if err != nil {
		return err
	}
	flags := types.BeatFlags(raw)
	b.Dotted = flags&types.BeatDotted != 0

	if flags&types.BeatStatus != 0 {
		off := p.r.Offset()
		status, err := p.r.U8("beat status")
		if err != nil {
			return err
		}
		switch status {
		case statusEmpty:
			b.Mode = types.BeatEmpty
		case statusRest:
			b.Mode = types.BeatRest
		default:
			return p.invalid("beat status", off, "unknown status %d", status)
		}
	}

	off := p.r.Offset()
	duration, err := p.r.U8("duration")
	if err != nil {
		return err
	}
	if duration > types.MaxDuration {
		if err := p.warn("beat", off, "duration %d exceeds %d, dropped", duration, types.MaxDuration); err != nil {
			return err
		}
	} else {
		b.Duration = duration
	}

	if flags&types.BeatTuplet != 0 {
		off := p.r.Offset()
		n, err := p.r.U32("tuplet")
		if err != nil {
			return err
		}
		if types.ValidTuplet(n) {
			b.Tuplet = n
		} else if err := p.warn("beat", off, "invalid %d-tuplet ignored", n); err != nil {
			return err
		}
	}

	if flags&types.BeatChord != 0 {
		c, err := p.readChord()
		if err != nil {
			return fmt.Errorf("chord: %w", err)
		}
		b.Chord = c
	}

	if flags&types.BeatText != 0 {
		text, err := p.r.String("beat text")
		if err != nil {
			return err
		}
		b.Text = &text
	}

	if flags&types.BeatEffects != 0 {
		if err := p.readEffects(b); err != nil {
			return fmt.Errorf("effects: %w", err)
		}
	}

	if flags&types.BeatMixTable != 0 {
		mix, err := p.readMixTable()
		if err != nil {
			return fmt.Errorf("mix table: %w", err)
		}
		b.Mix = mix
	}
	return nil
}

func (p *parser) readEffects(b *types.Beat) error {
	e1, err := p.r.U8("effects 1")
	if err != nil {
		return err
	}
	e2, err := p.r.U8("effects 2")
	if err != nil {
		return err
	}

	if e1&effectDynamics != 0 {
		off := p.r.Offset()
		v, err := p.r.U8("dynamics")
		if err != nil {
			return err
		}
		if v > uint8(types.DynamicsPopping) {
			return p.invalid("dynamics", off, "unknown dynamics %d", v)
		}
		d := types.Dynamics(v)
		b.Dynamics = &d
	}

	if e2&effectBend != 0 {
		bend, err := p.readBend()
		if err != nil {
			return fmt.Errorf("bend: %w", err)
		}
		b.Bend = bend
	}
	return nil
}
