package gp4

import (
	"fmt"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

func (p *parser) readMeasures(n uint32) error {
	p.song.Measures = make([]types.Measure, 0, binary.Prealloc(n))
	for i := uint32(0); i < n; i++ {
		m, err := p.readMeasure(int(i) + 1)
		if err != nil {
			return fmt.Errorf("measure %d: %w", i+1, err)
		}
		p.song.Measures = append(p.song.Measures, m)
	}
	return nil
}

// readMeasure reads one measure header. Fields whose flag bit is clear keep
// the measure defaults.
func (p *parser) readMeasure(id int) (types.Measure, error) {
	m := types.NewMeasure(id)

	header, err := p.r.U8("measure flags")
	if err != nil {
		return m, err
	}
	m.Flags = types.MeasureFlags(header)

	if m.Flags&types.MeasureNumerator != 0 {
		if m.Numerator, err = p.r.U8("numerator"); err != nil {
			return m, err
		}
	}
	if m.Flags&types.MeasureDenominator != 0 {
		if m.Denominator, err = p.r.U8("denominator"); err != nil {
			return m, err
		}
	}
	if m.Flags&types.MeasureRepeatEnd != 0 {
		if m.RepeatEnd, err = p.r.U8("repeat end"); err != nil {
			return m, err
		}
	}
	if m.Flags&types.MeasureAlternateEnding != 0 {
		if m.AlternateEnding, err = p.r.U8("alternate ending"); err != nil {
			return m, err
		}
	}
	if m.Flags&types.MeasureMarker != 0 {
		name, err := p.r.String("marker name")
		if err != nil {
			return m, err
		}
		color, err := p.r.Color("marker color")
		if err != nil {
			return m, err
		}
		m.Marker = &types.Marker{Name: name, Color: color}
	}
	if m.Flags&types.MeasureTonality != 0 {
		key, err := p.r.I8("measure key")
		if err != nil {
			return m, err
		}
		if err := p.r.Skip(1, "measure key padding"); err != nil {
			return m, err
		}
		k := types.Key(key)
		m.Key = &k
	}
	return m, nil
}
