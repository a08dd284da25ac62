package gp4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbin "github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/gptest"
	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/types"
)

func TestReadBend(t *testing.T) {
	want := &types.Bend{
		Type: types.BendPrebendRelease,
		Points: []types.BendPoint{
			{Position: 0, Value: 4},
			{Position: 60, Value: 4, Vibrato: types.VibratoSlow},
		},
	}
	data := encode(func(sw *tbin.SafeWriter) { gptest.WriteBend(sw, want) })

	p := newParser(data, registry.Options{})
	got, err := p.readBend()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadBend_UnknownValues(t *testing.T) {
	data := encode(func(sw *tbin.SafeWriter) {
		_ = tbin.Write(sw, uint8(40))
		_ = tbin.Write(sw, uint32(1))
		_ = tbin.Write(sw, uint32(10))
		_ = tbin.Write(sw, uint32(20))
		_ = tbin.Write(sw, uint8(9))
	})

	p := newParser(data, registry.Options{})
	got, err := p.readBend()
	require.NoError(t, err)
	assert.Equal(t, types.BendType(40), got.Type)
	assert.False(t, got.Type.Known())
	require.Len(t, got.Points, 1)
	assert.Equal(t, types.VibratoNone, got.Points[0].Vibrato)
}

func TestReadBend_PointCountOverBudget(t *testing.T) {
	data := encode(func(sw *tbin.SafeWriter) {
		_ = tbin.Write(sw, uint8(types.BendBend))
		_ = tbin.Write(sw, uint32(0xFFFFFFFF))
	})

	p := newParser(data, registry.Options{})
	_, err := p.readBend()
	requireKind(t, err, types.KindResourceLimit)
}

func TestReadBend_Truncated(t *testing.T) {
	data := encode(func(sw *tbin.SafeWriter) {
		_ = tbin.Write(sw, uint8(types.BendDip))
		_ = tbin.Write(sw, uint32(2))
		_ = tbin.Write(sw, uint32(0))
	})

	p := newParser(data, registry.Options{})
	_, err := p.readBend()
	requireKind(t, err, types.KindEOF)
}
