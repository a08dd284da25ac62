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

func TestReadMixTable(t *testing.T) {
	tests := []struct {
		name string
		mix  types.MixTableChange
		size int
	}{
		{
			name: "nothing changes",
			mix: types.MixTableChange{
				Instrument: -1, Volume: -1, Balance: -1, Chorus: -1,
				Reverb: -1, Phaser: -1, Tremolo: -1, Tempo: -1,
			},
			size: 7 + 4 + 1,
		},
		{
			name: "everything changes",
			mix: types.MixTableChange{
				Instrument: 1, Volume: 2, Balance: 3, Chorus: 4,
				Reverb: 5, Phaser: 6, Tremolo: 7, Tempo: 200,
				VolumeDuration: 1, BalanceDuration: 2, ChorusDuration: 3,
				ReverbDuration: 4, PhaserDuration: 5, TremoloDuration: 6,
				TempoDuration: 7, AllTracks: 0x3F,
			},
			size: 7 + 4 + 7 + 1,
		},
		{
			name: "volume and tempo",
			mix: types.MixTableChange{
				Instrument: -1, Volume: 100, Balance: -1, Chorus: -1,
				Reverb: -1, Phaser: -1, Tremolo: -1, Tempo: 90,
				VolumeDuration: 4, TempoDuration: 2,
			},
			size: 7 + 4 + 2 + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encode(func(sw *tbin.SafeWriter) {
				gptest.WriteMixTable(sw, &tt.mix)
				_ = tbin.Write(sw, uint8(0xAA))
			})
			require.Len(t, data, tt.size+1)

			p := newParser(data, registry.Options{})
			got, err := p.readMixTable()
			require.NoError(t, err)
			assert.Equal(t, &tt.mix, got)

			next, err := p.r.U8("sentinel")
			require.NoError(t, err)
			assert.Equal(t, uint8(0xAA), next, "mix table left the stream misaligned")
		})
	}
}
