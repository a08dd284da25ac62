package gp4

import (
	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

// readMixTable reads a mix table change: seven signed parameter bytes and
// a tempo, one transition duration for each parameter that changes (the
// instrument has none), then the apply-to-all-tracks bit set.
func (p *parser) readMixTable() (*types.MixTableChange, error) {
	cr := binary.NewChainReader(p.r)
	m := &types.MixTableChange{
		Instrument: binary.ReadChained[int8](cr, "mix instrument"),
		Volume:     binary.ReadChained[int8](cr, "mix volume"),
		Balance:    binary.ReadChained[int8](cr, "mix balance"),
		Chorus:     binary.ReadChained[int8](cr, "mix chorus"),
		Reverb:     binary.ReadChained[int8](cr, "mix reverb"),
		Phaser:     binary.ReadChained[int8](cr, "mix phaser"),
		Tremolo:    binary.ReadChained[int8](cr, "mix tremolo"),
		Tempo:      binary.ReadChained[int32](cr, "mix tempo"),
	}

	durations := []struct {
		value int8
		dst   *uint8
		what  string
	}{
		{m.Volume, &m.VolumeDuration, "volume duration"},
		{m.Balance, &m.BalanceDuration, "balance duration"},
		{m.Chorus, &m.ChorusDuration, "chorus duration"},
		{m.Reverb, &m.ReverbDuration, "reverb duration"},
		{m.Phaser, &m.PhaserDuration, "phaser duration"},
		{m.Tremolo, &m.TremoloDuration, "tremolo duration"},
	}
	for _, d := range durations {
		if d.value != types.MixUnchanged {
			*d.dst = binary.ReadChained[uint8](cr, d.what)
		}
	}
	if m.Tempo != -1 {
		m.TempoDuration = binary.ReadChained[uint8](cr, "tempo duration")
	}
	m.AllTracks = binary.ReadChained[uint8](cr, "mix all tracks")

	if err := cr.Error(); err != nil {
		return nil, err
	}
	return m, nil
}
