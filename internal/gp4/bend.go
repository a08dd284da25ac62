package gp4

import (
	"unsafe"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

var bendPointSize = uint64(unsafe.Sizeof(types.BendPoint{}))

// readBend reads a bend and its points. Unknown bend types are kept as-is.
func (p *parser) readBend() (*types.Bend, error) {
	kind, err := p.r.U8("bend type")
	if err != nil {
		return nil, err
	}
	n, err := p.r.U32("bend point count")
	if err != nil {
		return nil, err
	}
	if err := p.r.Reserve(uint64(n), bendPointSize, "bend points"); err != nil {
		return nil, err
	}

	b := &types.Bend{Type: types.BendType(kind)}
	if !b.Type.Known() {
		p.log.DebugContext(p.ctx, "unknown bend type kept", "type", kind, "offset", p.r.Offset())
	}
	if n > 0 {
		b.Points = make([]types.BendPoint, 0, binary.Prealloc(n))
	}

	cr := binary.NewChainReader(p.r)
	for i := uint32(0); i < n; i++ {
		pt := types.BendPoint{
			Position: binary.ReadChained[uint32](cr, "bend position"),
			Value:    binary.ReadChained[uint32](cr, "bend value"),
			Vibrato:  types.ParseVibrato(binary.ReadChained[uint8](cr, "bend vibrato")),
		}
		if cr.Error() != nil {
			break
		}
		b.Points = append(b.Points, pt)
	}
	if err := cr.Error(); err != nil {
		return nil, err
	}
	return b, nil
}
