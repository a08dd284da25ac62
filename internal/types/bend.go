package types

import "fmt"

// BendType is the shape of a bend. Values past BendReleaseDown are kept
// verbatim, the format leaves room for new shapes.
type BendType uint8

const (
	BendNone BendType = iota
	BendBend
	BendBendRelease
	BendBendReleaseBend
	BendPrebend
	BendPrebendRelease
	BendDip
	BendDive
	BendReleaseUp
	BendInvertedDip
	BendReturn
	BendReleaseDown
)

var bendTypeNames = [...]string{
	"none",
	"bend",
	"bend-release",
	"bend-release-bend",
	"prebend",
	"prebend-release",
	"dip",
	"dive",
	"release-up",
	"inverted-dip",
	"return",
	"release-down",
}

func (b BendType) String() string {
	if int(b) < len(bendTypeNames) {
		return bendTypeNames[b]
	}
	return fmt.Sprintf("BendType(%d)", uint8(b))
}

// Known reports whether b is one of the named shapes.
func (b BendType) Known() bool {
	return b <= BendReleaseDown
}

// Vibrato is the vibrato speed at a bend point.
type Vibrato uint8

const (
	VibratoNone Vibrato = iota
	VibratoFast
	VibratoAverage
	VibratoSlow
)

// ParseVibrato maps a stored byte to a Vibrato, treating unknown values as none.
func ParseVibrato(b uint8) Vibrato {
	if b > uint8(VibratoSlow) {
		return VibratoNone
	}
	return Vibrato(b)
}

func (v Vibrato) String() string {
	switch v {
	case VibratoFast:
		return "fast"
	case VibratoAverage:
		return "average"
	case VibratoSlow:
		return "slow"
	default:
		return "none"
	}
}

// BendPoint is one point of a bend curve.
type BendPoint struct {
	// Position along the beat, 0..255 in the file's units.
	Position uint32 `json:"position"`
	// Value is the vertical (pitch) position.
	Value   uint32  `json:"value"`
	Vibrato Vibrato `json:"vibrato"`
}

// Bend is a pitch bend effect described as a curve of points.
type Bend struct {
	Points []BendPoint `json:"points"`
	Type   BendType    `json:"type"`
}
