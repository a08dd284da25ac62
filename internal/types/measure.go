package types

// MeasureFlags is the flag byte at the head of a measure record.
// Each bit announces an optional field that follows in the stream.
type MeasureFlags uint8

// Measure flag bits.
const (
	MeasureNumerator       MeasureFlags = 1 << 0
	MeasureDenominator     MeasureFlags = 1 << 1
	MeasureRepeatBegin     MeasureFlags = 1 << 2
	MeasureRepeatEnd       MeasureFlags = 1 << 3
	MeasureAlternateEnding MeasureFlags = 1 << 4
	MeasureMarker          MeasureFlags = 1 << 5
	MeasureTonality        MeasureFlags = 1 << 6
	MeasureDoubleBar       MeasureFlags = 1 << 7
)

// Default time signature of a measure whose header does not set one.
const (
	DefaultNumerator   = 4
	DefaultDenominator = 4
)

// Marker is a named rehearsal mark attached to a measure.
type Marker struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// Measure is one bar of the song, shared by all tracks.
//
// Optional fields are only present when the header flag was set. Absence
// means "inherit from the previous measure", not zero.
type Measure struct {
	Marker *Marker `json:"marker,omitempty"`
	Key    *Key    `json:"key,omitempty"`

	ID              int          `json:"id"`
	Numerator       uint8        `json:"numerator"`
	Denominator     uint8        `json:"denominator"`
	RepeatEnd       uint8        `json:"repeat_end"`
	AlternateEnding uint8        `json:"alternate_ending"`
	Flags           MeasureFlags `json:"flags"`
}

// NewMeasure returns a measure with the default 4/4 time signature.
func NewMeasure(id int) Measure {
	return Measure{
		ID:          id,
		Numerator:   DefaultNumerator,
		Denominator: DefaultDenominator,
	}
}

// RepeatBegin reports whether a repeat section opens at this measure.
func (m *Measure) RepeatBegin() bool { return m.Flags&MeasureRepeatBegin != 0 }

// DoubleBar reports whether the measure ends with a double bar line.
func (m *Measure) DoubleBar() bool { return m.Flags&MeasureDoubleBar != 0 }

// HasTimeSignature reports whether the header overrode the numerator or denominator.
func (m *Measure) HasTimeSignature() bool {
	return m.Flags&(MeasureNumerator|MeasureDenominator) != 0
}
