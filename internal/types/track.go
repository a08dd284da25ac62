package types

// Color is an RGB color stored as three 8-bit channels.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Normalized returns the channels scaled to 0.0..1.0.
func (c Color) Normalized() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// MidiChannel is the mixer configuration of one channel of a MIDI port.
type MidiChannel struct {
	Port       uint32 `json:"port"`
	Channel    uint32 `json:"channel"`
	Instrument uint32 `json:"instrument"`
	Volume     uint8  `json:"volume"`
	Balance    uint8  `json:"balance"`
	Chorus     uint8  `json:"chorus"`
	Reverb     uint8  `json:"reverb"`
	Phaser     uint8  `json:"phaser"`
	Tremolo    uint8  `json:"tremolo"`
}

// MidiPort groups the 16 channels of one MIDI port.
type MidiPort struct {
	ID       uint32          `json:"id"`
	Channels [16]MidiChannel `json:"channels"`
}

// TrackFlags is the flag byte at the head of a track record.
type TrackFlags uint8

// Track flag bits.
const (
	TrackDrums        TrackFlags = 1 << 0
	TrackTwelveString TrackFlags = 1 << 1
	TrackBanjo        TrackFlags = 1 << 2
)

// TuningSlots is the number of tuning values stored for every track,
// regardless of how many strings the instrument has.
const TuningSlots = 7

// MaxTrackTitle is the size of the fixed title slot of a track.
const MaxTrackTitle = 40

// Track is one instrument of the song.
type Track struct {
	Title string `json:"title"`

	// Tunings holds the MIDI note of each string. Only the first Strings
	// entries are meaningful.
	Tunings [TuningSlots]int32 `json:"tunings"`

	ID             int        `json:"id"`
	Strings        uint32     `json:"strings"`
	Port           uint32     `json:"port"`
	Channel        uint32     `json:"channel"`
	EffectsChannel uint32     `json:"effects_channel"`
	Frets          uint32     `json:"frets"`
	Capo           uint32     `json:"capo"`
	Color          Color      `json:"color"`
	Flags          TrackFlags `json:"flags"`
}

// IsDrums reports whether the track is a percussion track.
func (t *Track) IsDrums() bool { return t.Flags&TrackDrums != 0 }

// IsTwelveString reports whether the track is a 12-string guitar.
func (t *Track) IsTwelveString() bool { return t.Flags&TrackTwelveString != 0 }

// IsBanjo reports whether the track is a banjo.
func (t *Track) IsBanjo() bool { return t.Flags&TrackBanjo != 0 }

// StringTunings returns the tunings of the strings the track actually has.
func (t *Track) StringTunings() []int32 {
	n := int(t.Strings)
	if n > TuningSlots {
		n = TuningSlots
	}
	return t.Tunings[:n]
}
