package types

// BeatFlags is the flag byte at the head of a beat record.
type BeatFlags uint8

// Beat flag bits.
const (
	BeatDotted   BeatFlags = 1 << 0
	BeatChord    BeatFlags = 1 << 1
	BeatText     BeatFlags = 1 << 2
	BeatEffects  BeatFlags = 1 << 3
	BeatMixTable BeatFlags = 1 << 4
	BeatTuplet   BeatFlags = 1 << 5
	BeatStatus   BeatFlags = 1 << 6
)

// BeatMode says whether a beat sounds, rests, or is an empty slot.
type BeatMode uint8

const (
	// BeatNormal is a beat carrying notes.
	BeatNormal BeatMode = iota
	// BeatEmpty is a placeholder beat with no content.
	BeatEmpty
	// BeatRest is a rest.
	BeatRest
)

func (m BeatMode) String() string {
	switch m {
	case BeatEmpty:
		return "empty"
	case BeatRest:
		return "rest"
	default:
		return "normal"
	}
}

// MaxDuration is the largest duration value a beat can hold.
const MaxDuration = 127

// Dynamics is the right-hand technique applied to a beat.
type Dynamics uint8

const (
	DynamicsNone Dynamics = iota
	DynamicsTapping
	DynamicsSlapping
	DynamicsPopping
)

func (d Dynamics) String() string {
	switch d {
	case DynamicsTapping:
		return "tapping"
	case DynamicsSlapping:
		return "slapping"
	case DynamicsPopping:
		return "popping"
	default:
		return "none"
	}
}

// ValidTuplet reports whether n is an n-tuplet the format can express.
func ValidTuplet(n uint32) bool {
	switch n {
	case 3, 5, 6, 7, 9, 10, 11, 12, 13:
		return true
	}
	return false
}

// Beat is one rhythmic event of one track within one measure.
type Beat struct {
	Chord    *Chord          `json:"chord,omitempty"`
	Text     *string         `json:"text,omitempty"`
	Dynamics *Dynamics       `json:"dynamics,omitempty"`
	Bend     *Bend           `json:"bend,omitempty"`
	Mix      *MixTableChange `json:"mix,omitempty"`

	// Tuplet is 0 when the beat is not part of an n-tuplet.
	Tuplet   uint32   `json:"tuplet,omitempty"`
	Mode     BeatMode `json:"mode"`
	Duration uint8    `json:"duration"`
	Dotted   bool     `json:"dotted,omitempty"`
}

// MixUnchanged marks a mix table parameter that keeps its previous value.
const MixUnchanged int8 = -1

// MixTableChange is a mid-song change of instrument, mixer or tempo.
// Parameters equal to MixUnchanged (or Tempo == -1) are not changed.
type MixTableChange struct {
	Instrument int8  `json:"instrument"`
	Volume     int8  `json:"volume"`
	Balance    int8  `json:"balance"`
	Chorus     int8  `json:"chorus"`
	Reverb     int8  `json:"reverb"`
	Phaser     int8  `json:"phaser"`
	Tremolo    int8  `json:"tremolo"`
	Tempo      int32 `json:"tempo"`

	// Transition durations, in beats, for each changed parameter.
	VolumeDuration  uint8 `json:"volume_duration,omitempty"`
	BalanceDuration uint8 `json:"balance_duration,omitempty"`
	ChorusDuration  uint8 `json:"chorus_duration,omitempty"`
	ReverbDuration  uint8 `json:"reverb_duration,omitempty"`
	PhaserDuration  uint8 `json:"phaser_duration,omitempty"`
	TremoloDuration uint8 `json:"tremolo_duration,omitempty"`
	TempoDuration   uint8 `json:"tempo_duration,omitempty"`

	// AllTracks holds one bit per parameter applied to every track.
	AllTracks uint8 `json:"all_tracks"`
}
