package types

// ChordFormatNew is the only chord diagram layout the v4 grammar decodes.
const ChordFormatNew = 1

// MaxBarres is the largest number of barres a chord diagram may carry.
const MaxBarres = 5

// MaxChordName is the size of the fixed name slot of a chord diagram.
const MaxChordName = 20

// ChordStrings is the number of per-string slots in a chord diagram.
const ChordStrings = 7

// Barre is a finger laid across several strings at one fret.
type Barre struct {
	Fret  uint8 `json:"fret"`
	Start uint8 `json:"start"`
	End   uint8 `json:"end"`
}

// Omission intervals, in the order the format stores them.
var OmissionIntervals = [7]int{1, 3, 5, 7, 9, 11, 13}

// Chord is a chord diagram attached to a beat.
type Chord struct {
	Name string `json:"name"`

	Barres []Barre `json:"barres,omitempty"`

	// Frets holds the fret of each string; -1 (as uint32) means not played.
	Frets [ChordStrings]uint32 `json:"frets"`

	// Omissions flags the intervals 1,3,5,7,9,11,13 left out of the chord.
	Omissions [7]bool `json:"omissions"`

	Fingerings [ChordStrings]uint8 `json:"fingerings"`

	Lowest   int32  `json:"lowest"`
	Tonality int32  `json:"tonality"`
	BaseFret uint32 `json:"base_fret"`

	Format    uint8 `json:"format"`
	Sharp     uint8 `json:"sharp"`
	Root      uint8 `json:"root"`
	Type      uint8 `json:"type"`
	Extension uint8 `json:"extension"`
	Fifth     uint8 `json:"fifth"`
	Ninth     uint8 `json:"ninth"`
	Eleventh  uint8 `json:"eleventh"`
	HasAdd    bool  `json:"has_add"`
	Show      bool  `json:"show"`
}

// Omits reports whether the given interval (1, 3, ... 13) is omitted.
func (c *Chord) Omits(interval int) bool {
	for i, iv := range OmissionIntervals {
		if iv == interval {
			return c.Omissions[i]
		}
	}
	return false
}
