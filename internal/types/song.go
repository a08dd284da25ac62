// Package types provides the song model produced by the tablature decoders.
//
// Every value in this package is built once by a decoder during a single
// pass over the stream. Ownership is a tree: a Song owns its measures,
// tracks and beats, and a Beat owns at most one Chord and one Bend.
// Nothing is shared between siblings, so a Song can be copied or handed
// to another goroutine without coordination.
package types

// TripletFeel selects whether eighth notes are played with a swing feel.
type TripletFeel uint8

const (
	// TripletFeelNone plays eighth notes straight.
	TripletFeelNone TripletFeel = iota
	// TripletFeelEighth plays eighth notes as a triplet shuffle.
	TripletFeelEighth
)

func (t TripletFeel) String() string {
	if t == TripletFeelEighth {
		return "eighth"
	}
	return "none"
}

// Octave is the octave marker of the whole song.
type Octave uint8

const (
	// OctaveNone means the score is played as written.
	OctaveNone Octave = 0
	// OctaveEighthva means the score is played an octave higher.
	OctaveEighthva Octave = 8
)

// Key is a key signature expressed as a count of sharps (positive)
// or flats (negative). Well-formed files stay within -7..7; other values
// are kept as stored.
type Key int32

// Key signature bounds.
const (
	KeyMin Key = -7
	KeyMax Key = 7
)

// Valid reports whether k is within -7..7.
func (k Key) Valid() bool {
	return k >= KeyMin && k <= KeyMax
}

// Lyric is one lyric line anchored to a measure position.
type Lyric struct {
	Text     string `json:"text"`
	Position uint32 `json:"position"`
}

// Song is a fully decoded tablature document.
type Song struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Interpretation string `json:"interpretation"`
	Album          string `json:"album"`
	Artist         string `json:"artist"`
	Copyright      string `json:"copyright"`
	Writer         string `json:"writer"`
	Instructions   string `json:"instructions"`

	// Version is the raw version tag the song was decoded from.
	Version string `json:"version"`

	Comments []string `json:"comments"`

	// Lyrics are always five lines, some possibly empty.
	Lyrics      [5]Lyric `json:"lyrics"`
	LyricsTrack uint32   `json:"lyrics_track"`

	Tempo       uint32      `json:"tempo"`
	Key         Key         `json:"key"`
	Octave      Octave      `json:"octave"`
	TripletFeel TripletFeel `json:"triplet_feel"`

	Ports [4]MidiPort `json:"ports"`

	Measures []Measure `json:"measures"`
	Tracks   []Track   `json:"tracks"`

	// Grid holds the beats of every (measure, track) pair, indexed
	// Grid[measure][track] with zero-based indices.
	Grid [][][]Beat `json:"grid"`

	// Warnings encountered during decoding (non-fatal issues)
	Warnings []Warning `json:"warnings,omitempty"`

	// Fingerprint is the xxHash64 of every byte consumed while decoding.
	Fingerprint uint64 `json:"fingerprint"`
}

// Beats returns the beats for the given 1-based measure and track IDs.
// The second result is false when either ID is out of range.
func (s *Song) Beats(measureID, trackID int) ([]Beat, bool) {
	if measureID < 1 || measureID > len(s.Grid) {
		return nil, false
	}
	row := s.Grid[measureID-1]
	if trackID < 1 || trackID > len(row) {
		return nil, false
	}
	return row[trackID-1], true
}

// Track returns the track with the given 1-based ID.
func (s *Song) Track(id int) (*Track, bool) {
	if id < 1 || id > len(s.Tracks) {
		return nil, false
	}
	return &s.Tracks[id-1], true
}

// Measure returns the measure with the given 1-based ID.
func (s *Song) Measure(id int) (*Measure, bool) {
	if id < 1 || id > len(s.Measures) {
		return nil, false
	}
	return &s.Measures[id-1], true
}

// Channel returns the MIDI channel a track is routed to, resolving the
// track's 1-based port and channel numbers.
func (s *Song) Channel(t *Track) (*MidiChannel, bool) {
	if t.Port < 1 || int(t.Port) > len(s.Ports) {
		return nil, false
	}
	port := &s.Ports[t.Port-1]
	if t.Channel < 1 || int(t.Channel) > len(port.Channels) {
		return nil, false
	}
	return &port.Channels[t.Channel-1], true
}
