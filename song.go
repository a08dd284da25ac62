package tablature

import (
	"io"

	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/smfexport"
	"github.com/simonhull/tablature/internal/types"
)

// Song model, re-exported from internal/types.
type (
	Song           = types.Song
	Track          = types.Track
	TrackFlags     = types.TrackFlags
	Measure        = types.Measure
	MeasureFlags   = types.MeasureFlags
	Marker         = types.Marker
	Beat           = types.Beat
	BeatMode       = types.BeatMode
	Dynamics       = types.Dynamics
	MixTableChange = types.MixTableChange
	Chord          = types.Chord
	Barre          = types.Barre
	Bend           = types.Bend
	BendType       = types.BendType
	BendPoint      = types.BendPoint
	Vibrato        = types.Vibrato
	MidiPort       = types.MidiPort
	MidiChannel    = types.MidiChannel
	Color          = types.Color
	Lyric          = types.Lyric
	Key            = types.Key
	Octave         = types.Octave
	TripletFeel    = types.TripletFeel
)

// Beat modes.
const (
	BeatNormal = types.BeatNormal
	BeatEmpty  = types.BeatEmpty
	BeatRest   = types.BeatRest
)

// Right-hand techniques.
const (
	DynamicsNone     = types.DynamicsNone
	DynamicsTapping  = types.DynamicsTapping
	DynamicsSlapping = types.DynamicsSlapping
	DynamicsPopping  = types.DynamicsPopping
)

// Triplet feels.
const (
	TripletFeelNone   = types.TripletFeelNone
	TripletFeelEighth = types.TripletFeelEighth
)

// FormatVersion is one row of the version table.
type FormatVersion = registry.VersionInfo

// Formats lists every version tag the library recognizes and whether it
// can decode it.
func Formats() []FormatVersion {
	return registry.Versions()
}

// WriteMIDI writes the tempo, meter, markers and per-track instrument
// setup of song as a Standard MIDI File.
func WriteMIDI(w io.Writer, song *Song) error {
	return smfexport.Write(w, song)
}
