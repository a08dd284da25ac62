// Package tablature decodes Guitar Pro 4 tablature files into a song model.
//
// A decoded Song carries the song metadata, the MIDI port setup, the
// measures with their time signatures, repeats and markers, the tracks
// with their tunings, and one beat sequence per measure and track with
// chord diagrams, text, bends and mix table changes.
//
// # Quick Start
//
// Decoding a file:
//
//	song, err := tablature.LoadFile(ctx, "song.gp4")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s (%d bpm)\n", song.Artist, song.Title, song.Tempo)
//
// Decoding any forward-only stream:
//
//	s := tablature.Open(resp.Body)
//	song, err := s.Load(ctx)
//
// # Supported Formats
//
//   - FICHIER GUITAR PRO v4.00
//   - FICHIER GUITAR PRO v4.06
//   - FICHIER GUITAR PRO L4.06
//
// Older revisions (v1 through v3.00) are recognized and rejected with
// ErrNotSupported. Formats lists the full version table. Input compressed
// with gzip, zstd, lz4 or s2 is unwrapped transparently.
//
// # Architecture
//
// The library uses a layered architecture:
//
//	[Session]           - One-shot load of one stream
//	  ├─ [Reader]       - Typed, budgeted, cancellable primitive reads
//	  ├─ [Registry]     - Version tag to decoder table
//	  └─ [Decoder]      - The v4 grammar, producing a Song
//
// Decoders register themselves in the version table, so adding a
// revision means adding a table row, not changing the public API.
//
// # Error Handling
//
// Every failure is an *Error with a Kind, the stream offset and the
// field being read. Compare with the Err* sentinels:
//
//	switch {
//	case errors.Is(err, tablature.ErrNotSupported):
//		// unknown or legacy revision
//	case errors.Is(err, tablature.ErrInvalidData):
//		// corrupt file, including ErrResourceLimit
//	}
//
// The first error aborts the load; no partial song is ever returned.
// Tolerated anomalies, such as an n-tuplet outside the known set, are
// recorded in Song.Warnings unless WithStrictParsing is used.
//
// # Resource Limits
//
// Each session owns an allocation budget (1 GiB by default, see
// WithMaxAllocation). Every variable-length field is charged before it
// is allocated, so a hostile length field fails fast.
//
// # Exporting
//
// WriteMIDI writes a song's tempo map, markers and instrument setup as a
// Standard MIDI File. SaveMIDI does the same to a path atomically, with
// optional backup and read-back validation.
//
// # Logging
//
// Diagnostics go to a log/slog logger set with WithLogger. Nothing is
// logged by default.
package tablature
