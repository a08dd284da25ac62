package tablature

import (
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/gomidi/midi/v2/smf"
)

// SaveMIDI writes the MIDI setup of song to path as a Standard MIDI File.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to path. If any step fails, an existing file at path remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := tablature.SaveMIDI(song, "song.mid",
//	    tablature.WithBackup(".bak"),
//	    tablature.WithValidation(),
//	)
func SaveMIDI(song *Song, path string, opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	var prev os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(path); err == nil {
			prev = info
		}
	}

	// Temp file in the output directory so the rename stays on one filesystem.
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tablature-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := WriteMIDI(tempFile, song); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+options.backupSuffix); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if prev != nil {
		_ = os.Chtimes(path, prev.ModTime(), prev.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := validateMIDI(path, song); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// validateMIDI re-reads a written file and checks its track layout.
func validateMIDI(path string, song *Song) error {
	written, err := smf.ReadFile(path)
	if err != nil {
		return fmt.Errorf("re-read: %w", err)
	}
	if want := len(song.Tracks) + 1; len(written.Tracks) != want {
		return fmt.Errorf("track count mismatch: got %d, want %d", len(written.Tracks), want)
	}
	return nil
}
