package tablature

// SaveOption configures behavior when saving exported files.
//
// Example:
//
//	err := tablature.SaveMIDI(song, "song.mid",
//	    tablature.WithBackup(".bak"),
//	    tablature.WithValidation(),
//	)
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep the replaced file's modification time
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the file being replaced, renamed with suffix appended.
// For example, WithBackup(".bak") moves "song.mid" to "song.mid.bak"
// before the new file takes its place.
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing and checks that it holds
// one conductor track plus one track per song track.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the modification time of the file being replaced.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
