package tablature_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simonhull/tablature"
	"github.com/simonhull/tablature/internal/gptest"
)

func TestSaveMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")

	if err := tablature.SaveMIDI(gptest.NewSong(2, 3), path, tablature.WithValidation()); err != nil {
		t.Fatalf("SaveMIDI failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:4]) != "MThd" {
		t.Errorf("header = %q, want MThd", data[:4])
	}
}

func TestSaveMIDI_Backup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mid")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tablature.SaveMIDI(gptest.NewSong(1, 1), path, tablature.WithBackup(".bak")); err != nil {
		t.Fatalf("SaveMIDI failed: %v", err)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "old" {
		t.Errorf("backup = %q, want %q", backup, "old")
	}
}

func TestSaveMIDI_PreserveModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	if err := tablature.SaveMIDI(gptest.NewSong(1, 1), path, tablature.WithPreserveModTime()); err != nil {
		t.Fatalf("SaveMIDI failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Errorf("mod time = %v, want %v", info.ModTime(), past)
	}
}

func TestSaveMIDI_FailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mid")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tablature.SaveMIDI(nil, path); err == nil {
		t.Fatal("expected error for nil song")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Errorf("original modified: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected temp file cleanup, found %d entries", len(entries))
	}
}
