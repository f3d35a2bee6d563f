package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings_CreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if s.Engine != "" || s.MinBatch != "" {
		t.Fatalf("fresh settings not empty: %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	s.Engine = "whisper"
	s.Model = "/models/tiny.bin"
	s.NumThreads = 4
	s.MinBatch = "3s"
	s.Normalize = true
	s.InputRate = 48000
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Engine != "whisper" || got.Model != "/models/tiny.bin" ||
		got.NumThreads != 4 || !got.Normalize || got.InputRate != 48000 {
		t.Fatalf("settings did not round-trip: %+v", got)
	}

	d, err := got.MinBatchDuration()
	if err != nil {
		t.Fatalf("MinBatchDuration: %v", err)
	}
	if d != 3*time.Second {
		t.Fatalf("MinBatchDuration = %v, want 3s", d)
	}
}

func TestSettings_MinBatchDuration(t *testing.T) {
	s := &Settings{}
	if d, err := s.MinBatchDuration(); err != nil || d != 0 {
		t.Fatalf("empty min_batch = %v, %v; want 0, nil", d, err)
	}

	s.MinBatch = "not a duration"
	if _, err := s.MinBatchDuration(); err == nil {
		t.Fatal("invalid min_batch accepted")
	}
}
