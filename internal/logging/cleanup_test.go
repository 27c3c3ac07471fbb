package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatal(err)
	}
}

func TestCleanup_OldTranscripts(t *testing.T) {
	baseDir := t.TempDir()

	oldFile := filepath.Join(baseDir, "github", "owner", "repo", "1.jsonl")
	writeAged(t, oldFile, 60*24*time.Hour)

	recentFile := filepath.Join(baseDir, "github", "owner", "repo", "2.jsonl")
	writeAged(t, recentFile, 0)

	cleaner := NewCleaner(baseDir, 30)
	deleted, err := cleaner.Cleanup()
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("Old transcript should be deleted")
	}
	if _, err := os.Stat(recentFile); err != nil {
		t.Error("Recent transcript should still exist")
	}
}

func TestCleanup_LeavesOtherFiles(t *testing.T) {
	baseDir := t.TempDir()

	other := filepath.Join(baseDir, "README.txt")
	writeAged(t, other, 60*24*time.Hour)

	deleted, err := NewCleaner(baseDir, 30).Cleanup()
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("Non-transcript file should not be deleted")
	}
}

func TestCleanup_EmptyDirectories(t *testing.T) {
	baseDir := t.TempDir()

	oldDir := filepath.Join(baseDir, "gitlab", "group", "sub", "repo")
	writeAged(t, filepath.Join(oldDir, "1.jsonl"), 60*24*time.Hour)

	if _, err := NewCleaner(baseDir, 30).Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(baseDir, "gitlab")); !os.IsNotExist(err) {
		t.Error("Empty directories should be deleted")
	}
	if _, err := os.Stat(baseDir); err != nil {
		t.Error("Base directory should be kept")
	}
}

func TestCleanup_MissingBaseDir(t *testing.T) {
	deleted, err := NewCleaner(filepath.Join(t.TempDir(), "missing"), 30).Cleanup()
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestCleanup_RetentionDisabled(t *testing.T) {
	baseDir := t.TempDir()
	oldFile := filepath.Join(baseDir, "github", "o", "r", "1.jsonl")
	writeAged(t, oldFile, 365*24*time.Hour)

	if _, err := NewCleaner(baseDir, 0).Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(oldFile); err != nil {
		t.Error("Transcripts should be kept when retention is disabled")
	}
}
