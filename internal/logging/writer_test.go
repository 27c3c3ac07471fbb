package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drewdunne/nlibot/internal/nli"
)

func TestWriter_Record(t *testing.T) {
	baseDir := t.TempDir()
	w := NewWriter(baseDir)

	entry := Entry{
		Time:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Provider:  "gitlab",
		RepoOwner: "group/sub",
		RepoName:  "repo",
		Number:    42,
		CommentID: 7,
		Author:    "commenter",
		Text:      "fly to Taipei",
		Intent: &nli.Intent{
			Input:      "fly to Taipei",
			Action:     "book_flight",
			Parameters: map[string]string{"city": "Taipei"},
		},
		Reply: "Booking a flight",
	}

	path, err := w.Record(entry)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	want := filepath.Join(baseDir, "gitlab", "group", "sub", "repo", "42.jsonl")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	entry.CommentID = 8
	entry.Intent = nil
	if _, err := w.Record(entry); err != nil {
		t.Fatalf("second Record() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening transcript: %v", err)
	}
	defer f.Close()

	var lines []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decoding line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, e)
	}

	if len(lines) != 2 {
		t.Fatalf("transcript has %d lines, want 2", len(lines))
	}
	if lines[0].Intent == nil || lines[0].Intent.Action != "book_flight" {
		t.Errorf("first entry intent = %+v, want action book_flight", lines[0].Intent)
	}
	if lines[1].Intent != nil {
		t.Errorf("second entry intent = %+v, want nil", lines[1].Intent)
	}
	if lines[1].CommentID != 8 {
		t.Errorf("second entry CommentID = %d, want 8", lines[1].CommentID)
	}
}
