// Package logging keeps per-thread transcripts of interpreted comments and
// prunes them after a retention period.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/drewdunne/nlibot/internal/nli"
)

// transcriptExt is the extension of transcript files.
const transcriptExt = ".jsonl"

// Entry is one interpreted comment and the bot's reply.
type Entry struct {
	Time      time.Time   `json:"time"`
	Provider  string      `json:"provider"`
	RepoOwner string      `json:"repo_owner"`
	RepoName  string      `json:"repo_name"`
	Number    int         `json:"number"`
	CommentID int64       `json:"comment_id"`
	Author    string      `json:"author"`
	Text      string      `json:"text"`
	Intent    *nli.Intent `json:"intent,omitempty"`
	Reply     string      `json:"reply"`
}

// Writer appends transcript entries, one file per merge request thread.
type Writer struct {
	baseDir string
	mu      sync.Mutex
}

// NewWriter creates a new Writer with the specified base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the transcript file for the entry's thread.
// Layout: baseDir/provider/owner/repo/number.jsonl
func (w *Writer) Path(entry Entry) string {
	return filepath.Join(
		w.baseDir,
		entry.Provider,
		filepath.FromSlash(entry.RepoOwner),
		entry.RepoName,
		strconv.Itoa(entry.Number)+transcriptExt,
	)
}

// Record appends the entry as a JSON line and returns the file path.
func (w *Writer) Record(entry Entry) (string, error) {
	line, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encoding transcript entry: %w", err)
	}
	line = append(line, '\n')

	path := w.Path(entry)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating transcript directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return path, nil
}
