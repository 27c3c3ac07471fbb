package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cleaner removes transcripts older than a retention period.
type Cleaner struct {
	baseDir       string
	retentionDays int
}

// NewCleaner creates a new Cleaner with the specified base directory and retention period.
func NewCleaner(baseDir string, retentionDays int) *Cleaner {
	return &Cleaner{baseDir: baseDir, retentionDays: retentionDays}
}

// Cleanup removes transcripts not written to within the retention period and
// then any directories left empty. Returns the number of files deleted.
func (c *Cleaner) Cleanup() (int, error) {
	if c.retentionDays <= 0 {
		return 0, nil
	}
	threshold := time.Now().AddDate(0, 0, -c.retentionDays)
	var deleted int

	err := filepath.WalkDir(c.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == c.baseDir {
				return err
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, transcriptExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(threshold) {
			if os.Remove(path) == nil {
				deleted++
			}
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}

	c.cleanEmptyDirs()

	return deleted, err
}

// cleanEmptyDirs removes empty directories below the base directory. It runs
// until a pass removes nothing, since removing a directory may empty its parent.
func (c *Cleaner) cleanEmptyDirs() {
	for {
		removedAny := false
		filepath.WalkDir(c.baseDir, func(path string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() || path == c.baseDir {
				return nil
			}
			entries, _ := os.ReadDir(path)
			if len(entries) == 0 && os.Remove(path) == nil {
				removedAny = true
			}
			return nil
		})
		if !removedAny {
			break
		}
	}
}
