package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// MaxLogSize is the size at which an existing log file is rotated on open
const MaxLogSize = 10 * 1024 * 1024

// OpenLogFile opens dir/name for appending, creating dir as needed
// A file larger than maxSize is moved to name.old first, replacing any previous backup
func OpenLogFile(dir, name string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && maxSize > 0 && info.Size() > maxSize {
		backup := path + ".old"
		_ = os.Remove(backup)
		if err := os.Rename(path, backup); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
