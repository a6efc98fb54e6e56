// Package atomicfile replaces files all-or-nothing.
package atomicfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// DefaultPerm is the mode given to files that did not exist before.
const DefaultPerm os.FileMode = 0o644

// WriteFile writes data to path through a temporary file in the same
// directory that is renamed over the target once fully written and synced.
// Readers see either the previous content or the new content, never a torn
// write.
//
// An existing file keeps its mode. A new file gets perm, or DefaultPerm when
// perm is 0. Parent directories are created when missing.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultPerm
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	if !existed {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	// atomic.WriteFile copies the mode of an existing target but leaves new
	// files with the temp file's 0600.
	if !existed {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("set permissions on %s: %w", path, err)
		}
	}

	return nil
}
