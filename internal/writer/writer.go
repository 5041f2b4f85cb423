// Package writer persists generated files. Files are only touched when their
// content changes so repeated runs leave modification times alone and file
// watchers stay quiet.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteIfChanged writes data to path unless the file already holds exactly
// data. It reports whether the file was written. The write goes through a
// temporary file and a rename so readers never observe a partial file.
func WriteIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return true, nil
}

// WriteString is WriteIfChanged for text.
func WriteString(path, text string) (bool, error) {
	return WriteIfChanged(path, []byte(text))
}
