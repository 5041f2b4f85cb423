package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteArchive extracts a txtar archive into dir. Archive file names are
// slash-separated paths relative to dir. A name ending in "/" creates an
// empty directory.
func WriteArchive(t testing.TB, dir, archive string) {
	t.Helper()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		if f.Name[len(f.Name)-1] == '/' {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// TempTree extracts a txtar archive into a fresh temporary directory and
// returns its path.
func TempTree(t testing.TB, archive string) string {
	t.Helper()
	dir := t.TempDir()
	WriteArchive(t, dir, archive)
	return dir
}
