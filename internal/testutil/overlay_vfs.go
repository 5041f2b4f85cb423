// Package testutil provides fixtures for route generation tests: txtar route
// trees on disk and an in-memory project filesystem for building typescript-go
// programs from inline sources.
package testutil

import (
	"io/fs"
	"strings"
	"time"

	"github.com/microsoft/typescript-go/shim/bundled"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// OverlayVFS wraps a base filesystem with in-memory files. Memory files take
// precedence over the base filesystem, and writes to them stay in memory.
type OverlayVFS struct {
	fs    vfs.FS
	Files map[string]string
}

var _ vfs.FS = (*OverlayVFS)(nil)

func (o *OverlayVFS) UseCaseSensitiveFileNames() bool {
	return o.fs.UseCaseSensitiveFileNames()
}

func (o *OverlayVFS) FileExists(path string) bool {
	if _, ok := o.Files[path]; ok {
		return true
	}
	return o.fs.FileExists(path)
}

func (o *OverlayVFS) ReadFile(path string) (contents string, ok bool) {
	if src, ok := o.Files[path]; ok {
		return src, true
	}
	return o.fs.ReadFile(path)
}

func dirPrefix(path string) string {
	p := tspath.NormalizePath(path)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func (o *OverlayVFS) DirectoryExists(path string) bool {
	prefix := dirPrefix(path)
	for name := range o.Files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return o.fs.DirectoryExists(path)
}

func (o *OverlayVFS) GetAccessibleEntries(path string) (result vfs.Entries) {
	result = o.fs.GetAccessibleEntries(path)

	prefix := dirPrefix(path)
	seen := make(map[string]bool)
	for name := range o.Files {
		rest, found := strings.CutPrefix(name, prefix)
		if !found {
			continue
		}
		if dir, _, ok := strings.Cut(rest, "/"); ok {
			if !seen[dir] {
				seen[dir] = true
				result.Directories = append(result.Directories, dir)
			}
		} else {
			result.Files = append(result.Files, rest)
		}
	}
	return result
}

type memFileInfo struct {
	name string
	size int64
}

var (
	_ fs.FileInfo = (*memFileInfo)(nil)
	_ fs.DirEntry = (*memFileInfo)(nil)
)

func (fi *memFileInfo) IsDir() bool                { return false }
func (fi *memFileInfo) ModTime() time.Time         { return time.Time{} }
func (fi *memFileInfo) Mode() fs.FileMode          { return 0o644 }
func (fi *memFileInfo) Name() string               { return fi.name }
func (fi *memFileInfo) Size() int64                { return fi.size }
func (fi *memFileInfo) Sys() any                   { return nil }
func (fi *memFileInfo) Info() (fs.FileInfo, error) { return fi, nil }
func (fi *memFileInfo) Type() fs.FileMode          { return 0 }

func (o *OverlayVFS) Stat(path string) vfs.FileInfo {
	if src, ok := o.Files[path]; ok {
		return &memFileInfo{name: tspath.GetBaseFileName(path), size: int64(len(src))}
	}
	return o.fs.Stat(path)
}

func (o *OverlayVFS) WalkDir(root string, walkFn vfs.WalkDirFunc) error {
	return o.fs.WalkDir(root, walkFn)
}

func (o *OverlayVFS) Realpath(path string) string {
	if _, ok := o.Files[path]; ok {
		return path
	}
	return o.fs.Realpath(path)
}

func (o *OverlayVFS) WriteFile(path string, data string, writeByteOrderMark bool) error {
	o.Files[path] = data
	return nil
}

func (o *OverlayVFS) Remove(path string) error {
	if _, ok := o.Files[path]; ok {
		delete(o.Files, path)
		return nil
	}
	return o.fs.Remove(path)
}

func (o *OverlayVFS) Chtimes(path string, aTime time.Time, mTime time.Time) error {
	if _, ok := o.Files[path]; ok {
		return nil
	}
	return o.fs.Chtimes(path, aTime, mTime)
}

// ProjectFS creates an in-memory project rooted at root on top of the bundled
// OS filesystem, which serves the TypeScript lib files. File names are
// slash-separated paths relative to root.
func ProjectFS(root string, files map[string]string) *OverlayVFS {
	abs := make(map[string]string, len(files))
	for name, src := range files {
		abs[tspath.ResolvePath(root, name)] = src
	}
	return &OverlayVFS{fs: bundled.WrapFS(osvfs.FS()), Files: abs}
}
