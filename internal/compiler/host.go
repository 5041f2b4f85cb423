package compiler

import (
	"github.com/microsoft/typescript-go/shim/bundled"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/cachedvfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// Env is the filesystem and compiler host a generation run compiles with.
type Env struct {
	Cwd  string
	FS   vfs.FS
	Host shimcompiler.CompilerHost
}

// NewEnv creates an Env over fs rooted at cwd. The bundled lib files are
// served from memory.
func NewEnv(cwd string, fs vfs.FS) *Env {
	return &Env{
		Cwd:  cwd,
		FS:   fs,
		Host: shimcompiler.NewCompilerHost(cwd, fs, bundled.LibPath(), nil, nil),
	}
}

// NewOSEnv creates an Env over the OS filesystem. The cache is per Env, so
// every generation run must create a fresh one to see files written by the
// scaffold pass.
func NewOSEnv(cwd string) *Env {
	return NewEnv(cwd, bundled.WrapFS(cachedvfs.From(osvfs.FS())))
}
