// Package compiler builds the typescript-go program route files are analyzed
// with.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/tsoptions"
	"github.com/microsoft/typescript-go/shim/tspath"
)

// DefaultConfigName is the project config file looked up when the project
// path does not name a .json file.
const DefaultConfigName = "tsconfig.json"

// Diagnostic represents a compilation diagnostic message.
type Diagnostic struct {
	FilePath string
	Message  string
}

func (d Diagnostic) String() string {
	if d.FilePath != "" {
		return fmt.Sprintf("%s: %s", d.FilePath, d.Message)
	}
	return d.Message
}

// FindConfigFile resolves the project config for project, which may be a
// directory or a path to a .json file. Like tsc, the file is searched for in
// the directory and then each parent. It returns "" when none is found.
func FindConfigFile(env *Env, project string) string {
	if project == "" {
		project = "."
	}
	resolved := tspath.ResolvePath(env.Cwd, filepath.ToSlash(project))

	dir, name := resolved, DefaultConfigName
	if tspath.FileExtensionIs(resolved, ".json") {
		dir, name = tspath.GetDirectoryPath(resolved), tspath.GetBaseFileName(resolved)
	}

	for {
		candidate := tspath.CombinePaths(dir, name)
		if env.FS.FileExists(candidate) {
			return candidate
		}
		parent := tspath.GetDirectoryPath(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadCompilerOptions parses the project config at configPath with tsgo's
// JSONC parser, following extends chains and path mappings. A missing or
// malformed config yields empty options; the diagnostics explain why.
func LoadCompilerOptions(env *Env, configPath string) (*core.CompilerOptions, []Diagnostic) {
	empty := &core.CompilerOptions{}
	if configPath == "" {
		return empty, nil
	}

	parsed, diagnostics := tsoptions.GetParsedCommandLineOfConfigFile(configPath, &core.CompilerOptions{}, nil, env.Host, nil)
	if len(diagnostics) > 0 {
		return empty, convertDiagnostics(diagnostics)
	}
	if parsed == nil {
		return empty, []Diagnostic{{FilePath: configPath, Message: "could not parse project config"}}
	}
	if len(parsed.Errors) > 0 {
		return empty, convertDiagnostics(parsed.Errors)
	}
	return parsed.CompilerOptions(), nil
}

// Program is a bound program with its type checker.
type Program struct {
	Program *shimcompiler.Program
	Checker *shimchecker.Checker

	// Broken holds the file names that failed to parse.
	Broken map[string]bool

	// Diagnostics are the syntactic diagnostics of the program.
	Diagnostics []*ast.Diagnostic

	release func()
}

// Release returns the checker to the program's pool.
func (p *Program) Release() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
}

// CreateProgram builds a single-threaded program over rootFiles with opts and
// acquires its type checker. The caller must call Release.
func CreateProgram(env *Env, rootFiles []string, opts *core.CompilerOptions) (*Program, error) {
	if opts == nil {
		opts = &core.CompilerOptions{}
	}
	roots := make([]string, len(rootFiles))
	for i, f := range rootFiles {
		roots[i] = tspath.ResolvePath(env.Cwd, filepath.ToSlash(f))
	}

	parsed := tsoptions.NewParsedCommandLine(opts, roots, tspath.ComparePathsOptions{
		UseCaseSensitiveFileNames: env.FS.UseCaseSensitiveFileNames(),
		CurrentDirectory:          env.Cwd,
	})

	program := shimcompiler.NewProgram(shimcompiler.ProgramOptions{
		Config:                      parsed,
		SingleThreaded:              core.TSTrue,
		Host:                        env.Host,
		UseSourceOfProjectReference: true,
	})
	if program == nil {
		return nil, errors.New("failed to create program")
	}
	program.BindSourceFiles()

	syntactic := GetSyntacticDiagnostics(program)

	checker, release := shimcompiler.Program_GetTypeChecker(program, context.Background())
	if checker == nil {
		return nil, errors.New("could not get type checker")
	}

	return &Program{
		Program:     program,
		Checker:     checker,
		Broken:      FilesWithSyntaxErrors(syntactic),
		Diagnostics: syntactic,
		release:     release,
	}, nil
}

// GetSyntacticDiagnostics returns parse errors for all source files.
func GetSyntacticDiagnostics(program *shimcompiler.Program) []*ast.Diagnostic {
	return shimcompiler.Program_GetSyntacticDiagnostics(program, context.Background(), nil)
}

// convertDiagnostics converts tsgo diagnostics to our Diagnostic type.
func convertDiagnostics(tsdiags []*ast.Diagnostic) []Diagnostic {
	diags := make([]Diagnostic, len(tsdiags))
	for i, d := range tsdiags {
		var filePath string
		if d.File() != nil {
			filePath = d.File().FileName()
		}
		diags[i] = Diagnostic{
			FilePath: filePath,
			Message:  d.String(),
		}
	}
	return diags
}
