// Package generator runs one generation over a project: scaffold the route
// tree, analyze it with the compiler, and synthesize the server file.
package generator

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/microsoft/typescript-go/shim/ast"

	"github.com/frourio/frourio-express/internal/analyzer"
	"github.com/frourio/frourio-express/internal/cascade"
	"github.com/frourio/frourio-express/internal/codegen"
	"github.com/frourio/frourio-express/internal/compiler"
	"github.com/frourio/frourio-express/internal/diagnostic"
	"github.com/frourio/frourio-express/internal/routetree"
	"github.com/frourio/frourio-express/internal/scaffold"
	"github.com/frourio/frourio-express/internal/writer"
)

// APIDir is the route root below the project root.
const APIDir = "api"

// ServerFile is the generated file name, written to the project root.
const ServerFile = scaffold.ServerModule + ".ts"

// Options configures a generation run.
type Options struct {
	// Project is the project config path or directory, relative to the
	// project root. Empty searches from the project root.
	Project string

	// Facts replaces the compiler-backed type facts. Set in tests.
	Facts analyzer.Facts

	Logger      *slog.Logger
	Diagnostics *diagnostic.Collector
}

// Result is the outcome of a generation run.
type Result struct {
	// Text is the server file content.
	Text string
	// FilePath is where Text belongs.
	FilePath string
	// Routes are the synthesized mounts in registration order.
	Routes []codegen.Route
	// CompilerDiagnostics are the syntax errors of the analyzed files.
	CompilerDiagnostics []*ast.Diagnostic
}

// Build generates the server file of the project at root without writing
// it. The scaffold pass does write default and relay files into the route
// tree. A tree with ambiguous path parameters fails before anything is
// written.
func Build(root string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	apiDir := filepath.Join(root, APIDir)

	tree, err := routetree.Walk(apiDir)
	if err != nil {
		return nil, err
	}
	if err := scaffold.Ensure(tree); err != nil {
		return nil, fmt.Errorf("scaffolding %s: %w", apiDir, err)
	}
	// Re-read the tree so the analysis sees the scaffolded files.
	if tree, err = routetree.Walk(apiDir); err != nil {
		return nil, err
	}

	res := &Result{FilePath: filepath.Join(root, ServerFile)}

	facts := opts.Facts
	if facts == nil {
		prog, err := buildProgram(root, tree, opts)
		if err != nil {
			return nil, err
		}
		defer prog.Release()
		for _, name := range slices.Sorted(maps.Keys(prog.Broken)) {
			opts.Diagnostics.Warn(diagnostic.CategoryParseError, name, "file has syntax errors")
		}
		res.CompilerDiagnostics = prog.Diagnostics
		facts = analyzer.NewCheckerFacts(prog.Program, prog.Checker, prog.Broken)
	}

	g := &generation{facts: facts, diags: opts.Diagnostics}
	g.visit(tree, nil, nil)

	res.Routes = g.server.Routes
	res.Text = codegen.Assemble(g.server)
	logger.Debug("synthesized server file",
		"routes", len(res.Routes),
		"controllers", len(g.server.Controllers),
		"hooks", len(g.server.Hooks),
		"validators", len(g.server.Validators))
	return res, nil
}

// Generate builds the server file and writes it when its content changed.
func Generate(root string, opts Options) (*Result, bool, error) {
	res, err := Build(root, opts)
	if err != nil {
		return nil, false, err
	}
	changed, err := writer.WriteString(res.FilePath, res.Text)
	if err != nil {
		return nil, false, err
	}
	return res, changed, nil
}

// buildProgram compiles every route file of tree under the project config.
func buildProgram(root string, tree *routetree.Node, opts Options) (*compiler.Program, error) {
	env := compiler.NewOSEnv(root)

	configPath := compiler.FindConfigFile(env, opts.Project)
	compilerOpts, configDiags := compiler.LoadCompilerOptions(env, configPath)
	for _, d := range configDiags {
		opts.Diagnostics.Warn(diagnostic.CategoryConfigInvalid, d.FilePath, "%s", d.Message)
	}

	var files []string
	_ = tree.Visit(func(n *routetree.Node) error {
		for _, name := range []string{routetree.IndexFile, routetree.HooksFile, routetree.ControllerFile, routetree.ValidatorsFile} {
			if n.Has(name) {
				files = append(files, n.File(name))
			}
		}
		return nil
	})

	prog, err := compiler.CreateProgram(env, files, compilerOpts)
	if err != nil {
		return nil, fmt.Errorf("building program: %w", err)
	}
	return prog, nil
}

// generation accumulates the server file while the tree is visited.
type generation struct {
	facts  analyzer.Facts
	diags  *diagnostic.Collector
	server codegen.Server
}

func (g *generation) visit(n *routetree.Node, hooks cascade.Hooks, validators cascade.Validators) {
	if n.Has(routetree.HooksFile) {
		file := n.File(routetree.HooksFile)
		if events, ok := analyzer.AnalyzeHooks(g.facts, file); ok {
			name := codegen.Ident(codegen.HooksIdent, len(g.server.Hooks))
			g.server.Hooks = append(g.server.Hooks, importPath(n, routetree.HooksFile))
			hooks = hooks.Extend(cascade.Hook{Name: name, Events: events})
		} else {
			g.diags.Warn(diagnostic.CategoryHooksShape, file, "hooks factory does not return an object; the file is ignored")
		}
	}

	if n.Has(routetree.ValidatorsFile) {
		v := cascade.Validator{Name: codegen.Ident(codegen.ValidatorsIdent, len(g.server.Validators))}
		g.server.Validators = append(g.server.Validators, importPath(n, routetree.ValidatorsFile))
		validators = validators.Extend(v)
	}

	if n.Has(routetree.IndexFile) {
		g.routes(n, hooks, validators)
	}

	for _, c := range n.Children {
		g.visit(c, hooks, validators)
	}
}

// routes synthesizes the mounts of every method the directory declares.
func (g *generation) routes(n *routetree.Node, hooks cascade.Hooks, validators cascade.Validators) {
	methods := analyzer.AnalyzeMethods(g.facts, n.File(routetree.IndexFile))
	if len(methods) == 0 {
		return
	}
	if !n.Has(routetree.ControllerFile) {
		g.diags.Warn(diagnostic.CategoryMissingController, n.File(routetree.IndexFile),
			"Methods is declared but controller.ts is missing; no routes are mounted")
		return
	}

	ctrlFile := n.File(routetree.ControllerFile)
	ctrl := codegen.Ident(codegen.ControllerIdent, len(g.server.Controllers))
	g.server.Controllers = append(g.server.Controllers, importPath(n, routetree.ControllerFile))
	handlers := analyzer.AnalyzeController(g.facts, ctrlFile)

	for _, m := range methods {
		h, ok := handlers[m.Name]
		if !ok {
			g.diags.Warn(diagnostic.CategoryMissingHandler, ctrlFile, "method %s is not implemented by the controller", m.Name)
		}
		g.server.Routes = append(g.server.Routes, codegen.Synthesize(codegen.RouteInput{
			Path:         n.RoutePath(),
			Method:       m,
			Controller:   ctrl,
			Handler:      h,
			Hooks:        hooks,
			Validators:   validators,
			NumberParams: n.NumberParams(),
		}))
	}
}

// importPath returns the server-relative module path of a route file, e.g.
// ./api/users/hooks.
func importPath(n *routetree.Node, file string) string {
	module := file[:len(file)-len(filepath.Ext(file))]
	if rel := n.RelPath(); rel != "" {
		return "./" + APIDir + "/" + rel + "/" + module
	}
	return "./" + APIDir + "/" + module
}
