package analyzer

import (
	"path/filepath"

	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/tspath"

	"github.com/frourio/frourio-express/internal/metadata"
)

// Facts is the type-introspection seam between route generation and the
// compiler. Missing files, missing exports and files that failed to parse all
// answer with empty results.
type Facts interface {
	// ExportedTypeProperties returns the members of the exported type alias
	// or interface called name in file, in declaration order.
	ExportedTypeProperties(file, name string) []metadata.Property

	// FactoryReturnShape returns the members of the object produced by the
	// factory the file default-exports, e.g. the object returned by the
	// callback in `export default defineController(() => ({ ... }))`. It
	// reports false when the file has no such factory or the factory does not
	// produce an object.
	FactoryReturnShape(file string) ([]metadata.Property, bool)

	// IsPromiseReturning reports whether the named member of the factory
	// shape, or its handler when the member is a handler object, returns a
	// Promise.
	IsPromiseReturning(file, method string) bool
}

// CheckerFacts answers Facts from a compiled program.
type CheckerFacts struct {
	program *shimcompiler.Program
	checker *shimchecker.Checker
	walker  *TypeWalker
	broken  map[string]bool
	shapes  map[string]factoryShape
}

type factoryShape struct {
	props []metadata.Property
	ok    bool
}

var _ Facts = (*CheckerFacts)(nil)

// NewCheckerFacts creates Facts over program. Files listed in broken (for
// example files with syntax errors) are treated as absent.
func NewCheckerFacts(program *shimcompiler.Program, checker *shimchecker.Checker, broken map[string]bool) *CheckerFacts {
	return &CheckerFacts{
		program: program,
		checker: checker,
		walker:  NewTypeWalker(checker),
		broken:  broken,
		shapes:  make(map[string]factoryShape),
	}
}

func (f *CheckerFacts) sourceFile(file string) *ast.SourceFile {
	name := tspath.NormalizePath(filepath.ToSlash(file))
	sf := f.program.GetSourceFile(name)
	if sf == nil || f.broken[sf.FileName()] {
		return nil
	}
	return sf
}

// ExportedTypeProperties implements Facts.
func (f *CheckerFacts) ExportedTypeProperties(file, name string) []metadata.Property {
	sf := f.sourceFile(file)
	if sf == nil {
		return nil
	}

	for _, stmt := range sf.Statements.Nodes {
		if !ast.HasSyntacticModifier(stmt, ast.ModifierFlagsExport) {
			continue
		}
		switch stmt.Kind {
		case ast.KindTypeAliasDeclaration:
			decl := stmt.AsTypeAliasDeclaration()
			if decl.Name().Text() != name {
				continue
			}
			t := shimchecker.Checker_getTypeFromTypeNode(f.checker, decl.Type)
			return f.walker.WalkType(t).Properties

		case ast.KindInterfaceDeclaration:
			decl := stmt.AsInterfaceDeclaration()
			if decl.Name().Text() != name {
				continue
			}
			sym := f.checker.GetSymbolAtLocation(decl.Name())
			if sym == nil {
				return nil
			}
			t := shimchecker.Checker_getDeclaredTypeOfSymbol(f.checker, sym)
			return f.walker.WalkType(t).Properties
		}
	}
	return nil
}

// FactoryReturnShape implements Facts.
func (f *CheckerFacts) FactoryReturnShape(file string) ([]metadata.Property, bool) {
	if s, ok := f.shapes[file]; ok {
		return s.props, s.ok
	}
	props, ok := f.factoryReturnShape(file)
	f.shapes[file] = factoryShape{props: props, ok: ok}
	return props, ok
}

func (f *CheckerFacts) factoryReturnShape(file string) ([]metadata.Property, bool) {
	sf := f.sourceFile(file)
	if sf == nil {
		return nil, false
	}

	factory := defaultExportFactory(sf)
	if factory == nil {
		return nil, false
	}

	t := f.checker.GetTypeAtLocation(factory)
	sigs := shimchecker.Checker_getSignaturesOfType(f.checker, t, shimchecker.SignatureKindCall)
	if len(sigs) == 0 {
		return nil, false
	}
	ret := f.walker.WalkType(shimchecker.Checker_getReturnTypeOfSignature(f.checker, sigs[0]))
	if ret.Kind != metadata.KindObject {
		return nil, false
	}
	return ret.Properties, true
}

// defaultExportFactory finds the factory function of `export default`. For a
// call such as defineHooks(deps, (d, app) => ({...})) it is the last argument;
// a bare function expression is the factory itself.
func defaultExportFactory(sf *ast.SourceFile) *ast.Node {
	for _, stmt := range sf.Statements.Nodes {
		if stmt.Kind != ast.KindExportAssignment {
			continue
		}
		expr := stmt.AsExportAssignment().Expression
		for expr != nil && expr.Kind == ast.KindParenthesizedExpression {
			expr = expr.AsParenthesizedExpression().Expression
		}
		if expr == nil {
			return nil
		}
		if expr.Kind != ast.KindCallExpression {
			return expr
		}
		args := expr.AsCallExpression().Arguments
		if args == nil || len(args.Nodes) == 0 {
			return nil
		}
		return args.Nodes[len(args.Nodes)-1]
	}
	return nil
}

// IsPromiseReturning implements Facts.
func (f *CheckerFacts) IsPromiseReturning(file, method string) bool {
	shape, ok := f.FactoryReturnShape(file)
	if !ok {
		return false
	}
	return isPromiseMember(shape, method)
}

func isPromiseMember(shape []metadata.Property, method string) bool {
	p, ok := metadata.Find(shape, method)
	if !ok {
		return false
	}
	if p.Type.IsFunction() {
		return p.Type.ReturnsPromise()
	}
	if h, ok := p.Type.Property("handler"); ok {
		return h.Type.ReturnsPromise()
	}
	return false
}
