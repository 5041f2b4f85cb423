// Package analyzer answers the type questions the route generator asks about
// route files: the properties of an exported Methods type, the shape returned
// by a default-exported hooks or controller factory, and whether a controller
// method is asynchronous.
package analyzer

import (
	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"

	"github.com/frourio/frourio-express/internal/metadata"
)

// maxWalkDepth bounds how deep object members are expanded. Route facts never
// need more than three levels (Methods -> method -> query -> field), and
// validator members (zod schemas) would otherwise expand without bound.
const maxWalkDepth = 3

// TypeWalker converts checker types into metadata.Metadata.
type TypeWalker struct {
	checker *shimchecker.Checker
}

// NewTypeWalker creates a new TypeWalker.
func NewTypeWalker(checker *shimchecker.Checker) *TypeWalker {
	return &TypeWalker{checker: checker}
}

// WalkType converts a checker type, expanding object members up to the depth
// limit.
func (w *TypeWalker) WalkType(t *shimchecker.Type) metadata.Metadata {
	return w.walk(t, 0)
}

func (w *TypeWalker) walk(t *shimchecker.Type, depth int) metadata.Metadata {
	if t == nil {
		return metadata.Metadata{Kind: metadata.KindAny}
	}
	if t.Flags()&shimchecker.TypeFlagsUnion != 0 {
		return w.walkUnion(t, depth)
	}
	return w.walkSingle(t, depth)
}

// walkUnion strips undefined from a union. What remains is kept only when it
// is a single member or the true|false pair the checker uses for boolean.
func (w *TypeWalker) walkUnion(t *shimchecker.Type, depth int) metadata.Metadata {
	var members []*shimchecker.Type
	optional := false
	for _, m := range t.Types() {
		if m.Flags()&shimchecker.TypeFlagsUndefined != 0 {
			optional = true
			continue
		}
		members = append(members, m)
	}

	var result metadata.Metadata
	switch {
	case len(members) == 1:
		result = w.walkSingle(members[0], depth)
	case isBooleanPair(members):
		result = metadata.Metadata{Kind: metadata.KindBoolean}
	default:
		result = metadata.Metadata{Kind: metadata.KindAny}
	}
	result.Optional = result.Optional || optional
	return result
}

func isBooleanPair(members []*shimchecker.Type) bool {
	if len(members) != 2 {
		return false
	}
	for _, m := range members {
		if m.Flags()&shimchecker.TypeFlagsBooleanLiteral == 0 {
			return false
		}
	}
	return true
}

func (w *TypeWalker) walkSingle(t *shimchecker.Type, depth int) metadata.Metadata {
	flags := t.Flags()
	switch {
	case flags&shimchecker.TypeFlagsString != 0:
		return metadata.Metadata{Kind: metadata.KindString}
	case flags&shimchecker.TypeFlagsNumber != 0:
		return metadata.Metadata{Kind: metadata.KindNumber}
	case flags&shimchecker.TypeFlagsBoolean != 0:
		return metadata.Metadata{Kind: metadata.KindBoolean}
	case flags&(shimchecker.TypeFlagsObject|shimchecker.TypeFlagsIntersection) != 0:
		return w.walkObject(t, depth)
	}
	return metadata.Metadata{Kind: metadata.KindAny}
}

func (w *TypeWalker) walkObject(t *shimchecker.Type, depth int) metadata.Metadata {
	if shimchecker.Checker_isArrayType(w.checker, t) {
		elem := metadata.Metadata{Kind: metadata.KindAny}
		if args := shimchecker.Checker_getTypeArguments(w.checker, t); len(args) > 0 {
			elem = w.walk(args[0], maxWalkDepth)
		}
		return metadata.Metadata{Kind: elem.Kind, Name: elem.Name, Array: true}
	}
	if shimchecker.IsTupleType(t) {
		return metadata.Metadata{Kind: metadata.KindAny, Tuple: true}
	}

	props := shimchecker.Checker_getPropertiesOfType(w.checker, t)
	callSigs := shimchecker.Checker_getSignaturesOfType(w.checker, t, shimchecker.SignatureKindCall)
	if len(callSigs) > 0 && len(props) == 0 {
		ret := w.walk(shimchecker.Checker_getReturnTypeOfSignature(w.checker, callSigs[0]), maxWalkDepth)
		return metadata.Metadata{Kind: metadata.KindFunction, Returns: &ret}
	}

	result := metadata.Metadata{Kind: metadata.KindObject, Name: typeName(t)}
	if depth >= maxWalkDepth {
		return result
	}
	for _, prop := range props {
		result.Properties = append(result.Properties, metadata.Property{
			Name:     prop.Name,
			Optional: prop.Flags&ast.SymbolFlagsOptional != 0,
			Type:     w.walk(shimchecker.Checker_getTypeOfSymbol(w.checker, prop), depth+1),
		})
	}
	return result
}

// typeName returns the declared name of a named object type, or "" for
// anonymous object literals and mapped types.
func typeName(t *shimchecker.Type) string {
	sym := t.Symbol()
	if sym == nil {
		return ""
	}
	switch name := sym.Name; {
	case name == "", name == "__type", name == "__object":
		return ""
	case name[0] == '\xfe':
		return ""
	default:
		return name
	}
}
