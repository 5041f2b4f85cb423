// Package cascade holds the hook and path-parameter validator chains that
// nested route directories inherit from their ancestors.
//
// Both chains are values: Extend never mutates its receiver, so a parent's
// chain can be handed to every child without copying on the caller side.
package cascade

import (
	"fmt"
	"strings"
)

// Event is a request lifecycle event a hook can attach to.
type Event string

const (
	OnRequest     Event = "onRequest"
	PreParsing    Event = "preParsing"
	PreValidation Event = "preValidation"
	PreHandler    Event = "preHandler"
)

// Events lists every hook event in pipeline order.
var Events = []Event{OnRequest, PreParsing, PreValidation, PreHandler}

// Arity describes how a hook event was declared.
type Arity int

const (
	// Absent means the event is not declared.
	Absent Arity = iota
	// Single is one handler function.
	Single
	// Many is an array or tuple of handler functions, mounted with a spread.
	Many
)

// Ref renders a reference to an event member of expr, spreading collections.
func (a Arity) Ref(expr string, e Event) string {
	if a == Many {
		return fmt.Sprintf("...%s.%s", expr, e)
	}
	return fmt.Sprintf("%s.%s", expr, e)
}

// Hook is the contribution of one hooks file.
type Hook struct {
	// Name is the identifier the instantiated hooks object is bound to.
	Name   string
	Events map[Event]Arity
}

// Declares reports whether the hook declares event e.
func (h Hook) Declares(e Event) bool {
	return h.Events[e] != Absent
}

// Hooks is the ordered chain of hooks from the route root down to a directory.
type Hooks []Hook

// Extend returns a new chain with h appended.
func (hs Hooks) Extend(h Hook) Hooks {
	out := make(Hooks, len(hs), len(hs)+1)
	copy(out, hs)
	return append(out, h)
}

// Refs renders the mount expressions for event e, root first.
func (hs Hooks) Refs(e Event) []string {
	var refs []string
	for _, h := range hs {
		if h.Declares(e) {
			refs = append(refs, h.Events[e].Ref(h.Name, e))
		}
	}
	return refs
}

// Validator is a path-parameter validator contributed by a validators file.
type Validator struct {
	// Name is the identifier the instantiated validators object is bound to.
	Name string
}

// Validators is the ordered chain of parameter validators.
type Validators []Validator

// Extend returns a new chain with v appended.
func (vs Validators) Extend(v Validator) Validators {
	out := make(Validators, len(vs), len(vs)+1)
	copy(out, vs)
	return append(out, v)
}

// Params renders the combined params schema, e.g.
// validators0.params.and(validators1.params). Empty when the chain is empty.
func (vs Validators) Params() string {
	if len(vs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(vs[0].Name)
	sb.WriteString(".params")
	for _, v := range vs[1:] {
		fmt.Fprintf(&sb, ".and(%s.params)", v.Name)
	}
	return sb.String()
}
