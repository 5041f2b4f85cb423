// Package codegen synthesizes the per-route middleware pipelines and
// assembles them into the generated $server.ts.
package codegen

import (
	"fmt"
	"strings"
)

// Emitter accumulates TypeScript source with two-space indentation. Blank
// lines are requested with Break and collapse: several breaks in a row, or
// a break right after Open, produce at most one empty line.
type Emitter struct {
	buf    strings.Builder
	depth  int
	broken bool
	opened bool
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Break separates what comes next from what came before with one blank
// line.
func (e *Emitter) Break() {
	e.broken = true
}

func (e *Emitter) line(s string) {
	if e.broken && e.buf.Len() > 0 && !e.opened {
		e.buf.WriteByte('\n')
	}
	e.broken, e.opened = false, false
	if s != "" {
		e.buf.WriteString(strings.Repeat("  ", e.depth))
		e.buf.WriteString(s)
	}
	e.buf.WriteByte('\n')
}

// Linef writes one formatted line.
func (e *Emitter) Linef(format string, args ...any) {
	e.line(fmt.Sprintf(format, args...))
}

// Text writes a multi-line snippet, re-indented to the current depth. Empty
// lines stay empty and a single trailing newline is ignored.
func (e *Emitter) Text(text string) {
	for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		e.line(l)
	}
}

// Import writes an import declaration. Bindings wrapped in braces are named
// imports; anything else is a default import.
func (e *Emitter) Import(binding, module string, typeOnly bool) {
	if typeOnly {
		e.line(fmt.Sprintf("import type %s from '%s';", binding, module))
		return
	}
	e.line(fmt.Sprintf("import %s from '%s';", binding, module))
}

// Open writes head followed by " {" and indents what follows.
func (e *Emitter) Open(head string) {
	e.line(head + " {")
	e.depth++
	e.opened = true
}

// Close dedents and writes "}" followed by suffix, e.g. ";".
func (e *Emitter) Close(suffix string) {
	if e.depth > 0 {
		e.depth--
	}
	e.broken = false
	e.line("}" + suffix)
}

// String returns the accumulated source code.
func (e *Emitter) String() string {
	return e.buf.String()
}
