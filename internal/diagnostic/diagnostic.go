// Package diagnostic collects the non-fatal problems found while analyzing a
// route tree and prints them.
package diagnostic

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// Severity is how serious a diagnostic is. Neither level stops generation.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Category names the kind of problem.
type Category string

const (
	// CategoryMissingController marks a Methods type with no controller.
	CategoryMissingController Category = "missing-controller"
	// CategoryMissingHandler marks a method the controller does not implement.
	CategoryMissingHandler Category = "missing-handler"
	// CategoryParseError marks a route file with syntax errors.
	CategoryParseError Category = "parse-error"
	// CategoryHooksShape marks a hooks file whose factory is not an object.
	CategoryHooksShape Category = "hooks-shape"
	// CategoryConfigInvalid marks an unreadable project config.
	CategoryConfigInvalid Category = "config-invalid"
)

var hints = map[Category]string{
	CategoryMissingController: "add a controller.ts that default-exports defineController from './$relay'",
	CategoryMissingHandler:    "the route is mounted anyway and fails at request time",
	CategoryParseError:        "the file is treated as absent until it parses",
	CategoryHooksShape:        "default-export defineHooks(() => ({ onRequest: ... }))",
	CategoryConfigInvalid:     "compiler options fall back to defaults",
}

// Hint returns the fix suggestion shown under diagnostics of c.
func (c Category) Hint() string {
	return hints[c]
}

// Diagnostic is one reported problem in one file.
type Diagnostic struct {
	Severity Severity
	Category Category
	File     string
	Message  string
}

// Format renders the diagnostic with File shown relative to root, followed
// by the category hint on its own line. An empty root keeps File as is.
func (d Diagnostic) Format(root string) string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(relative(root, d.File))
		sb.WriteString(" - ")
	}
	sb.WriteString(d.Severity.String())
	if d.Category != "" {
		fmt.Fprintf(&sb, " [%s]", d.Category)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if hint := d.Category.Hint(); hint != "" {
		sb.WriteString("\n    ")
		sb.WriteString(hint)
	}
	return sb.String()
}

func (d Diagnostic) String() string {
	return d.Format("")
}

func relative(root, file string) string {
	if root == "" {
		return file
	}
	if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return file
}

// Collector gathers the diagnostics of one generation run. A nil Collector
// discards everything, and identical diagnostics are kept once.
type Collector struct {
	diagnostics []Diagnostic
	seen        map[Diagnostic]bool
	quiet       bool
}

// NewCollector creates a collector. A quiet collector drops warnings.
func NewCollector(quiet bool) *Collector {
	return &Collector{quiet: quiet}
}

// Warn records a warning about file.
func (c *Collector) Warn(category Category, file, format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.add(Diagnostic{Severity: SeverityWarning, Category: category, File: file, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an error about file.
func (c *Collector) Errorf(category Category, file, format string, args ...any) {
	if c == nil {
		return
	}
	c.add(Diagnostic{Severity: SeverityError, Category: category, File: file, Message: fmt.Sprintf(format, args...)})
}

func (c *Collector) add(d Diagnostic) {
	if c.seen[d] {
		return
	}
	if c.seen == nil {
		c.seen = make(map[Diagnostic]bool)
	}
	c.seen[d] = true
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns the collected diagnostics in the order they were
// recorded.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// Count returns the number of diagnostics of severity sev.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.Diagnostics() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Summary returns a line like "1 error, 2 warnings", or "" when nothing was
// collected.
func (c *Collector) Summary() string {
	var parts []string
	if n := c.Count(SeverityError); n > 0 {
		parts = append(parts, plural(n, "error"))
	}
	if n := c.Count(SeverityWarning); n > 0 {
		parts = append(parts, plural(n, "warning"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

var (
	warnMark = color.New(color.FgYellow, color.Bold)
	errMark  = color.New(color.FgRed, color.Bold)
)

// Report writes every diagnostic to w grouped by file, errors marked "x"
// and warnings "!", followed by the summary line. Nothing is written when
// the collector is empty.
func (c *Collector) Report(w io.Writer, root string) {
	diags := slices.Clone(c.Diagnostics())
	if len(diags) == 0 {
		return
	}
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return strings.Compare(a.File, b.File)
	})
	for _, d := range diags {
		if d.Severity == SeverityError {
			errMark.Fprint(w, "x ")
		} else {
			warnMark.Fprint(w, "! ")
		}
		fmt.Fprintln(w, d.Format(root))
	}
	fmt.Fprintln(w, c.Summary())
}
