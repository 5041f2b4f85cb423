package compiler

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/microsoft/typescript-go/shim/ast"
	shimscanner "github.com/microsoft/typescript-go/shim/scanner"
)

// DiagnosticCategory mirrors tsgo's diagnostics.Category.
type DiagnosticCategory int

const (
	CategoryWarning    DiagnosticCategory = 0
	CategoryError      DiagnosticCategory = 1
	CategorySuggestion DiagnosticCategory = 2
	CategoryMessage    DiagnosticCategory = 3
)

var categoryNames = [...]string{"warning", "error", "suggestion", "message"}

func (c DiagnosticCategory) Name() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

func (c DiagnosticCategory) color() *color.Color {
	switch c {
	case CategoryError:
		return errorColor
	case CategoryWarning:
		return warningColor
	default:
		return dimColor
	}
}

var (
	fileColor    = color.New(color.FgHiCyan)
	posColor     = color.New(color.FgHiYellow)
	dimColor     = color.New(color.FgHiBlack)
	errorColor   = color.New(color.FgHiRed)
	warningColor = color.New(color.FgHiYellow)
)

func category(d *ast.Diagnostic) DiagnosticCategory {
	return DiagnosticCategory(ast.Diagnostic_Category(d))
}

// Reporter prints compiler diagnostics in tsc's formats with file names
// relative to the project root.
type Reporter struct {
	w      io.Writer
	root   string
	pretty bool
}

// NewReporter creates a Reporter. The pretty form is
// "file:line:col - error TS1005: message" followed by the offending line;
// the plain form is "file(line,col): error TS1005: message".
func NewReporter(w io.Writer, root string, pretty bool) *Reporter {
	return &Reporter{w: w, root: root, pretty: pretty}
}

// ReportAll prints every diagnostic and returns the number of errors.
func (r *Reporter) ReportAll(diags []*ast.Diagnostic) int {
	for _, d := range diags {
		r.Report(d)
	}
	return CountErrors(diags)
}

// Report prints one diagnostic.
func (r *Reporter) Report(d *ast.Diagnostic) {
	cat := category(d)
	file := d.File()

	if !r.pretty {
		if file != nil {
			line, char := shimscanner.GetECMALineAndCharacterOfPosition(file, d.Pos())
			fmt.Fprintf(r.w, "%s(%d,%d): ", r.relative(file.FileName()), line+1, char+1)
		}
		fmt.Fprintf(r.w, "%s TS%d: %s\n", cat.Name(), d.Code(), d.String())
		return
	}

	if file != nil {
		line, char := shimscanner.GetECMALineAndCharacterOfPosition(file, d.Pos())
		fileColor.Fprint(r.w, r.relative(file.FileName()))
		fmt.Fprint(r.w, ":")
		posColor.Fprintf(r.w, "%d:%d", line+1, char+1)
		fmt.Fprint(r.w, " - ")
	}
	cat.color().Fprint(r.w, cat.Name())
	dimColor.Fprintf(r.w, " TS%d:", d.Code())
	fmt.Fprintf(r.w, " %s\n", d.String())
	if file != nil {
		r.snippet(file, d.Pos(), d.Len(), cat.color())
	}
	fmt.Fprintln(r.w)
}

// snippet prints the source line holding pos with a squiggle under the
// span, cut at the end of the line.
func (r *Reporter) snippet(file *ast.SourceFile, pos, length int, squiggle *color.Color) {
	text := file.Text()
	line, char := shimscanner.GetECMALineAndCharacterOfPosition(file, pos)
	start := shimscanner.GetECMAPositionOfLineAndCharacter(file, line, 0)
	end := strings.IndexAny(text[start:], "\r\n")
	if end < 0 {
		end = len(text) - start
	}
	src := strings.ReplaceAll(text[start:start+end], "\t", " ")

	gutter := strconv.Itoa(line + 1)
	dimColor.Fprintf(r.w, "%s | ", gutter)
	fmt.Fprintln(r.w, src)
	dimColor.Fprintf(r.w, "%s | ", strings.Repeat(" ", len(gutter)))
	width := max(min(length, len(src)-char), 1)
	fmt.Fprint(r.w, strings.Repeat(" ", char))
	squiggle.Fprintln(r.w, strings.Repeat("~", width))
}

func (r *Reporter) relative(name string) string {
	if r.root == "" {
		return name
	}
	if rel, err := filepath.Rel(r.root, name); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return name
}

// CountErrors returns the number of CategoryError diagnostics.
func CountErrors(diags []*ast.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if category(d) == CategoryError {
			n++
		}
	}
	return n
}

// FilesWithSyntaxErrors returns the names of the files diags point into.
func FilesWithSyntaxErrors(diags []*ast.Diagnostic) map[string]bool {
	files := make(map[string]bool)
	for _, d := range diags {
		if d.File() != nil {
			files[d.File().FileName()] = true
		}
	}
	return files
}
