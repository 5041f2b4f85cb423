// Package routetree discovers the route directory tree: one Node per
// directory under the api root, with its path parameter and the route files
// it contains.
package routetree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Route file names recognized in every directory.
const (
	IndexFile      = "index.ts"
	HooksFile      = "hooks.ts"
	ControllerFile = "controller.ts"
	ValidatorsFile = "validators.ts"
	RelayFile      = "$relay.ts"
)

// DefaultParamType is the type of a path parameter without an @type suffix.
const DefaultParamType = "string"

// ErrAmbiguousParam is returned when a directory has more than one dynamic
// child directory.
var ErrAmbiguousParam = errors.New("there are two or more path param folders")

// Param is a path parameter declared by a directory name like _userId@number.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ParseParam parses a dynamic directory name. It returns false for static
// directory names.
func ParseParam(dirName string) (Param, bool) {
	if !strings.HasPrefix(dirName, "_") {
		return Param{}, false
	}
	name, typ, found := strings.Cut(dirName[1:], "@")
	if !found || typ == "" {
		typ = DefaultParamType
	}
	return Param{Name: name, Type: typ}, true
}

// Node is one directory of the route tree.
type Node struct {
	// Name is the directory name as listed on disk ("" for the root).
	Name string
	// Dir is the directory path on disk.
	Dir string
	// Segments are the on-disk directory names from the root down to this
	// node. Empty for the root.
	Segments []string
	// Param is set when this directory is dynamic.
	Param *Param
	// Params are the path parameters from the root down to this node.
	Params []Param
	// Children are static directories in listing order, then the dynamic one.
	Children []*Node

	files map[string]bool
}

// Walk reads the directory tree rooted at root. It fails with
// ErrAmbiguousParam before returning any tree when a directory has two or
// more dynamic children.
func Walk(root string) (*Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading route root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("route root %s is not a directory", root)
	}
	return walk(root, "", nil, nil, nil)
}

func walk(dir, name string, segments []string, param *Param, params []Param) (*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	n := &Node{
		Name:     name,
		Dir:      dir,
		Segments: segments,
		Param:    param,
		Params:   params,
		files:    make(map[string]bool),
	}

	var static []os.DirEntry
	var dynamic []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() {
			n.files[e.Name()] = true
			continue
		}
		if strings.HasPrefix(e.Name(), "_") {
			dynamic = append(dynamic, e)
		} else {
			static = append(static, e)
		}
	}

	if len(dynamic) > 1 {
		names := make([]string, len(dynamic))
		for i, d := range dynamic {
			names[i] = d.Name()
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrAmbiguousParam, dir, strings.Join(names, ", "))
	}

	for _, e := range append(static, dynamic...) {
		childName := e.Name()
		childSegments := append(append([]string(nil), segments...), childName)
		childParams := params
		var childParam *Param
		if p, ok := ParseParam(childName); ok {
			childParam = &p
			childParams = append(append([]Param(nil), params...), p)
		}
		child, err := walk(filepath.Join(dir, childName), childName, childSegments, childParam, childParams)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}

	return n, nil
}

// Has reports whether the directory contained the named file when walked.
func (n *Node) Has(file string) bool {
	return n.files[file]
}

// File returns the on-disk path of a file in this directory.
func (n *Node) File(name string) string {
	return filepath.Join(n.Dir, name)
}

// RelPath returns the slash-separated path of this directory relative to the
// root ("" for the root). It keeps the on-disk bytes, so it is safe to use in
// import specifiers.
func (n *Node) RelPath() string {
	return strings.Join(n.Segments, "/")
}

// Depth returns the number of directories between the root and this node.
func (n *Node) Depth() int {
	return len(n.Segments)
}

// RoutePath renders the mount path of this directory: dynamic segments
// become :name tokens and @type suffixes are dropped. The result is
// NFC-normalized so decomposed directory names mount the composed URL.
func (n *Node) RoutePath() string {
	parts := make([]string, len(n.Segments))
	for i, seg := range n.Segments {
		if p, ok := ParseParam(seg); ok {
			parts[i] = ":" + p.Name
			continue
		}
		name, _, _ := strings.Cut(seg, "@")
		parts[i] = name
	}
	return norm.NFC.String("/" + strings.Join(parts, "/"))
}

// NumberParams returns the names of the number-typed path parameters from the
// root down to this node.
func (n *Node) NumberParams() []string {
	var names []string
	for _, p := range n.Params {
		if p.Type == "number" {
			names = append(names, p.Name)
		}
	}
	return names
}

// Visit calls fn for n and every descendant in generation order: a directory
// before its children, static children before the dynamic one.
func (n *Node) Visit(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Visit(fn); err != nil {
			return err
		}
	}
	return nil
}
