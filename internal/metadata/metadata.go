// Package metadata defines the normalized type facts the route generator
// reads from TypeScript declarations: just enough structure to decide query
// coercion, body handling, hook arity and dispatcher selection.
package metadata

// Kind identifies the primary kind of a type.
type Kind string

const (
	KindAny      Kind = "any"
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindObject   Kind = "object"
	KindFunction Kind = "function"
)

// Metadata is the resolved shape of one TypeScript type.
type Metadata struct {
	// Kind is the kind of the type, or of the element type when Array is set.
	Kind Kind `json:"kind"`

	// Name is the nominal symbol name for named object types
	// (e.g. "FormData", "Promise"). Empty for anonymous shapes.
	Name string `json:"name,omitempty"`

	// Optional is true if the type was a union containing undefined.
	Optional bool `json:"optional,omitempty"`

	// Array is true for T[] and Array<T>.
	Array bool `json:"array,omitempty"`

	// Tuple is true for tuple types. Kind is KindAny for tuples.
	Tuple bool `json:"tuple,omitempty"`

	// Properties holds the members of an object type, in declaration order.
	// Left empty past the walker's depth limit.
	Properties []Property `json:"properties,omitempty"`

	// Returns is the return type of the first call signature when
	// Kind == KindFunction.
	Returns *Metadata `json:"returns,omitempty"`
}

// Property is one named member of an object type.
type Property struct {
	Name string `json:"name"`

	// Optional reports the declared optionality of the member (`name?:` or
	// an optional mapped member), independent of the member's type.
	Optional bool `json:"optional,omitempty"`

	Type Metadata `json:"type"`
}

// Property returns the member with the given name.
func (m *Metadata) Property(name string) (*Property, bool) {
	for i := range m.Properties {
		if m.Properties[i].Name == name {
			return &m.Properties[i], true
		}
	}
	return nil, false
}

// IsFunction reports whether the type is callable with no members of its own.
func (m *Metadata) IsFunction() bool {
	return m.Kind == KindFunction
}

// IsPromise reports whether the type is a Promise instance.
func (m *Metadata) IsPromise() bool {
	return m.Kind == KindObject && m.Name == "Promise"
}

// ReturnsPromise reports whether the type is a function returning a Promise.
func (m *Metadata) ReturnsPromise() bool {
	return m.IsFunction() && m.Returns != nil && m.Returns.IsPromise()
}

// IsCollection reports whether the type is an array or a tuple.
func (m *Metadata) IsCollection() bool {
	return m.Array || m.Tuple
}

// Find looks up a property by name in a property list.
func Find(props []Property, name string) (*Property, bool) {
	for i := range props {
		if props[i].Name == name {
			return &props[i], true
		}
	}
	return nil, false
}
