package analyzer

import "github.com/frourio/frourio-express/internal/metadata"

// MemoryFacts is a Facts backed by maps, for driving route generation
// without a compiler.
type MemoryFacts struct {
	// Types maps file -> exported type name -> members.
	Types map[string]map[string][]metadata.Property
	// Factories maps file -> members of the default-exported factory's result.
	Factories map[string][]metadata.Property
}

var _ Facts = (*MemoryFacts)(nil)

// NewMemoryFacts creates an empty MemoryFacts.
func NewMemoryFacts() *MemoryFacts {
	return &MemoryFacts{
		Types:     make(map[string]map[string][]metadata.Property),
		Factories: make(map[string][]metadata.Property),
	}
}

// SetType records an exported type of file.
func (m *MemoryFacts) SetType(file, name string, props []metadata.Property) {
	if m.Types[file] == nil {
		m.Types[file] = make(map[string][]metadata.Property)
	}
	m.Types[file][name] = props
}

// SetFactory records the factory shape of file.
func (m *MemoryFacts) SetFactory(file string, props []metadata.Property) {
	m.Factories[file] = props
}

// ExportedTypeProperties implements Facts.
func (m *MemoryFacts) ExportedTypeProperties(file, name string) []metadata.Property {
	return m.Types[file][name]
}

// FactoryReturnShape implements Facts.
func (m *MemoryFacts) FactoryReturnShape(file string) ([]metadata.Property, bool) {
	props, ok := m.Factories[file]
	return props, ok
}

// IsPromiseReturning implements Facts.
func (m *MemoryFacts) IsPromiseReturning(file, method string) bool {
	return isPromiseMember(m.Factories[file], method)
}
