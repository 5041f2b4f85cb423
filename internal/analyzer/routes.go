package analyzer

import (
	"github.com/frourio/frourio-express/internal/cascade"
	"github.com/frourio/frourio-express/internal/metadata"
)

// MethodsTypeName is the exported type every index.ts declares.
const MethodsTypeName = "Methods"

// QueryField is a query member that needs coercion from its string form.
type QueryField struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
	Array    bool   `json:"array,omitempty"`
}

// BodyField is an array-typed multipart body member.
type BodyField struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

// MethodSpec is one HTTP method declared on a route's Methods type.
type MethodSpec struct {
	Name string `json:"name"`

	// NumberQuery and BooleanQuery list the query members typed number /
	// number[] and boolean / boolean[], in declaration order.
	NumberQuery  []QueryField `json:"numberQuery,omitempty"`
	BooleanQuery []QueryField `json:"booleanQuery,omitempty"`

	// QueryOptional is set when the query member itself may be omitted.
	QueryOptional bool `json:"queryOptional,omitempty"`

	// HasBody is set when reqBody is declared.
	HasBody bool `json:"hasBody,omitempty"`

	// HasFormat is set when reqFormat is declared, whatever its type.
	HasFormat bool `json:"hasFormat,omitempty"`

	// Multipart is set when reqFormat is FormData.
	Multipart bool `json:"multipart,omitempty"`

	// ArrayBodyFields are the array-typed reqBody members of a multipart body.
	ArrayBodyFields []BodyField `json:"arrayBodyFields,omitempty"`
}

// JSONBody reports whether the body is parsed as JSON. Any declared
// reqFormat opts the method out of JSON parsing.
func (m MethodSpec) JSONBody() bool {
	return m.HasBody && !m.HasFormat && !m.Multipart
}

// MultipartBody reports whether the body goes through the upload middleware.
func (m MethodSpec) MultipartBody() bool {
	return m.HasBody && m.Multipart
}

// AnalyzeMethods reads the Methods type of an index file. Properties that are
// not object types (or that failed to resolve) still yield a method with no
// query or body handling.
func AnalyzeMethods(facts Facts, indexFile string) []MethodSpec {
	props := facts.ExportedTypeProperties(indexFile, MethodsTypeName)
	methods := make([]MethodSpec, 0, len(props))
	for _, p := range props {
		methods = append(methods, analyzeMethod(p))
	}
	return methods
}

func analyzeMethod(p metadata.Property) MethodSpec {
	spec := MethodSpec{Name: p.Name}
	def := p.Type

	if query, ok := def.Property("query"); ok {
		spec.QueryOptional = query.Optional
		for _, field := range query.Type.Properties {
			qf := QueryField{
				Name:     field.Name,
				Optional: field.Optional,
				Array:    field.Type.Array,
			}
			switch field.Type.Kind {
			case metadata.KindNumber:
				spec.NumberQuery = append(spec.NumberQuery, qf)
			case metadata.KindBoolean:
				spec.BooleanQuery = append(spec.BooleanQuery, qf)
			}
		}
	}

	if format, ok := def.Property("reqFormat"); ok {
		spec.HasFormat = true
		spec.Multipart = format.Type.Name == "FormData"
	}

	if body, ok := def.Property("reqBody"); ok {
		spec.HasBody = true
		if spec.Multipart {
			for _, field := range body.Type.Properties {
				if field.Type.Array {
					spec.ArrayBodyFields = append(spec.ArrayBodyFields, BodyField{Name: field.Name, Optional: field.Optional})
				}
			}
		}
	}
	return spec
}

// Validator field names a controller method may declare, in mount order.
var validatorKeys = []string{"query", "headers", "body"}

// ControllerMethod is the runtime shape of one controller member.
type ControllerMethod struct {
	Name string `json:"name"`

	// Async is set when the handler returns a Promise.
	Async bool `json:"async,omitempty"`

	// HandlerObject is set when the member is an object with a handler field
	// rather than a bare function.
	HandlerObject bool `json:"handlerObject,omitempty"`

	// Validators lists the declared validator fields among query, headers
	// and body.
	Validators []string `json:"validators,omitempty"`

	// Schemas is set when a response schema is declared.
	Schemas bool `json:"schemas,omitempty"`

	// Hooks are method-level hooks by event.
	Hooks map[cascade.Event]cascade.Arity `json:"hooks,omitempty"`
}

// AnalyzeController reads the controller factory shape of file keyed by
// method name. A missing or unresolvable controller yields an empty map.
func AnalyzeController(facts Facts, file string) map[string]ControllerMethod {
	shape, ok := facts.FactoryReturnShape(file)
	if !ok {
		return map[string]ControllerMethod{}
	}

	methods := make(map[string]ControllerMethod, len(shape))
	for _, p := range shape {
		cm := ControllerMethod{
			Name:  p.Name,
			Async: facts.IsPromiseReturning(file, p.Name),
		}
		if !p.Type.IsFunction() {
			cm.HandlerObject = true
			if v, ok := p.Type.Property("validators"); ok {
				for _, key := range validatorKeys {
					if _, ok := v.Type.Property(key); ok {
						cm.Validators = append(cm.Validators, key)
					}
				}
			}
			if s, ok := p.Type.Property("schemas"); ok {
				_, cm.Schemas = s.Type.Property("response")
			}
			if h, ok := p.Type.Property("hooks"); ok {
				cm.Hooks = hookEvents(h.Type.Properties)
			}
		}
		methods[p.Name] = cm
	}
	return methods
}

// AnalyzeHooks reads the hook events of a hooks file. It reports false when
// the file's factory does not produce an object.
func AnalyzeHooks(facts Facts, file string) (map[cascade.Event]cascade.Arity, bool) {
	shape, ok := facts.FactoryReturnShape(file)
	if !ok {
		return nil, false
	}
	return hookEvents(shape), true
}

func hookEvents(props []metadata.Property) map[cascade.Event]cascade.Arity {
	events := make(map[cascade.Event]cascade.Arity)
	for _, e := range cascade.Events {
		p, ok := metadata.Find(props, string(e))
		if !ok {
			continue
		}
		if p.Type.IsCollection() {
			events[e] = cascade.Many
		} else {
			events[e] = cascade.Single
		}
	}
	return events
}
