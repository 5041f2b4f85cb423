package codegen

import "fmt"

// Dispatcher is the final pipeline step that calls the controller handler
// and writes its response.
type Dispatcher int

const (
	MethodToHandler Dispatcher = iota
	AsyncMethodToHandler
	MethodToHandlerWithSchema
	AsyncMethodToHandlerWithSchema
)

var dispatcherNames = [...]string{
	MethodToHandler:                "methodToHandler",
	AsyncMethodToHandler:           "asyncMethodToHandler",
	MethodToHandlerWithSchema:      "methodToHandlerWithSchema",
	AsyncMethodToHandlerWithSchema: "asyncMethodToHandlerWithSchema",
}

// Dispatchers lists every variant.
var Dispatchers = []Dispatcher{
	MethodToHandler,
	AsyncMethodToHandler,
	MethodToHandlerWithSchema,
	AsyncMethodToHandlerWithSchema,
}

// SelectDispatcher picks the variant for a handler that is async or not and
// has a response schema or not.
func SelectDispatcher(async, schema bool) Dispatcher {
	d := MethodToHandler
	if async {
		d |= AsyncMethodToHandler
	}
	if schema {
		d |= MethodToHandlerWithSchema
	}
	return d
}

// String returns the helper function name of d.
func (d Dispatcher) String() string {
	if d < 0 || int(d) >= len(dispatcherNames) {
		return fmt.Sprintf("Dispatcher(%d)", int(d))
	}
	return dispatcherNames[d]
}

// Async reports whether d awaits the handler.
func (d Dispatcher) Async() bool { return d&AsyncMethodToHandler != 0 }

// WithSchema reports whether d serializes with a response schema.
func (d Dispatcher) WithSchema() bool { return d&MethodToHandlerWithSchema != 0 }

// Call renders the dispatcher invocation for method of the controller bound
// to ctrl. handlerObject selects the handler field of a handler object.
func (d Dispatcher) Call(ctrl, method string, handlerObject bool) string {
	member := ctrl + "." + method
	handler := member
	if handlerObject {
		handler += ".handler"
	}
	if d.WithSchema() {
		return fmt.Sprintf("%s(%s, %s.schemas.response)", d, handler, member)
	}
	return fmt.Sprintf("%s(%s)", d, handler)
}
