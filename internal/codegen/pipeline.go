package codegen

import (
	"fmt"
	"strings"

	"github.com/frourio/frourio-express/internal/analyzer"
	"github.com/frourio/frourio-express/internal/cascade"
)

// Helper function names referenced by route pipelines.
const (
	helperNumberQuery   = "parseNumberTypeQueryParams"
	helperBooleanQuery  = "parseBooleanTypeQueryParams"
	helperIfQuery       = "callParserIfExistsQuery"
	helperJSONBody      = "parseJSONBody"
	helperTypedParams   = "createTypedParamsHandler"
	helperValidator     = "validatorCompiler"
	helperMulterData    = "formatMulterData"
	uploaderIdent       = "uploader"
	basePathPlaceholder = "${basePath}"
)

// RouteInput is everything the synthesizer needs for one method of one route.
type RouteInput struct {
	// Path is the rendered route path, e.g. /users/:userId.
	Path string
	// Method is the method declared on the route's Methods type.
	Method analyzer.MethodSpec
	// Controller is the identifier of the instantiated controller.
	Controller string
	// Handler is the controller's member for the method. A zero value (no
	// Name) dispatches to a plain synchronous function.
	Handler analyzer.ControllerMethod
	// Hooks and Validators are the chains in scope for the route directory.
	Hooks      cascade.Hooks
	Validators cascade.Validators
	// NumberParams are the @number path parameters in scope, root first.
	NumberParams []string
}

// Route is the synthesized mount of one method on one path.
type Route struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	Handlers []string `json:"handlers"`
}

// Synthesize builds the ordered middleware list of a route.
func Synthesize(in RouteInput) Route {
	m := in.Method
	var handlers []string
	add := func(h ...string) { handlers = append(handlers, h...) }

	add(in.hookRefs(cascade.OnRequest)...)
	add(in.hookRefs(cascade.PreParsing)...)

	if len(m.NumberQuery) > 0 {
		add(guardQuery(m.QueryOptional, fmt.Sprintf("%s([%s])", helperNumberQuery, queryTuples(m.NumberQuery))))
	}
	if len(m.BooleanQuery) > 0 {
		add(guardQuery(m.QueryOptional, fmt.Sprintf("%s([%s])", helperBooleanQuery, queryTuples(m.BooleanQuery))))
	}

	switch {
	case m.MultipartBody():
		add(uploaderIdent, fmt.Sprintf("%s([%s])", helperMulterData, bodyTuples(m.ArrayBodyFields)))
	case m.JSONBody():
		add(helperJSONBody)
	}

	add(in.hookRefs(cascade.PreValidation)...)

	if len(in.NumberParams) > 0 {
		add(fmt.Sprintf("%s([%s])", helperTypedParams, quoteList(in.NumberParams)))
	}
	if params := in.Validators.Params(); params != "" {
		add(fmt.Sprintf("%s('params', %s)", helperValidator, params))
	}
	for _, key := range in.Handler.Validators {
		add(fmt.Sprintf("%s('%s', %s.%s.validators.%s)", helperValidator, key, in.Controller, m.Name, key))
	}

	add(in.hookRefs(cascade.PreHandler)...)

	d := SelectDispatcher(in.Handler.Async, in.Handler.Schemas)
	add(d.Call(in.Controller, m.Name, in.Handler.HandlerObject))

	return Route{Method: m.Name, Path: in.Path, Handlers: handlers}
}

// hookRefs renders the directory hooks for e followed by the method-level
// hook of the controller member.
func (in RouteInput) hookRefs(e cascade.Event) []string {
	refs := in.Hooks.Refs(e)
	if a := in.Handler.Hooks[e]; a != cascade.Absent {
		refs = append(refs, a.Ref(fmt.Sprintf("%s.%s.hooks", in.Controller, in.Method.Name), e))
	}
	return refs
}

func guardQuery(optional bool, parser string) string {
	if optional {
		return fmt.Sprintf("%s(%s)", helperIfQuery, parser)
	}
	return parser
}

func queryTuples(fields []analyzer.QueryField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("['%s', %t, %t]", f.Name, f.Optional, f.Array)
	}
	return strings.Join(parts, ", ")
}

func bodyTuples(fields []analyzer.BodyField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("['%s', %t]", f.Name, f.Optional)
	}
	return strings.Join(parts, ", ")
}

func quoteList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "'" + n + "'"
	}
	return strings.Join(parts, ", ")
}

// Render renders the mount statement. A single handler is passed directly;
// several are passed as an array, one per line.
func (r Route) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "app.%s(`%s%s`, ", r.Method, basePathPlaceholder, r.Path)
	if len(r.Handlers) == 1 {
		sb.WriteString(r.Handlers[0])
	} else {
		sb.WriteString("[\n")
		for _, h := range r.Handlers {
			fmt.Fprintf(&sb, "  %s,\n", h)
		}
		sb.WriteString("]")
	}
	sb.WriteString(");")
	return sb.String()
}
