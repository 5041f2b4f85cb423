package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/frourio/frourio-express/internal/routetree"
	"github.com/frourio/frourio-express/internal/writer"
)

var relayTemplate = template.Must(template.New("relay").Parse(`import { depend } from 'velona';
import { z } from 'zod';
import type { Injectable } from 'velona';
import type { Express } from 'express';
import type { ServerHooks, ServerMethodHandler } from '{{.ServerPath}}';
{{range .Imports}}{{.}}
{{end}}import type { Methods } from './';

{{if .Alias}}{{.Alias}}

{{end}}{{if .Params}}type Params = {
{{range .Params}}  {{.Name}}: {{.Type}};
{{end}}};

{{end}}{{with .Param}}export function defineValidators(validator: (app: Express) => {
  params: z.ZodType<{ {{.Name}}: {{.Type}} }>;
}) {
  return validator;
}

{{end}}export function defineHooks<T extends {{.HooksType}}>(hooks: (app: Express) => T): (app: Express) => T
export function defineHooks<T extends Record<string, unknown>, U extends {{.HooksType}}>(deps: T, cb: (d: T, app: Express) => U): Injectable<T, [Express], U>
export function defineHooks<T extends Record<string, unknown>>(hooks: (app: Express) => {{.HooksType}} | T, cb?: ((deps: T, app: Express) => {{.HooksType}})) {
  return cb && typeof hooks !== 'function' ? depend(hooks, cb) : hooks;
}

type ServerMethods = {
  [Key in keyof Methods]: ServerMethodHandler<Methods[Key]{{.RequestType}}>;
};

export function defineController<M extends ServerMethods>(methods: (app: Express) => M): (app: Express) => M
export function defineController<M extends ServerMethods, T extends Record<string, unknown>>(deps: T, cb: (d: T, app: Express) => M): Injectable<T, [Express], M>
export function defineController<M extends ServerMethods, T extends Record<string, unknown>>(methods: ((app: Express) => M) | T, cb?: ((deps: T, app: Express) => M)) {
  return cb && typeof methods !== 'function' ? depend(methods, cb) : methods;
}

export const multipartFileValidator = () =>
  z.object({
    fieldname: z.string(),
    originalname: z.string(),
    encoding: z.string(),
    mimetype: z.string(),
    size: z.number(),
    destination: z.string(),
    filename: z.string(),
    path: z.string(),
    stream: z.any(),
    buffer: z.any(),
  }) as z.ZodType<Express.Multer.File>;
`))

// additionalRequestPattern matches a top-level export of an AdditionalRequest
// type, e.g. "export type AdditionalRequest = ..." or
// "export { AdditionalRequest, ... }".
var additionalRequestPattern = regexp.MustCompile(`(?:^|\n)export .+ AdditionalRequest(?:,| )`)

// Relay describes the $relay.ts of one directory.
type Relay struct {
	// ServerPath is the import path of the generated server file.
	ServerPath string
	// Additionals are import paths of modules exporting an AdditionalRequest
	// type, outermost first.
	Additionals []string
	// Params are the path parameters in scope, root first.
	Params []routetree.Param
	// Param is the directory's own path parameter, if dynamic.
	Param *routetree.Param
}

type relayView struct {
	ServerPath  string
	Imports     []string
	Alias       string
	Params      []routetree.Param
	Param       *routetree.Param
	HooksType   string
	RequestType string
}

// Render produces the relay file text.
func (r Relay) Render() (string, error) {
	v := relayView{
		ServerPath: r.ServerPath,
		Params:     r.Params,
		Param:      r.Param,
		HooksType:  "ServerHooks",
	}

	switch len(r.Additionals) {
	case 0:
	case 1:
		v.Imports = []string{fmt.Sprintf("import type { AdditionalRequest } from '%s';", r.Additionals[0])}
	default:
		names := make([]string, len(r.Additionals))
		for i, p := range r.Additionals {
			names[i] = fmt.Sprintf("AdditionalRequest%d", i)
			v.Imports = append(v.Imports, fmt.Sprintf("import type { AdditionalRequest as %s } from '%s';", names[i], p))
		}
		v.Alias = fmt.Sprintf("type AdditionalRequest = %s;", strings.Join(names, " & "))
	}

	var req []string
	if len(r.Additionals) > 0 {
		v.HooksType = "ServerHooks<AdditionalRequest>"
		req = append(req, "AdditionalRequest")
	}
	if len(r.Params) > 0 {
		req = append(req, "{ params: Params }")
	}
	if len(req) > 0 {
		v.RequestType = ", " + strings.Join(req, " & ")
	}

	var buf bytes.Buffer
	if err := relayTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rendering relay: %w", err)
	}
	return buf.String(), nil
}

// WriteRelay renders r into dir/$relay.ts.
func WriteRelay(dir string, r Relay) error {
	text, err := r.Render()
	if err != nil {
		return err
	}
	_, err = writer.WriteString(filepath.Join(dir, routetree.RelayFile), text)
	return err
}

// ExportsAdditionalRequest reports whether the file at path exports an
// AdditionalRequest type. Missing files export nothing.
func ExportsAdditionalRequest(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return additionalRequestPattern.Match(data)
}
