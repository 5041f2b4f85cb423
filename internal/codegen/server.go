package codegen

import (
	"fmt"
	"slices"
	"strings"
)

// Server is the input of the server file: the factory modules to import,
// each list in instantiation order, and the routes in mount order.
type Server struct {
	// Hooks, Validators and Controllers are import paths relative to the
	// server file, e.g. ./api/users/hooks.
	Hooks       []string
	Validators  []string
	Controllers []string
	Routes      []Route
}

// Identifier prefixes of the instantiated factories.
const (
	HooksIdent      = "hooks"
	ValidatorsIdent = "validators"
	ControllerIdent = "controller"
)

// Ident returns the identifier the i-th factory with prefix is bound to.
func Ident(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

// Assemble renders the server file. Runtime helpers are emitted only when
// the mount text references them.
func Assemble(s Server) string {
	mounts := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		mounts[i] = r.Render()
	}
	mountText := strings.Join(mounts, "\n")

	used := make(map[string]bool)
	for _, h := range helpers {
		if strings.Contains(mountText, h.token) {
			used[h.name] = true
		}
	}
	hasMulter := false
	for _, r := range s.Routes {
		hasMulter = hasMulter || slices.Contains(r.Handlers, uploaderIdent)
	}
	hasSchema := false
	for name := range used {
		hasSchema = hasSchema || isSchemaDispatcher(name)
	}

	e := NewEmitter()

	e.Import("{ Express, RequestHandler }", "express", true)
	if used[helperJSONBody] {
		e.Import("express", "express", false)
	}
	if hasMulter {
		e.Import("multer", "multer", false)
		e.Import("path", "path", false)
	}
	if hasSchema {
		e.Import("fastJson", "fast-json-stringify", false)
	}
	e.Import("{ ReadStream }", "fs", true)
	e.Import("{ Options }", "multer", true)
	e.Import("{ HttpStatusOk, AspidaMethodParams }", "aspida", true)
	e.Import("{ Schema }", "fast-json-stringify", true)
	e.Import("{ z }", "zod", true)
	writeImports(e, "hooksFn", s.Hooks)
	writeImports(e, "validatorsFn", s.Validators)
	writeImports(e, "controllerFn", s.Controllers)

	e.Break()
	e.Open("export type FrourioOptions =")
	e.Linef("basePath?: string;")
	e.Linef("multer?: Options;")
	e.Close(";")

	e.Break()
	e.Text(typesText)

	stringifySetPending := hasSchema
	for _, h := range helpers {
		if !used[h.name] {
			continue
		}
		if stringifySetPending && isSchemaDispatcher(h.name) {
			e.Break()
			e.Text(stringifySetText)
			stringifySetPending = false
		}
		e.Break()
		e.Text(h.text)
	}

	e.Break()
	e.Open("export default (app: Express, options: FrourioOptions = {}) =>")
	e.Linef("const basePath = options.basePath ?? '';")
	writeConsts(e, HooksIdent, "hooksFn", len(s.Hooks))
	writeConsts(e, ValidatorsIdent, "validatorsFn", len(s.Validators))
	writeConsts(e, ControllerIdent, "controllerFn", len(s.Controllers))
	if hasMulter {
		e.Linef("const uploader = multer({ dest: path.join(__dirname, '.upload'), limits: { fileSize: 1024 ** 3 }, ...options.multer }).any();")
	}
	for _, m := range mounts {
		e.Break()
		e.Text(m)
	}
	e.Break()
	e.Linef("return app;")
	e.Close(";")

	return e.String()
}

func isSchemaDispatcher(name string) bool {
	for _, d := range Dispatchers {
		if d.WithSchema() && d.String() == name {
			return true
		}
	}
	return false
}

func writeImports(e *Emitter, prefix string, paths []string) {
	for i, p := range paths {
		e.Import(Ident(prefix, i), p, false)
	}
}

func writeConsts(e *Emitter, ident, fn string, n int) {
	for i := 0; i < n; i++ {
		e.Linef("const %s = %s(app);", Ident(ident, i), Ident(fn, i))
	}
}

// typesText declares the response and handler types relay files import.
const typesText = `type HttpStatusNoOk = 301 | 302 | 400 | 401 | 402 | 403 | 404 | 405 | 406 | 409 | 500 | 501 | 502 | 503 | 504 | 505;

type PartiallyPartial<T, K extends keyof T> = Omit<T, K> & Partial<Pick<T, K>>;

type BaseResponse<T, U, V> = {
  status: V extends number ? V : HttpStatusOk;
  body: T;
  headers: U;
};

type ServerResponse<K extends AspidaMethodParams> =
  | (K extends { resBody: K['resBody']; resHeaders: K['resHeaders'] }
  ? BaseResponse<K['resBody'], K['resHeaders'], K['status']>
  : K extends { resBody: K['resBody'] }
  ? PartiallyPartial<BaseResponse<K['resBody'], K['resHeaders'], K['status']>, 'headers'>
  : K extends { resHeaders: K['resHeaders'] }
  ? PartiallyPartial<BaseResponse<K['resBody'], K['resHeaders'], K['status']>, 'body'>
  : PartiallyPartial<
      BaseResponse<K['resBody'], K['resHeaders'], K['status']>,
      'body' | 'headers'
    >)
  | PartiallyPartial<BaseResponse<any, any, HttpStatusNoOk>, 'body' | 'headers'>;

export type MultipartFileToBlob<T extends Record<string, unknown>> = {
  [P in keyof T]: Required<T>[P] extends Express.Multer.File
    ? Blob | ReadStream
    : Required<T>[P] extends Express.Multer.File[]
    ? (Blob | ReadStream)[]
    : T[P];
};

type BlobToFile<T extends AspidaMethodParams> = T['reqFormat'] extends FormData
  ? {
      [P in keyof T['reqBody']]: Required<T['reqBody']>[P] extends Blob | ReadStream
        ? Express.Multer.File
        : Required<T['reqBody']>[P] extends (Blob | ReadStream)[]
        ? Express.Multer.File[]
        : T['reqBody'][P];
    }
  : T['reqBody'];

type RequestParams<T extends AspidaMethodParams> = Pick<{
  query: T['query'];
  body: BlobToFile<T>;
  headers: T['reqHeaders'];
}, {
  query: Required<T>['query'] extends {} | null ? 'query' : never;
  body: Required<T>['reqBody'] extends {} | null ? 'body' : never;
  headers: Required<T>['reqHeaders'] extends {} | null ? 'headers' : never;
}['query' | 'body' | 'headers']>;

type ServerHandler<T extends AspidaMethodParams, U extends Record<string, unknown> = {}> = (
  req: RequestParams<T> & U
) => ServerResponse<T>;

type ServerHandlerPromise<T extends AspidaMethodParams, U extends Record<string, unknown> = {}> = (
  req: RequestParams<T> & U
) => Promise<ServerResponse<T>>;

type AddedRequestHandler<R extends Record<string, unknown>> = RequestHandler extends (req: infer U, ...args: infer V) => infer W ? (req: U & Partial<R>, ...args: V) => W : never;

export type ServerHooks<R extends Record<string, unknown> = {}> = {
  onRequest?: AddedRequestHandler<R> | AddedRequestHandler<R>[];
  preParsing?: AddedRequestHandler<R> | AddedRequestHandler<R>[];
  preValidation?: AddedRequestHandler<R> | AddedRequestHandler<R>[];
  preHandler?: AddedRequestHandler<R> | AddedRequestHandler<R>[];
};

export type ServerMethodHandler<T extends AspidaMethodParams, U extends Record<string, unknown> = {}> = ServerHandler<T, U> | ServerHandlerPromise<T, U> | {
  validators?: { [Key in keyof RequestParams<T>]?: z.ZodType<RequestParams<T>[Key]> };
  schemas?: { response?: { [V in HttpStatusOk]?: Schema } };
  hooks?: ServerHooks<U>;
  handler: ServerHandler<T, U> | ServerHandlerPromise<T, U>;
};
`
