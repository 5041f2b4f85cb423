package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble_MinimalServer(t *testing.T) {
	out := Assemble(Server{
		Controllers: []string{"./api/controller"},
		Routes:      []Route{{Method: "get", Path: "/", Handlers: []string{"methodToHandler(controller0.get)"}}},
	})

	assert.Contains(t, out, "import controllerFn0 from './api/controller';\n")
	assert.Contains(t, out, "export type FrourioOptions = {\n  basePath?: string;\n  multer?: Options;\n};\n")
	assert.Contains(t, out, "export type ServerHooks<")
	assert.Contains(t, out, "export type ServerMethodHandler<")
	assert.Contains(t, out, "const methodToHandler = (")
	assert.True(t, strings.HasSuffix(out, "export default (app: Express, options: FrourioOptions = {}) => {\n"+
		"  const basePath = options.basePath ?? '';\n"+
		"  const controller0 = controllerFn0(app);\n"+
		"\n"+
		"  app.get(`${basePath}/`, methodToHandler(controller0.get));\n"+
		"\n"+
		"  return app;\n"+
		"};\n"), out)

	for _, absent := range []string{
		"const asyncMethodToHandler",
		"const parseNumberTypeQueryParams",
		"const parseJSONBody",
		"const uploader",
		"import express from 'express'",
		"import fastJson",
		"createStringifySet",
	} {
		assert.NotContains(t, out, absent)
	}
}

func TestAssemble_HelperPresenceFollowsMounts(t *testing.T) {
	out := Assemble(Server{
		Hooks:       []string{"./api/hooks"},
		Validators:  []string{"./api/users/_userId@number/validators"},
		Controllers: []string{"./api/controller", "./api/users/_userId@number/controller"},
		Routes: []Route{
			{Method: "post", Path: "/", Handlers: []string{
				"hooks0.onRequest",
				"callParserIfExistsQuery(parseBooleanTypeQueryParams([['flag', true, false]]))",
				"uploader",
				"formatMulterData([])",
				"asyncMethodToHandlerWithSchema(controller0.post, controller0.post.schemas.response)",
			}},
			{Method: "get", Path: "/users/:userId", Handlers: []string{
				"parseJSONBody",
				"createTypedParamsHandler(['userId'])",
				"validatorCompiler('params', validators0.params)",
				"asyncMethodToHandler(controller1.get)",
			}},
		},
	})

	for _, present := range []string{
		"import express from 'express';",
		"import multer from 'multer';",
		"import path from 'path';",
		"import fastJson from 'fast-json-stringify';",
		"import hooksFn0 from './api/hooks';",
		"import validatorsFn0 from './api/users/_userId@number/validators';",
		"import controllerFn1 from './api/users/_userId@number/controller';",
		"const parseBooleanTypeQueryParams",
		"const callParserIfExistsQuery",
		"const parseJSONBody",
		"const createTypedParamsHandler",
		"const validatorCompiler",
		"const formatMulterData",
		"const createStringifySet",
		"const asyncMethodToHandler = (",
		"const asyncMethodToHandlerWithSchema",
		"  const hooks0 = hooksFn0(app);\n  const validators0 = validatorsFn0(app);\n  const controller0 = controllerFn0(app);\n  const controller1 = controllerFn1(app);\n",
		"  const uploader = multer(",
		"  app.get(`${basePath}/users/:userId`, [\n    parseJSONBody,\n",
	} {
		assert.Contains(t, out, present)
	}
	for _, absent := range []string{
		"const methodToHandler = (",
		"const methodToHandlerWithSchema",
		"const parseNumberTypeQueryParams",
	} {
		assert.NotContains(t, out, absent)
	}

	// The stringify set is declared once, ahead of the dispatcher using it.
	assert.Equal(t, 1, strings.Count(out, "const createStringifySet"))
	assert.Less(t, strings.Index(out, "const createStringifySet"), strings.Index(out, "const asyncMethodToHandlerWithSchema"))
}

func TestAssemble_Deterministic(t *testing.T) {
	s := Server{
		Hooks:       []string{"./api/hooks"},
		Controllers: []string{"./api/controller"},
		Routes: []Route{
			{Method: "get", Path: "/", Handlers: []string{"hooks0.onRequest", "methodToHandlerWithSchema(controller0.get, controller0.get.schemas.response)"}},
			{Method: "post", Path: "/", Handlers: []string{"methodToHandler(controller0.post)"}},
		},
	}
	assert.Equal(t, Assemble(s), Assemble(s))
}

func TestAssemble_MulterFollowsUploaderHandler(t *testing.T) {
	out := Assemble(Server{
		Controllers: []string{"./api/controller"},
		Routes:      []Route{{Method: "post", Path: "/", Handlers: []string{"uploader"}}},
	})
	assert.Contains(t, out, "import multer from 'multer';")
	assert.Contains(t, out, "  const uploader = multer(")

	// A hook member that happens to be named uploader is not the middleware.
	out = Assemble(Server{
		Hooks:       []string{"./api/hooks"},
		Controllers: []string{"./api/controller"},
		Routes: []Route{{Method: "post", Path: "/", Handlers: []string{
			"hooks0.uploader",
			"methodToHandler(controller0.post)",
		}}},
	})
	assert.NotContains(t, out, "import multer from 'multer';")
	assert.NotContains(t, out, "const uploader")
}
