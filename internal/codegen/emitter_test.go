package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_Linef(t *testing.T) {
	e := NewEmitter()
	e.Linef("const %s = %s(app);", "hooks0", "hooksFn0")
	assert.Equal(t, "const hooks0 = hooksFn0(app);\n", e.String())
}

func TestEmitter_BreaksCollapse(t *testing.T) {
	e := NewEmitter()
	e.Break()
	e.Linef("a")
	e.Break()
	e.Break()
	e.Linef("b")
	assert.Equal(t, "a\n\nb\n", e.String(), "no leading blank line and one blank line between")
}

func TestEmitter_NoBreakAfterOpenOrBeforeClose(t *testing.T) {
	e := NewEmitter()
	e.Open("export default (app: Express) =>")
	e.Break()
	e.Open("if (x)")
	e.Linef("return;")
	e.Break()
	e.Close("")
	e.Close(";")
	assert.Equal(t, "export default (app: Express) => {\n  if (x) {\n    return;\n  }\n};\n", e.String())
}

func TestEmitter_TextReindents(t *testing.T) {
	e := NewEmitter()
	e.Open("() =>")
	e.Text("app.get(`/`, [\n  a,\n\n  b,\n]);\n")
	e.Close("")
	assert.Equal(t, "() => {\n  app.get(`/`, [\n    a,\n\n    b,\n  ]);\n}\n", e.String())
}

func TestEmitter_TextKeepsPercent(t *testing.T) {
	e := NewEmitter()
	e.Text("const s = '100%';")
	assert.Equal(t, "const s = '100%';\n", e.String())
}

func TestEmitter_Import(t *testing.T) {
	e := NewEmitter()
	e.Import("express", "express", false)
	e.Import("{ z }", "zod", true)
	assert.Equal(t, "import express from 'express';\nimport type { z } from 'zod';\n", e.String())
}
