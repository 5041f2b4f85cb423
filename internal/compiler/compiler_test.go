package compiler_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frourio/frourio-express/internal/compiler"
	"github.com/frourio/frourio-express/internal/testutil"
)

const root = "/project"

func env(files map[string]string) *compiler.Env {
	return compiler.NewEnv(root, testutil.ProjectFS(root, files))
}

func TestFindConfigFile(t *testing.T) {
	e := env(map[string]string{
		"tsconfig.json":            "{}",
		"server/tsconfig.json":     "{}",
		"server/tsconfig.gen.json": "{}",
		"server/api/index.ts":      "export type Methods = {};",
	})

	assert.Equal(t, "/project/tsconfig.json", compiler.FindConfigFile(e, ""))
	assert.Equal(t, "/project/server/tsconfig.json", compiler.FindConfigFile(e, "server"))
	assert.Equal(t, "/project/server/tsconfig.json", compiler.FindConfigFile(e, "server/api"))
	assert.Equal(t, "/project/server/tsconfig.gen.json", compiler.FindConfigFile(e, "server/tsconfig.gen.json"))
}

func TestFindConfigFile_None(t *testing.T) {
	e := env(map[string]string{"api/index.ts": "export type Methods = {};"})
	assert.Empty(t, compiler.FindConfigFile(e, ""))
}

func TestLoadCompilerOptions(t *testing.T) {
	e := env(map[string]string{
		"tsconfig.json": `{
  // comments are allowed
  "compilerOptions": { "strict": true }
}`,
	})

	opts, diags := compiler.LoadCompilerOptions(e, compiler.FindConfigFile(e, ""))
	require.Empty(t, diags)
	assert.Equal(t, core.TSTrue, opts.Strict)
}

func TestLoadCompilerOptions_Malformed(t *testing.T) {
	e := env(map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "strict": "yes" } }`,
	})

	opts, diags := compiler.LoadCompilerOptions(e, compiler.FindConfigFile(e, ""))
	require.NotNil(t, opts)
	assert.NotEmpty(t, diags)
}

func TestLoadCompilerOptions_NoConfig(t *testing.T) {
	opts, diags := compiler.LoadCompilerOptions(env(nil), "")
	require.NotNil(t, opts)
	assert.Empty(t, diags)
}

func TestCreateProgram_BrokenFiles(t *testing.T) {
	e := env(map[string]string{
		"tsconfig.json":    "{}",
		"api/index.ts":     "export type Methods = {};\n",
		"api/bad/index.ts": "export type Methods = {\n",
	})
	opts, _ := compiler.LoadCompilerOptions(e, compiler.FindConfigFile(e, ""))

	prog, err := compiler.CreateProgram(e, []string{"api/index.ts", "api/bad/index.ts"}, opts)
	require.NoError(t, err)
	defer prog.Release()

	assert.True(t, prog.Broken["/project/api/bad/index.ts"])
	assert.False(t, prog.Broken["/project/api/index.ts"])
	assert.Positive(t, compiler.CountErrors(prog.Diagnostics))

	var buf bytes.Buffer
	errs := compiler.NewReporter(&buf, root, false).ReportAll(prog.Diagnostics)
	assert.Equal(t, compiler.CountErrors(prog.Diagnostics), errs)
	assert.Contains(t, buf.String(), "api/bad/index.ts(")
	assert.Contains(t, buf.String(), "error TS")
}

func TestProgramRelease_Twice(t *testing.T) {
	e := env(map[string]string{"api/index.ts": "export type Methods = {};\n"})
	prog, err := compiler.CreateProgram(e, []string{"api/index.ts"}, nil)
	require.NoError(t, err)

	prog.Release()
	prog.Release()
	assert.Empty(t, prog.Broken)
}

func TestReporter_Pretty(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	e := env(map[string]string{"api/index.ts": "export type Methods = {\n  get: { resBody: string ;\n"})
	prog, err := compiler.CreateProgram(e, []string{"api/index.ts"}, nil)
	require.NoError(t, err)
	defer prog.Release()
	require.NotEmpty(t, prog.Diagnostics)

	var buf bytes.Buffer
	compiler.NewReporter(&buf, root, true).Report(prog.Diagnostics[0])
	out := buf.String()
	assert.Contains(t, out, "api/index.ts:")
	assert.Contains(t, out, " - error TS")
	assert.Contains(t, out, " | ")
	assert.Contains(t, out, "~")
}
