package analyzer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frourio/frourio-express/internal/analyzer"
	"github.com/frourio/frourio-express/internal/compiler"
	"github.com/frourio/frourio-express/internal/testutil"
)

const projectRoot = "/project"

const projectConfig = `{
  "compilerOptions": {
    "target": "es2022",
    "strict": true
  }
}
`

// file returns the absolute name of a project file.
func file(name string) string {
	return projectRoot + "/" + name
}

// newFacts builds a program over the given project files, keyed by
// slash-separated paths relative to the project root, and returns the
// checker-backed facts. Every .ts file is a root file.
func newFacts(t *testing.T, files map[string]string) *analyzer.CheckerFacts {
	t.Helper()
	facts, _ := newProgram(t, files)
	return facts
}

func newProgram(t *testing.T, files map[string]string) (*analyzer.CheckerFacts, *compiler.Program) {
	t.Helper()

	if _, ok := files[compiler.DefaultConfigName]; !ok {
		files[compiler.DefaultConfigName] = projectConfig
	}
	env := compiler.NewEnv(projectRoot, testutil.ProjectFS(projectRoot, files))

	configPath := compiler.FindConfigFile(env, "")
	require.NotEmpty(t, configPath)
	opts, diags := compiler.LoadCompilerOptions(env, configPath)
	require.Empty(t, diags)

	var roots []string
	for name := range files {
		if strings.HasSuffix(name, ".ts") {
			roots = append(roots, file(name))
		}
	}

	prog, err := compiler.CreateProgram(env, roots, opts)
	require.NoError(t, err)
	t.Cleanup(prog.Release)

	return analyzer.NewCheckerFacts(prog.Program, prog.Checker, prog.Broken), prog
}
