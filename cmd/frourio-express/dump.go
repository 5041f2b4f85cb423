package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/frourio/frourio-express/internal/codegen"
	"github.com/frourio/frourio-express/internal/config"
	"github.com/frourio/frourio-express/internal/diagnostic"
	"github.com/frourio/frourio-express/internal/generator"
)

// routesDump is the JSON output structure for --dump-routes.
type routesDump struct {
	Root   string          `json:"root"`
	Routes []codegen.Route `json:"routes"`
}

// runDumpRoutes prints the analyzed routes as JSON without writing
// $server.ts. Scaffolding still runs.
func runDumpRoutes(root string, cli *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	diags := diagnostic.NewCollector(cli.Quiet)
	res, err := generator.Build(root, generator.Options{
		Project:     cli.Project,
		Logger:      logger,
		Diagnostics: diags,
	})
	report(res, diags, root, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	dump := routesDump{Root: root, Routes: res.Routes}
	if dump.Routes == nil {
		dump.Routes = []codegen.Route{}
	}
	if err := json.MarshalWrite(stdout, dump, json.Deterministic(true), jsontext.WithIndent("  ")); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout)
	return 0
}
