package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/frourio/frourio-express/internal/compiler"
	"github.com/frourio/frourio-express/internal/config"
	"github.com/frourio/frourio-express/internal/diagnostic"
	"github.com/frourio/frourio-express/internal/generator"
)

// runGenerate writes $server.ts once.
func runGenerate(root string, cli *config.Config, logger *slog.Logger, stderr io.Writer) int {
	diags := diagnostic.NewCollector(cli.Quiet)
	res, changed, err := generator.Generate(root, generator.Options{
		Project:     cli.Project,
		Logger:      logger,
		Diagnostics: diags,
	})
	report(res, diags, root, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if changed {
		logger.Info("wrote server file", "file", res.FilePath, "routes", len(res.Routes))
	} else {
		logger.Info("server file unchanged", "file", res.FilePath, "routes", len(res.Routes))
	}
	return 0
}

// report prints the syntax errors of analyzed files followed by the
// generation diagnostics.
func report(res *generator.Result, diags *diagnostic.Collector, root string, stderr io.Writer) {
	if res != nil {
		compiler.NewReporter(stderr, root, !color.NoColor).ReportAll(res.CompilerDiagnostics)
	}
	diags.Report(stderr, root)
}
