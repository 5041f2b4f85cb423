package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/frourio/frourio-express/internal/config"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	jsonPaths, yamlPaths, tomlPaths := config.CandidatePaths(cwd, config.ExplicitConfig(args))

	exitCode := -1
	var cli config.Config
	parser, err := kong.New(&cli,
		kong.Name("frourio-express"),
		kong.Description("Generate $server.ts from the api route tree of a frourio-express project."),
		kong.UsageOnError(),
		kong.Vars{"version": "frourio-express " + version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		// Explicit flags override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	_, err = parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := cli.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.ParseLevel(cli.LogLevel)}))
	root, err := filepath.Abs(cli.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch {
	case cli.DumpRoutes:
		return runDumpRoutes(root, &cli, logger, stdout, stderr)
	case cli.Watch:
		return runWatch(root, &cli, logger, stderr)
	default:
		return runGenerate(root, &cli, logger, stderr)
	}
}
