package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/frourio/frourio-express/internal/config"
	"github.com/frourio/frourio-express/internal/generator"
	"github.com/frourio/frourio-express/internal/watcher"
)

// runWatch generates once and then again after every change under api.
// Runs never overlap.
func runWatch(root string, cli *config.Config, logger *slog.Logger, stderr io.Writer) int {
	runGenerate(root, cli, logger, stderr)

	w := watcher.New(
		[]string{filepath.Join(root, generator.APIDir)},
		[]string{".ts"},
		cli.Debounce,
		func(events []watcher.Event) {
			logger.Debug("change detected", "events", len(events), "first", events[0].Path)
			runGenerate(root, cli, logger, stderr)
		},
	)
	w.SetLogger(logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		w.Stop()
	}()

	logger.Info("watching for changes", "dir", filepath.Join(root, generator.APIDir))
	if err := w.Watch(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
