// Package watcher reports batches of file changes under a set of
// directories, debounced and delivered one batch at a time.
package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   string // "create", "write", "remove"
}

// Watcher watches directory trees for changes to files with the given
// extensions. Generated files (names starting with "$") and hidden
// directories are ignored. Directories created after Watch starts are
// picked up automatically.
type Watcher struct {
	dirs       []string
	extensions []string // e.g., [".ts"]
	debounce   time.Duration
	onChange   func(events []Event)
	logger     *slog.Logger

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer

	// runMu keeps onChange calls from overlapping.
	runMu sync.Mutex

	ready    chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a new file watcher.
func New(dirs []string, extensions []string, debounce time.Duration, onChange func(events []Event)) *Watcher {
	return &Watcher{
		dirs:       dirs,
		extensions: extensions,
		debounce:   debounce,
		onChange:   onChange,
		logger:     slog.New(slog.DiscardHandler),
		ready:      make(chan struct{}),
		stopCh:     make(chan struct{}),
	}
}

// SetLogger sets the logger used for watch errors.
func (w *Watcher) SetLogger(l *slog.Logger) {
	w.logger = l
}

// Ready is closed once every initial directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until Stop is called.
func (w *Watcher) Watch() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := w.addTree(fsw, dir, nil); err != nil {
			return err
		}
	}
	close(w.ready)

	for {
		select {
		case <-w.stopCh:
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ignored(ev.Name) {
		return
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// Files written before the watch was added would be missed.
			var found []Event
			if err := w.addTree(fsw, ev.Name, &found); err != nil {
				w.logger.Warn("watching new directory", "dir", ev.Name, "error", err)
			}
			w.enqueue(append([]Event{{Path: ev.Name, Op: "create"}}, found...))
			return
		}
	}

	op := opName(ev.Op)
	if op == "" {
		return
	}
	// A removed directory no longer has anything to stat; extensionless
	// names are assumed to be directories.
	if !w.matches(ev.Name) && !(op == "remove" && filepath.Ext(ev.Name) == "") {
		return
	}
	w.enqueue([]Event{{Path: ev.Name, Op: op}})
}

// addTree watches dir and every directory below it. When found is non-nil,
// matching files already present are recorded as create events.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string, found *[]Event) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			return nil
		}
		if found != nil && w.matches(path) {
			*found = append(*found, Event{Path: path, Op: "create"})
		}
		return nil
	})
}

func (w *Watcher) enqueue(events []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, events...)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if len(pending) > 0 && w.onChange != nil {
		w.onChange(pending)
	}
}

func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ignored reports whether a path is generated output or hidden.
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "$") || (strings.HasPrefix(base, ".") && base != "." && base != "..") || base == "node_modules"
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return "remove"
	default:
		return ""
	}
}
