// Package watch tracks a fixed set of input files plus an optional
// mapping config, coalesces rapid writes, and emits batches of inputs
// that need re-conversion.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce is how long changes accumulate before a batch is
	// emitted.
	DefaultDebounce = 500 * time.Millisecond

	// eventChannelBuffer is the size of the batch channel.
	eventChannelBuffer = 16
)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to collect changes before emitting a batch.
	// Zero or negative means DefaultDebounce.
	Debounce time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Watcher emits batches of input files whose content changed. A change
// to the mapping config re-emits every input. Writes that leave a file
// byte-identical are suppressed by content hash.
type Watcher struct {
	inputs     []string // absolute, sorted, deduplicated
	inputSet   map[string]bool
	configPath string // absolute, "" when no config file is tracked
	debounce   time.Duration
	logger     *slog.Logger
	watcher    *fsnotify.Watcher

	pendingMu   sync.Mutex
	pending     map[string]struct{}
	configDirty bool

	hashMu sync.Mutex
	hashes map[string]string

	events chan []string
}

// New builds a watcher over a fixed set of input files and an optional
// mapping config path. Paths are resolved to absolute before matching
// against filesystem events.
func New(inputs []string, configPath string, opts Options) (*Watcher, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("watch: no inputs")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	w := &Watcher{
		inputSet: make(map[string]bool, len(inputs)),
		debounce: opts.Debounce,
		logger:   opts.Logger,
		watcher:  fsw,
		pending:  make(map[string]struct{}),
		hashes:   make(map[string]string),
		events:   make(chan []string, eventChannelBuffer),
	}
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		if !w.inputSet[abs] {
			w.inputSet[abs] = true
			w.inputs = append(w.inputs, abs)
		}
	}
	sort.Strings(w.inputs)
	if configPath != "" {
		if w.configPath, err = filepath.Abs(configPath); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Events returns the channel of input batches to re-convert. It closes
// when the watcher stops.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Start watches the parent directories of every tracked file and begins
// emitting batches. Watching directories instead of the files keeps
// replace-by-rename saves visible.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for _, in := range w.inputs {
		dirs[filepath.Dir(in)] = true
	}
	if w.configPath != "" {
		dirs[filepath.Dir(w.configPath)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	// Prime the hash cache so the first tick only reports real changes.
	for _, in := range w.inputs {
		w.refresh(in)
	}
	if w.configPath != "" {
		w.refresh(w.configPath)
	}

	go w.processEvents(ctx)

	w.logger.Info("watching",
		"inputs", len(w.inputs),
		"config", w.configPath,
		"debounce", w.debounce)
	return nil
}

// Stop closes the underlying watcher; the events channel closes once
// the processing goroutine drains.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent marks tracked paths dirty. Everything else in the
// watched directories is ignored.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	switch {
	case w.configPath != "" && path == w.configPath:
		w.configDirty = true
	case w.inputSet[path]:
		w.pending[path] = struct{}{}
	}
}

// flushPending turns accumulated changes into one batch. A config
// change re-emits every input regardless of input hashes.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 && !w.configDirty {
		w.pendingMu.Unlock()
		return
	}
	dirty := w.configDirty
	changed := w.pending
	w.configDirty = false
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if dirty {
		dirty = w.refresh(w.configPath)
	}

	var batch []string
	if dirty {
		batch = append(batch, w.inputs...)
		for _, in := range w.inputs {
			w.refresh(in)
		}
	} else {
		for path := range changed {
			if w.refresh(path) {
				batch = append(batch, path)
			}
		}
		sort.Strings(batch)
	}
	if len(batch) == 0 {
		return
	}

	select {
	case w.events <- batch:
		w.logger.Debug("change batch emitted", "inputs", len(batch))
	default:
		w.logger.Warn("event channel full, dropping batch", "inputs", len(batch))
	}
}

// refresh re-hashes one file and reports whether the content differs
// from the recorded hash. Unreadable files lose their hash entry so a
// reappearance counts as a change.
func (w *Watcher) refresh(path string) bool {
	content, err := os.ReadFile(path)

	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	if err != nil {
		if _, had := w.hashes[path]; had {
			delete(w.hashes, path)
			w.logger.Warn("watched file unavailable", "path", path, "error", err)
		}
		return false
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	if w.hashes[path] == hash {
		return false
	}
	w.hashes[path] = hash
	return true
}
