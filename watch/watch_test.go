package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// startWatcher builds and starts a watcher with a short debounce over
// the given files.
func startWatcher(t *testing.T, inputs []string, configPath string) *Watcher {
	t.Helper()

	w, err := New(inputs, configPath, Options{Debounce: 50 * time.Millisecond, Logger: testLogger()})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	t.Cleanup(func() { w.Stop() })

	// Give the watcher time to set up.
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestNew_NoInputs(t *testing.T) {
	if _, err := New(nil, "", Options{}); err == nil {
		t.Fatal("expected error for empty input list")
	}
}

func TestNew_DeduplicatesInputs(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "a.csv")

	w, err := New([]string{input, input}, "", Options{})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if len(w.inputs) != 1 {
		t.Errorf("expected 1 deduplicated input, got %d", len(w.inputs))
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %v", w.debounce)
	}
}

func TestWatcher_InputChange(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "data.csv")
	writeFile(t, input, "id,Title\nP1,Old\n")

	w := startWatcher(t, []string{input}, "")

	writeFile(t, input, "id,Title\nP1,New\n")

	select {
	case batch := <-w.Events():
		if !reflect.DeepEqual(batch, []string{input}) {
			t.Errorf("unexpected batch: %v", batch)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for change batch")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "data.csv")
	writeFile(t, input, "id\nP1\n")

	w := startWatcher(t, []string{input}, "")

	writeFile(t, filepath.Join(tmpDir, "other.txt"), "noise")

	select {
	case batch := <-w.Events():
		t.Errorf("unexpected batch for untracked file: %v", batch)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_UnchangedContentSuppressed(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "data.csv")
	content := "id,Title\nP1,Same\n"
	writeFile(t, input, content)

	w := startWatcher(t, []string{input}, "")

	// Rewrite identical bytes; the hash check should swallow it.
	writeFile(t, input, content)

	select {
	case batch := <-w.Events():
		t.Errorf("unexpected batch for unchanged content: %v", batch)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ConfigChangeReemitsAllInputs(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.csv")
	b := filepath.Join(tmpDir, "b.csv")
	cfg := filepath.Join(tmpDir, "mapping.json")
	writeFile(t, a, "id\nP1\n")
	writeFile(t, b, "id\nP2\n")
	writeFile(t, cfg, `{"primary_key": "id"}`)

	w := startWatcher(t, []string{b, a}, cfg)

	writeFile(t, cfg, `{"primary_key": "id", "lang": "es"}`)

	select {
	case batch := <-w.Events():
		if !reflect.DeepEqual(batch, []string{a, b}) {
			t.Errorf("expected both inputs in sorted order, got %v", batch)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for config change batch")
	}
}

func TestWatcher_ContextCancelClosesEvents(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "data.csv")
	writeFile(t, input, "id\nP1\n")

	w, err := New([]string{input}, "", Options{Debounce: 50 * time.Millisecond, Logger: testLogger()})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	cancel()

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for events channel to close")
	}
}
