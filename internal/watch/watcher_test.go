// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// startWatcher builds a Watcher over dir and runs it until the test ends.
func startWatcher(t *testing.T, cfg Config) (*Watcher, chan error, context.CancelFunc) {
	t.Helper()

	if cfg.Stdout == nil {
		cfg.Stdout = &bytes.Buffer{}
	}
	if cfg.Stderr == nil {
		cfg.Stderr = &bytes.Buffer{}
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	return w, errCh, cancel
}

// TestWatcherDebounce verifies that a burst of definition writes coalesces
// into a single callback carrying all changed paths.
func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	_, errCh, cancel := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			close(done)
			return nil
		},
	})
	defer cancel()

	// Write three definitions in rapid succession, well inside the window.
	for _, name := range []string{"sword.json", "axe.json", "dagger.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		// Small pause so the writes arrive as separate fsnotify events
		// rather than being batched by the OS.
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	// Brief settle to catch spurious extra callbacks.
	time.Sleep(200 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 debounced callback, got %d", calls)
	}
	for _, want := range []string{"sword.json", "axe.json", "dagger.json"} {
		if !slices.Contains(collected, want) {
			t.Errorf("expected %q in changed files, got %v", want, collected)
		}
	}
}

// TestWatcherPatternFiltering verifies that only events matching the
// configured glob patterns trigger the callback.
func TestWatcherPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	callbackFired := make(chan []string, 10)

	_, errCh, cancel := startWatcher(t, Config{
		BaseDir:  dir,
		Patterns: []string{"**/*.json"},
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			callbackFired <- changed
			return nil
		},
	})
	defer cancel()

	// A non-matching file first.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("wip"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}

	// Wait out a debounce cycle to ensure the .txt write does not fire.
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "AtlyssTools.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}

	select {
	case changed := <-callbackFired:
		if slices.Contains(changed, "notes.txt") {
			t.Error("non-matching file notes.txt appeared in changed set")
		}
		if !slices.Contains(changed, "AtlyssTools.json") {
			t.Errorf("expected AtlyssTools.json in changed set, got %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback on .json file")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

// TestWatcherContextCancel verifies that Run returns cleanly when its
// context is cancelled.
func TestWatcherContextCancel(t *testing.T) {
	t.Parallel()

	_, errCh, cancel := startWatcher(t, Config{
		BaseDir:  t.TempDir(),
		Debounce: 50 * time.Millisecond,
	})

	// Give the event loop time to start.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() returned error on cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

// TestDefaultIgnores checks the built-in ignore patterns against the files
// that actually show up in a mod directory under development.
func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/config", true},
		{".git/objects/ab/cd1234", true},
		{"Assets/com.example.alpha.bundle.tmp", true},
		{"Assets/sword.json.swp", true},
		{"Assets/sword.json.swo", true},
		{"backup~", true},
		{".DS_Store", true},
		{"Assets/.DS_Store", true},
		// These must not be ignored.
		{"AtlyssTools.json", false},
		{"Assets/sword.json", false},
		{"Assets/com.example.alpha.bundle", false},
		{"Assets/com.example.alpha.bundle.manifest", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := isIgnored(tt.path); got != tt.ignored {
				t.Errorf("isIgnored(%q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}

// TestWatcherSkipIfBusy verifies the busy guard: when the callback outlives
// the debounce window, the next fire is skipped instead of overlapping.
func TestWatcherSkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		mu    sync.Mutex
		calls int
	)
	firstCallDone := make(chan struct{})
	stderrBuf := &bytes.Buffer{}

	// Callback blocks for 300ms against a 50ms debounce.
	_, errCh, cancel := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		Stderr:   stderrBuf,
		OnChange: func(_ context.Context, _ []string) error {
			mu.Lock()
			calls++
			callNum := calls
			mu.Unlock()
			if callNum == 1 {
				time.Sleep(300 * time.Millisecond)
				close(firstCallDone)
			}
			return nil
		},
	})
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "first.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write first.json: %v", err)
	}

	// Let the debounce fire and the callback start blocking.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "second.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write second.json: %v", err)
	}

	select {
	case <-firstCallDone:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first callback")
	}

	// Give the re-armed timer a chance to deliver the pending set.
	time.Sleep(200 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	// One call when the skip held, two when the retry fired afterwards;
	// never concurrent.
	if calls > 2 {
		t.Errorf("expected at most 2 callback invocations, got %d", calls)
	}
	if calls == 1 && !strings.Contains(stderrBuf.String(), "skipping re-execution") {
		t.Logf("stderr: %s", stderrBuf.String())
		t.Log("expected skip message in stderr, but callback may have completed before second fire")
	}
}

// TestWatcherClearScreen verifies that ClearScreen writes the ANSI clear
// sequence before invoking the callback.
func TestWatcherClearScreen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	done := make(chan struct{})
	stdoutBuf := &bytes.Buffer{}

	_, errCh, cancel := startWatcher(t, Config{
		BaseDir:     dir,
		Debounce:    50 * time.Millisecond,
		ClearScreen: true,
		Stdout:      stdoutBuf,
		OnChange: func(_ context.Context, _ []string) error {
			close(done)
			return nil
		},
	})
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "sword.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write sword.json: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if out := stdoutBuf.String(); !strings.Contains(out, "\033[2J\033[H") {
		t.Errorf("expected ANSI clear sequence in stdout, got %q", out)
	}
}

// TestWatcherInvalidPattern verifies that New fails fast on a bad glob.
func TestWatcherInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Config{
		BaseDir:  t.TempDir(),
		Patterns: []string{"[invalid"},
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("New() should return an error for an invalid glob pattern")
	}
	if !strings.Contains(err.Error(), "invalid watch pattern") {
		t.Errorf("error message should mention invalid watch pattern, got: %v", err)
	}
}

// TestWatcherDoubleRunError verifies that a second Run call is rejected.
func TestWatcherDoubleRunError(t *testing.T) {
	t.Parallel()

	w, errCh, cancel := startWatcher(t, Config{
		BaseDir:  t.TempDir(),
		Debounce: 50 * time.Millisecond,
	})
	defer cancel()

	time.Sleep(50 * time.Millisecond)

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("second Run() call should return an error")
	} else if !strings.Contains(err.Error(), "Run called more than once") {
		t.Errorf("error message should mention double-run, got: %v", err)
	}

	cancel()
	if firstErr := <-errCh; firstErr != nil {
		t.Fatalf("first Run() returned error: %v", firstErr)
	}
}
