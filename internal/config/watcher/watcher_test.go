package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// eventRecorder collects events from a watcher.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) handle(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) waitFor(t *testing.T, op Operation, timeout time.Duration) Event {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		for _, ev := range r.events {
			if ev.Op == op {
				r.mu.Unlock()
				return ev
			}
		}
		r.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("did not receive %s event", op)
	return Event{}
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return w
}

func TestNew(t *testing.T) {
	w := newTestWatcher(t)
	defer w.Stop()

	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w2 := newTestWatcher(t, WithDebounce(0))
	defer w2.Stop()
	if w2.debounce != 0 {
		t.Errorf("debounce = %v, want 0", w2.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.toml")
	b := filepath.Join(tmpDir, "b.toml")

	w := newTestWatcher(t)
	defer w.Stop()

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error: %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error: %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("second Watch(a) error: %v", err)
	}
	if n := len(w.WatchedFiles()); n != 2 {
		t.Errorf("expected 2 watched files, got %d", n)
	}
	if w.dirs[tmpDir] != 2 {
		t.Errorf("expected directory refcount 2, got %d", w.dirs[tmpDir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch(a) error: %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatalf("Unwatch(b) error: %v", err)
	}
	if len(w.WatchedFiles()) != 0 || len(w.dirs) != 0 {
		t.Errorf("expected nothing watched, got files %v dirs %v", w.WatchedFiles(), w.dirs)
	}
}

func TestWatcher_WatchMissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	defer w.Stop()

	if err := w.Watch(filepath.Join(t.TempDir(), "missing", "imepad.toml")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := newTestWatcher(t)

	w.Start()
	w.Start() // idempotent

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
	if w.running {
		t.Error("expected stopped after Stop")
	}
	if err := w.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Stop() = %v, want ErrNotRunning", err)
	}
}

func TestWatcher_DetectsFileModification(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "imepad.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, WithDebounce(0))
	rec := &eventRecorder{}
	w.OnChange(rec.handle)

	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := rec.waitFor(t, OpWrite, 2*time.Second)
	want, _ := filepath.Abs(tmpFile)
	if ev.Path != want {
		t.Errorf("event.Path = %q, want %q", ev.Path, want)
	}
}

func TestWatcher_DetectsFileCreation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "imepad.toml")

	w := newTestWatcher(t, WithDebounce(0))
	rec := &eventRecorder{}
	w.OnChange(rec.handle)

	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(tmpFile, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	rec.waitFor(t, OpCreate, 2*time.Second)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "imepad.toml")
	sibling := filepath.Join(tmpDir, "other.toml")

	w := newTestWatcher(t, WithDebounce(0))
	rec := &eventRecorder{}
	w.OnChange(rec.handle)

	if err := w.Watch(watched); err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(sibling, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := rec.count(); n != 0 {
		t.Errorf("expected no events for unwatched sibling, got %d", n)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "imepad.toml")
	if err := os.WriteFile(tmpFile, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, WithDebounce(50*time.Millisecond))
	rec := &eventRecorder{}
	w.OnChange(rec.handle)

	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte{byte('1' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec.waitFor(t, OpWrite, 2*time.Second)
	time.Sleep(200 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("expected rapid writes to coalesce into 1 event, got %d", n)
	}
}

func TestQueueEventCoalescing(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"write write", []Operation{OpWrite, OpWrite}, OpWrite},
		{"create write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"write remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"remove write", []Operation{OpRemove, OpWrite}, OpRemove},
		{"remove create", []Operation{OpRemove, OpCreate}, OpCreate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWatcher(t)
			defer w.Stop()

			for _, op := range tt.ops {
				w.queueEvent(Event{Path: "/x", Op: op, Time: time.Now()})
			}
			if got := w.pending["/x"].Op; got != tt.want {
				t.Errorf("coalesced op = %s, want %s", got, tt.want)
			}
		})
	}
}
