package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

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

func TestQueueEventCoalesces(t *testing.T) {
	w := &Watcher{pendingFiles: make(map[string]pendingEvent)}
	now := time.Now()

	w.queueEvent(Event{Path: "a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "a", Op: OpWrite, Time: now.Add(time.Millisecond)})
	if got := w.pendingFiles["a"]; got.Op != OpCreate || !got.Time.Equal(now.Add(time.Millisecond)) {
		t.Errorf("create+write = %+v, want create at latest time", got)
	}

	w.queueEvent(Event{Path: "a", Op: OpRemove, Time: now})
	if got := w.pendingFiles["a"].Op; got != OpRemove {
		t.Errorf("any+remove = %v, want remove", got)
	}

	w.queueEvent(Event{Path: "b", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "b", Op: OpWrite, Time: now})
	if got := w.pendingFiles["b"].Op; got != OpWrite {
		t.Errorf("write+write = %v, want write", got)
	}
}

func TestWatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	// Files that do not exist yet can be watched.
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Errorf("second Watch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles() = %d files, want 1", got)
	}
	if w.dirs[dir] != 1 {
		t.Errorf("dir refcount = %d, want 1", w.dirs[dir])
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "cfg.toml")); err == nil {
		t.Error("expected error watching a file in a missing directory")
	}
}

func TestWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cellstorm.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	w.OnChange(func(Event) { panic("handler panics are contained") })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Changes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch("x.toml"); err != ErrWatcherClosed {
		t.Errorf("Watch after Close = %v, want ErrWatcherClosed", err)
	}
}
