package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMeasurer_Schedule(t *testing.T) {
	m := NewMeasurer(10 * time.Millisecond)
	done := make(chan struct{})

	m.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("capture never fired")
	}
}

func TestMeasurer_RescheduleReplacesPending(t *testing.T) {
	m := NewMeasurer(50 * time.Millisecond)
	fired := make(chan int, 2)

	m.Schedule(func() { fired <- 1 })
	m.Schedule(func() { fired <- 2 })

	select {
	case got := <-fired:
		if got != 2 {
			t.Errorf("capture %d fired, want only the rescheduled one", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("capture never fired")
	}

	// The replaced capture must not fire afterwards.
	select {
	case got := <-fired:
		t.Errorf("stale capture %d fired after reschedule", got)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestMeasurer_Cancel(t *testing.T) {
	m := NewMeasurer(20 * time.Millisecond)
	fired := make(chan struct{}, 1)

	m.Schedule(func() { fired <- struct{}{} })
	m.Cancel()

	select {
	case <-fired:
		t.Error("capture fired after Cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte("<p>one</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(p string) { changed <- p })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	w.Start()

	// A burst of writes coalesces into a single callback.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("<p>two</p>"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("onChange path = %q, want %q", p, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onChange never fired")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte("<p>doc</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(path, 30*time.Millisecond, func(p string) { changed <- p })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	w.Start()

	if err := os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("onChange fired for sibling write: %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}
