package content

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one document file and reports debounced change events.
// Editors write files with bursts of events (truncate, write, rename), so
// changes within the debounce window coalesce into a single callback.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)
	fsw      *fsnotify.Watcher
	closeCh  chan struct{}
}

// NewWatcher watches path and calls onChange after each debounced change
// burst. Watching the parent directory instead of the file itself survives
// editors that replace the file on save.
func NewWatcher(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		closeCh:  make(chan struct{}),
	}, nil
}

// Start runs the watch loop until Close is called.
func (w *Watcher) Start() {
	go w.loop()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.closeCh)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	pending := false

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)

		case <-debounce.C:
			if pending {
				pending = false
				w.onChange(w.path)
			}

		case <-w.closeCh:
			return
		}
	}
}
