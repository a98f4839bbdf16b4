// Package watch monitors the tracked files' directories for changes so the
// watch command can collect edits into the mirror as they happen. It uses
// fsnotify for cross-platform file system event monitoring.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mWalrus/conman/internal/store"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	// OpModify indicates a tracked file was written or created.
	OpModify EventOp = iota
	// OpDelete indicates a tracked file was removed or renamed away.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op EventOp) String() string {
	switch op {
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is a file system event for a tracked file.
type Event struct {
	// File is the tracked entry the event belongs to.
	File store.TrackedFile
	// Op is the operation that occurred.
	Op EventOp
}

// Watcher watches the parent directories of tracked files and emits events
// for the tracked files themselves. Events for other files in those
// directories are dropped.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	tracked map[string]store.TrackedFile
}

// New creates a Watcher over the given tracked files. The watcher must be
// started with Start before it emits events.
func New(files []store.TrackedFile) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	tracked := make(map[string]store.TrackedFile, len(files))
	for _, f := range files {
		tracked[filepath.Clean(f.SystemPath)] = f
	}

	return &Watcher{
		watcher: watcher,
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
		tracked: tracked,
	}, nil
}

// Start adds the tracked files' parent directories to the watch set and
// begins emitting events. Directories are watched rather than the files
// themselves so editors that replace files by rename keep being seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	added := make(map[string]bool)
	for path := range w.tracked {
		dir := filepath.Dir(path)
		if added[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		added[dir] = true
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop stops watching and cleans up. It blocks until the event processing
// goroutine has exited; the Events and Errors channels are closed after.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return nil
}

// Events returns the channel that emits tracked-file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel that emits watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// IsRunning reports whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if fileEvent, ok := w.convertEvent(event); ok {
				select {
				case w.events <- fileEvent:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convertEvent maps an fsnotify event onto a tracked file. Returns false for
// events on untracked paths and for operations that do not matter (chmod).
func (w *Watcher) convertEvent(event fsnotify.Event) (Event, bool) {
	file, ok := w.tracked[filepath.Clean(event.Name)]
	if !ok {
		return Event{}, false
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		// The editor moved the file away; a save-by-rename follows with a
		// create event for the new content.
		op = OpDelete
	default:
		return Event{}, false
	}

	return Event{File: file, Op: op}, true
}
