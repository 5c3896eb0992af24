// Package watch turns filesystem notifications for one file into change
// signals.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the watched file was modified.
type Change struct {
	Path string
	Op   fsnotify.Op
	At   time.Time
}

// Watcher monitors a single file. It watches the parent directory so that
// editors which save by renaming a temp file over the target still trigger
// a change.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	changes   chan Change
	done      chan struct{}
	logger    *slog.Logger
}

// New starts watching path.
func New(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		changes:   make(chan Change, 64),
		done:      make(chan struct{}),
		logger:    logger,
	}

	go w.run()

	return w, nil
}

// Changes returns the change channel. It is closed when the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) run() {
	defer close(w.changes)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.logger.Debug("table changed", "path", w.path, "op", event.Op.String())

	// Queued changes already force a re-read; drop when full.
	select {
	case w.changes <- Change{Path: w.path, Op: event.Op, At: time.Now()}:
	default:
	}
}
