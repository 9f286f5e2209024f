package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/quill/internal/log"
)

// Changed reports that the document changed on disk by someone else.
type Changed struct {
	Path string
	Hash Hash
}

// WatcherConfig holds watcher configuration options.
type WatcherConfig struct {
	Debounce time.Duration
}

// DefaultWatcherConfig returns sensible defaults for the watcher.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{Debounce: 200 * time.Millisecond}
}

// Watcher monitors the document for external changes. Bursts of events are
// debounced into one check; content matching the store's last load or save
// is ignored.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	store     *FileStore
	debounce  time.Duration
	onChange  chan Changed
	done      chan struct{}
}

// NewWatcher creates a watcher for the store's document.
func NewWatcher(s *FileStore, cfg WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		store:     s,
		debounce:  cfg.Debounce,
		onChange:  make(chan Changed, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the document's directory. Saves replace the file by
// rename, so the directory is watched rather than the file itself.
func (w *Watcher) Start() (<-chan Changed, error) {
	dir := filepath.Dir(w.store.Path())
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				pending = false
				w.check()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "File watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// check hashes the file and notifies unless the content is our own.
func (w *Watcher) check() {
	data, err := os.ReadFile(w.store.Path())
	if err != nil {
		// Removed, or mid-replace; the next event will retry.
		log.Debug(log.CatWatcher, "Skipping unreadable document", "path", w.store.Path(), "error", err)
		return
	}
	h := HashOf(data)
	if w.store.IsCurrent(h) {
		log.Debug(log.CatWatcher, "Ignoring own write", "path", w.store.Path())
		return
	}
	log.Info(log.CatWatcher, "Document changed on disk", "path", w.store.Path())
	select {
	case w.onChange <- Changed{Path: w.store.Path(), Hash: h}:
	default:
	}
}

// isRelevantEvent checks if the event touches the document.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.store.Path())
}
