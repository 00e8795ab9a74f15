// Package watcher re-runs the pipeline when the input dataset changes on
// disk. Each change triggers a full re-run; layout state is never carried
// across runs.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ritzau/graph-explorer/pkg/logging"
)

// ChangeEvent represents a batch of dataset file changes
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches the input dataset file for changes
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string // cleaned path of the dataset file
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for a single dataset file
func NewFileWatcher(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		target:  filepath.Clean(path),
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	// Watch the containing directory rather than the file itself; most
	// editors replace the file on save, which would drop an inode watch.
	dir := filepath.Dir(fw.target)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("started watching dataset", "path", fw.target)

	go fw.processEvents(ctx)

	return nil
}

// Events returns the channel of raw change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Close stops the watcher and releases its resources
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(fw.events)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				close(fw.events)
				return
			}
			if filepath.Clean(event.Name) != fw.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug("dataset changed", "op", event.Op.String())
			fw.events <- ChangeEvent{
				Paths:     []string{event.Name},
				Timestamp: time.Now(),
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				close(fw.events)
				return
			}
			logging.Warn("watch error", "error", err)
		}
	}
}
