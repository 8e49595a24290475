// Package watcher reports changes to ticket files using fsnotify.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher for a ticket directory.
// Only ticket files (*.yaml, *.yml, not hidden) produce events.
type Watcher struct {
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates a watcher. No file system resources are held until Start.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// Start begins watching root. Events stop when ctx is done or Stop is called.
// Starting again replaces the previous watch; each Start gets a fresh event stream.
func (w *Watcher) Start(ctx context.Context, root string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	if err := fsWatcher.Add(root); err != nil {
		_ = fsWatcher.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "dir", root)
	}

	events := make(chan ports.WatchEvent, eventChannelBuffer)

	w.mu.Lock()
	previous := w.fsWatcher
	w.fsWatcher = fsWatcher
	w.events = events
	w.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}

	go w.processEvents(ctx, fsWatcher, events)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator over the events of the current watch. It ends once that
// watch stops, and is empty if the watcher was never started.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		w.mu.Lock()
		events := w.events
		w.mu.Unlock()
		if events == nil {
			return
		}

		for event := range events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher, events chan<- ports.WatchEvent) {
	defer close(events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			watchEvent, ok := convertEvent(event)
			if !ok || !isTicketFile(event.Name) {
				continue
			}
			select {
			case events <- watchEvent:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

// convertEvent maps an fsnotify event to a ports.WatchEvent. Chmod-only events are dropped.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}

// isTicketFile reports whether path names a ticket file rather than an editor temp file.
func isTicketFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
