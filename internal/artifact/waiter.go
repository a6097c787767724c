package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Waiter blocks until the release artifact appears, so publishing can be
// started before a slow build has finished writing the archive.
type Waiter struct {
	logger *slog.Logger
	Ready  chan struct{}

	readyOnce  sync.Once
	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWaiter creates a new Waiter.
func NewWaiter(logger *slog.Logger) *Waiter {
	return &Waiter{
		logger:     logger.With("component", "waiter"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// signalReady closes Ready exactly once, so Wait can be called repeatedly on
// the same Waiter.
func (w *Waiter) signalReady() {
	if w.Ready == nil {
		return
	}
	w.readyOnce.Do(func() { close(w.Ready) })
}

// Wait returns once a regular file exists at path, or fails when the timeout
// elapses or the context is cancelled. The parent directory must exist.
func (w *Waiter) Wait(ctx context.Context, path string, timeout time.Duration) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		w.signalReady()
		return nil
	}

	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s for the release asset: %w", dir, err)
	}

	w.logger.Info("Waiting for release asset", "path", path, "timeout", timeout)
	w.signalReady()

	// The asset may have landed between the initial stat miss and the watch
	// registration; events from before Add are never delivered, so look once
	// more before blocking.
	if info, sErr := os.Stat(path); sErr == nil && !info.IsDir() {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("timed out after %s waiting for release asset %s", timeout, path)
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed while waiting for %s", path)
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if info, sErr := os.Stat(path); sErr == nil && !info.IsDir() {
				w.logger.Info("Release asset appeared", "path", path)
				return nil
			}
		}
	}
}
