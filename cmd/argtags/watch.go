package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aledsdavies/argtags/internal/logger"
	"github.com/aledsdavies/argtags/pkgs/invariant"
)

// debounceDelay collapses the burst of events an editor save produces.
const debounceDelay = 100 * time.Millisecond

// fileWatcher reports writes to a single file. The parent directory is
// watched so that editors which replace the file by rename are seen too.
type fileWatcher struct {
	target  string
	watcher *fsnotify.Watcher
}

func newFileWatcher(path string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &fileWatcher{target: filepath.Clean(path), watcher: watcher}, nil
}

// run calls onChange once per settled burst of writes until ctx is done.
// It closes the watcher before returning.
func (w *fileWatcher) run(ctx context.Context, onChange func()) error {
	invariant.ContextNotBackground(ctx, "fileWatcher.run")
	defer func() { _ = w.watcher.Close() }()

	timer := time.NewTimer(debounceDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("file event", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounceDelay)

		case <-timer.C:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}
