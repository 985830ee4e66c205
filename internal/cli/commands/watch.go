package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the bursts of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// sourceWatcher reports changes to a fixed set of files. It watches their
// directories rather than the files so that editors which save by renaming a
// temporary file over the original are still seen.
type sourceWatcher struct {
	watcher *fsnotify.Watcher
	paths   []string          // as given, in order
	byAbs   map[string]string // absolute path -> path as given
}

func newSourceWatcher(paths []string) (*sourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &sourceWatcher{watcher: watcher, paths: paths, byAbs: make(map[string]string, len(paths))}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.byAbs[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run calls fn with the changed files, in the order they were given, once
// events have been quiet for watchDebounce. It returns when ctx is done.
func (w *sourceWatcher) Run(ctx context.Context, logger *slog.Logger, fn func(changed []string)) error {
	pending := make(map[string]bool)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path, ok := w.byAbs[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			var changed []string
			for _, p := range w.paths {
				if pending[p] {
					changed = append(changed, p)
				}
			}
			clear(pending)
			logger.Info("change detected", "files", changed)
			fn(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops watching.
func (w *sourceWatcher) Close() error {
	return w.watcher.Close()
}
