package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"go.jacobcolvin.com/defaultargs/defaultargs"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

// watchFiles re-annotates manifests when they change, until ctx is done.
// Parent directories are watched so that files replaced by rename are
// still seen.
func (a *app) watchFiles(ctx context.Context, ann *defaultargs.Annotator, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	defer watcher.Close()

	watched, err := watchSet(paths)
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)

	for abs := range watched {
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		err := watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		dirs[dir] = true
	}

	a.logger.InfoContext(ctx, "watching manifests", slog.Int("count", len(watched)))

	pending := make(map[string]bool)

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			path, ok := watchedPath(ev, watched)
			if !ok {
				continue
			}

			pending[path] = true
			fire = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			a.logger.WarnContext(ctx, "watch", slog.Any("error", err))

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}

			clear(pending)
			slices.Sort(changed)

			err := a.runFiles(ctx, ann, changed)
			if err != nil {
				a.logger.ErrorContext(ctx, "annotate", slog.Any("error", err))
			}
		}
	}
}

// watchSet maps absolute manifest paths to the paths given by the user.
func watchSet(paths []string) (map[string]string, error) {
	watched := make(map[string]string, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}

		watched[abs] = p
	}

	return watched, nil
}

// watchedPath returns the user-given path for events that may have changed
// a watched manifest's content.
func watchedPath(ev fsnotify.Event, watched map[string]string) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}

	path, ok := watched[abs]

	return path, ok
}
