package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNothingToWatch is returned by Watch when no configured path is a
// directory.
var ErrNothingToWatch = errors.New("no directory to watch")

// watchDebounce is how long Watch waits after the last event before it
// checks the files that changed.
var watchDebounce = 250 * time.Millisecond

// Watch checks files created or written below the configured directories
// until ctx is canceled. Events are debounced so a file being copied is
// checked once. Results are reported like a batch and added to stats.
func (r *Runner) Watch(ctx context.Context, stats *RunStats) error {
	var roots []string
	for _, p := range r.cfg.Paths {
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			roots = append(roots, p)
		}
	}
	if len(roots) == 0 {
		return ErrNothingToWatch
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range roots {
		if err := r.addTree(w, root, root); err != nil {
			return err
		}
	}
	r.log.Info("Watching %s for new files (Ctrl+C to stop)", strings.Join(roots, ", "))

	pending := map[string]struct{}{}
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			root := rootOf(roots, ev.Name)
			if root == "" || skip(root, ev.Name, r.cfg.Excludes) {
				continue
			}
			fi, err := os.Stat(ev.Name)
			if err != nil {
				continue
			}
			if fi.IsDir() {
				// Files may land in a new directory before it is watched.
				if err := r.addTree(w, root, ev.Name); err != nil {
					r.log.Warn("Cannot watch %s: %v", ev.Name, err)
				}
				found, _ := walk(ev.Name, r.cfg.Excludes)
				for _, f := range found {
					pending[f] = struct{}{}
				}
			} else {
				pending[ev.Name] = struct{}{}
			}
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("Watch error: %v", err)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			sort.Strings(files)

			st, err := r.CheckFiles(ctx, files)
			stats.Add(st)
			if err != nil {
				return nil
			}
		}
	}
}

// addTree watches dir and every directory below it that is neither hidden
// nor excluded relative to root.
func (r *Runner) addTree(w *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skip(root, path, r.cfg.Excludes) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// rootOf returns the watched root that contains path.
func rootOf(roots []string, path string) string {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return root
		}
	}
	return ""
}
