// Package watcher re-runs verification when the config or sources change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounce collapses editor write bursts into one re-run.
const debounce = 300 * time.Millisecond

// skipDirs mirrors the scanner's traversal: changes inside dependency and
// VCS directories never affect verification, so they are not watched.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	"bin":          true,
	"testdata":     true,
}

// Watch observes the given paths and invokes onChange after every write,
// create, rename or remove event, until ctx is cancelled. Directory paths
// are watched recursively (fsnotify itself is not), and directories created
// during the session are picked up. onChange errors are logged and watching
// continues; transient errors must not end a watch session.
func Watch(ctx context.Context, paths []string, onChange func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		if err := addRecursive(w, p); err != nil {
			return err
		}
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Debugf("change detected: %s", event.Name)

			// New subdirectories must be watched too or edits inside
			// them go unseen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, event.Name); err != nil {
						log.WithError(err).Warnf("watching new directory %s", event.Name)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			// A rename-replace (editors save via temp file + rename)
			// silently drops the watch on a root file; re-arm before
			// re-running so the next save is still seen.
			for _, p := range paths {
				if err := w.Add(p); err != nil {
					log.WithError(err).Debugf("re-adding watch on %s", p)
				}
			}
			if err := onChange(); err != nil {
				log.WithError(err).Warn("re-verification failed")
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// addRecursive watches path and, if it is a directory, every subdirectory
// under it except the skipped ones.
func addRecursive(w *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(path)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			log.WithError(err).Warnf("skipping %s", p)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
