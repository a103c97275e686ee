package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/protodoc/pkg/storage"
)

// schemaWatcher watches a schema directory tree and invokes onChange after a
// debounce window, so a bulk save triggers one rebuild instead of many.
type schemaWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *logrus.Logger
	onChange func()
}

func newSchemaWatcher(root string, debounce time.Duration, log *logrus.Logger, onChange func()) (*schemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &schemaWatcher{
		watcher:  watcher,
		debounce: debounce,
		log:      log,
		onChange: onChange,
	}
	if err := w.addRecursive(root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// addRecursive adds every directory under root to the watcher. fsnotify
// watches are per-directory, not recursive.
func (w *schemaWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *schemaWatcher) Close() error {
	return w.watcher.Close()
}

// Run processes events until the context is canceled.
func (w *schemaWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// New directories need their own watch before any files inside
			// them produce events.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.log.Warnf("Failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, storage.SchemaExtension) {
				continue
			}
			w.log.WithField("file", event.Name).Debug("Schema file changed")
			timer = resetDebounce(timer, w.debounce)
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Watcher error: %v", err)

		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()
		}
	}
}

// resetDebounce arms or re-arms the debounce timer. A fire already queued on
// the channel is drained before Reset, so the full window elapses after the
// latest event instead of the stale fire triggering immediately.
func resetDebounce(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
	return timer
}
