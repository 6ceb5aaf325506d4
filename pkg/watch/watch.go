// Package watch reports changes to a single file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Options configures File.
type Options struct {
	Debounce time.Duration
	Logger   *logrus.Logger
}

// File calls onChange each time path is written, created or replaced, until
// ctx is cancelled. The parent directory is watched so that editors and
// tools which write a temp file and rename it over path are seen too. An
// error from onChange stops the watch and is returned. A missing parent
// directory yields an error matching fs.ErrNotExist.
func File(ctx context.Context, path string, onChange func() error, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	opts.Logger.WithField("dir", dir).Debug("Watching directory")

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

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Op.Has(relevantOps) {
				continue
			}
			opts.Logger.WithFields(logrus.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("File changed")
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.WithError(err).Warn("Watcher error")

		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}
