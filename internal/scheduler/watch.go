package scheduler

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/logger"
)

// watchDebounce lets editors finish writing before the file is read.
const watchDebounce = 250 * time.Millisecond

// Watch reloads the roster shortly after its file changes. It returns once
// the watcher is running; the watcher lives until Stop or ctx ends.
func (rr *RosterReloader) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create roster watcher")
	}
	path := rr.loader.Path()
	if err := w.Add(path); err != nil {
		w.Close()
		return errors.Wrapf(err, "watch %s", path)
	}
	rr.logger.Info("watching roster file", logger.String("file", path))

	go func() {
		defer w.Close()
		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			<-debounce.C
		}
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					// Atomic saves replace the file; follow the new one.
					if err := w.Add(ev.Name); err != nil {
						rr.logger.Debug("watch re-add failed", logger.String("file", ev.Name), logger.Error(err))
					}
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					if !debounce.Stop() {
						select {
						case <-debounce.C:
						default:
						}
					}
					debounce.Reset(watchDebounce)
				}
			case <-debounce.C:
				rr.reloadAndLog(ctx, "file changed")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				rr.logger.Error("roster watch error", logger.Error(err))
			case <-rr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
