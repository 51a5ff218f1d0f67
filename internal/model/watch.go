package model

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch signals on the returned channel whenever the file at path is
// created, written or renamed into place. The parent directory is watched so
// the file need not exist yet. The channel closes when ctx is done.
//
// Signals are coalesced: a burst of writes produces at least one signal but
// may produce only one.
func Watch(ctx context.Context, path string, logger *zap.Logger) (<-chan struct{}, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
					continue
				}
				logger.Debug("model artifact changed", zap.String("path", target), zap.String("op", ev.Op.String()))
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("model artifact watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}
