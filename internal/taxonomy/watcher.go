package taxonomy

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates a Cache whenever one of the watched taxonomy source
// files changes on disk.
type Watcher struct {
	fs     *fsnotify.Watcher
	cache  *Cache
	logger *zap.Logger
	done   chan struct{}
}

// NewWatcher starts watching the given paths. Empty paths are skipped.
func NewWatcher(cache *Cache, logger *zap.Logger, paths ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	watched := 0
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := fs.Add(path); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watching taxonomy source %q: %w", path, err)
		}
		watched++
	}

	w := &Watcher{fs: fs, cache: cache, logger: logger, done: make(chan struct{})}
	go w.loop()

	if logger != nil {
		logger.Debug("taxonomy watcher started", zap.Int("paths", watched))
	}

	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.logger != nil {
				w.logger.Info("taxonomy source changed, invalidating cache",
					zap.String("path", event.Name),
					zap.String("op", event.Op.String()),
				)
			}
			w.cache.Clear()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("taxonomy watcher error", zap.Error(err))
			}
		}
	}
}

// Close stops the watcher and waits for the event loop to drain.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
