package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the store when its file is edited outside the process, so
// the owner can fix a price or restock by editing the JSON directly without a
// restart. Watches the containing directory: editors replace files by rename,
// which drops a watch placed on the file itself.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

// NewWatcher creates a watcher for the store's file. Call Start to begin.
func NewWatcher(store *Store, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{store: store, watcher: fw, log: log}, nil
}

// Start watches until ctx is cancelled. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.log.Info("watching catalog file", zap.String("path", w.store.Path()))
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.watcher.Close()
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire bursts of events per save. Reload on each one:
			// Reload keeps the current catalog when it catches the file
			// mid-write, and the last event settles on the final content.
			w.store.Reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watch error", zap.Error(err))
		}
	}
}
