package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch re-reads the config file whenever it changes on disk and delivers the
// result to onChange. Reload failures are logged and skipped; the previous
// configuration stays in effect. Watch returns once the watcher is installed
// and stops when ctx is canceled.
func Watch(ctx context.Context, log *zap.Logger, onChange func(Config)) error {
	path, err := File()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace the file on save, which drops a
	// watch installed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path || !ev.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := Load()
				if err != nil {
					log.Warn("config reload failed, keeping previous", zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path))
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
