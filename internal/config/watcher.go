package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"reportdesigner/internal/logging"
)

// ChangeHandler receives a freshly loaded, validated config.
type ChangeHandler func(cfg *Config)

// Watcher reloads the config file whenever it is written.
// An edit that fails to load is logged and the previous config stays.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange ChangeHandler
	ctx      context.Context
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching path. ctx supplies the logger.
func Watch(ctx context.Context, path string, onChange ChangeHandler) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of
	// writing it in place, which drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		path:     absPath,
		watcher:  fw,
		onChange: onChange,
		ctx:      ctx,
		done:     make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	logger := logging.FromContext(w.ctx)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if absPath, _ := filepath.Abs(event.Name); absPath != w.path {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				logger.Warn("config reload rejected", "path", w.path, "err", err)
				continue
			}
			logger.Info("config reloaded", "path", w.path)
			if w.onChange != nil {
				w.onChange(cfg)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher error", "err", err)
		}
	}
}
