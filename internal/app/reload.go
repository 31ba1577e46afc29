package app

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/imepad/internal/config"
	"github.com/dshills/imepad/internal/config/watcher"
)

// reloadDebounce coalesces the bursts of writes editors produce on save.
const reloadDebounce = 150 * time.Millisecond

// ConfigWatch delivers reloaded configurations while a config file changes.
type ConfigWatch struct {
	w       *watcher.Watcher
	reloads chan *config.Config
	cancel  context.CancelFunc
}

// WatchConfig watches path and sends a freshly loaded configuration on
// Reloads after every change. overlay, if non-nil, is applied to each
// loaded configuration so command-line settings keep precedence. Files that
// fail to load are logged and skipped.
func WatchConfig(ctx context.Context, path string, overlay func(*config.Config), logger *Logger) (*ConfigWatch, error) {
	if logger == nil {
		logger = NullLogger
	}
	log := logger.WithComponent("config").WithField("path", path)

	w, err := watcher.New(watcher.WithDebounce(reloadDebounce))
	if err != nil {
		return nil, NewOperationError("watch", path, err)
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, NewOperationError("watch", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cw := &ConfigWatch{
		w:       w,
		reloads: make(chan *config.Config, 1),
		cancel:  cancel,
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			log.Warn("config file %s; keeping current settings", ev.Op)
			return
		}

		cfg, err := config.Load(path)
		if err != nil {
			log.Warn("reload failed: %v", err)
			return
		}
		if overlay != nil {
			overlay(cfg)
		}

		log.Debug("config %s, reloading", ev.Op)
		select {
		case cw.reloads <- cfg:
		case <-ctx.Done():
		}
	})
	w.OnError(func(err error) {
		log.Error("watch error: %v", err)
	})
	w.Start()
	log.Debug("watching %s", strings.Join(w.WatchedFiles(), ", "))

	return cw, nil
}

// Reloads returns the channel of reloaded configurations.
func (cw *ConfigWatch) Reloads() <-chan *config.Config {
	return cw.reloads
}

// Close stops watching.
func (cw *ConfigWatch) Close() error {
	cw.cancel()
	return cw.w.Stop()
}
