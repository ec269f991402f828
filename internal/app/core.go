package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"reportdesigner/internal/config"
	"reportdesigner/internal/logging"
	"reportdesigner/internal/service"
)

// core is the part of the app shared by the desktop window and the
// standalone MCP server: config, logger, designer service, idle reaper and
// config watcher.
type core struct {
	ctx      context.Context
	path     string
	logger   *log.Logger
	designer *service.DesignerService
	watcher  *config.Watcher

	mu     sync.Mutex
	cfg    *config.Config
	reaper *service.IdleReaper
}

// startCore loads configPath and starts the background jobs. The returned
// core's ctx carries the logger.
func startCore(ctx context.Context, configPath string, logOut io.Writer, emitter service.EventEmitter) (*core, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(logOut, level)
	ctx = logging.WithLogger(ctx, logger)

	c := &core{
		ctx:      ctx,
		path:     configPath,
		logger:   logger,
		cfg:      cfg,
		designer: service.NewDesignerService(emitter, cfg.History.MaxEntries),
	}

	if err := c.startReaper(cfg); err != nil {
		return nil, err
	}

	if configPath != "" {
		w, err := config.Watch(ctx, configPath, c.applyConfig)
		if err != nil {
			// no config directory yet; run on the loaded settings
			logger.Warn("config hot reload disabled", "path", configPath, "err", err)
		} else {
			c.watcher = w
		}
	}

	logger.Info("designer ready", "config", configPath, "maxHistory", cfg.History.MaxEntries)
	return c, nil
}

// startReaper replaces the running reaper with one built from cfg.
// Must be called with c.mu held or before c is shared.
func (c *core) startReaper(cfg *config.Config) error {
	if c.reaper != nil {
		c.reaper.Stop()
		c.reaper = nil
	}
	if cfg.Sessions.ReapSchedule == "" || cfg.Sessions.IdleTTL <= 0 {
		return nil
	}
	r, err := service.NewIdleReaper(c.ctx, c.designer, cfg.Sessions.ReapSchedule, cfg.Sessions.IdleTTL)
	if err != nil {
		return err
	}
	r.Start()
	c.reaper = r
	return nil
}

// applyConfig is the watcher callback.
func (c *core) applyConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		c.logger.SetLevel(level)
	}
	c.designer.SetMaxHistory(cfg.History.MaxEntries)

	old := c.cfg.Sessions
	switch {
	case old.ReapSchedule != cfg.Sessions.ReapSchedule || (old.IdleTTL <= 0) != (cfg.Sessions.IdleTTL <= 0):
		if err := c.startReaper(cfg); err != nil {
			c.logger.Error("restart idle reaper", "err", err)
		}
	case c.reaper != nil:
		c.reaper.SetTTL(cfg.Sessions.IdleTTL)
	}
	c.cfg = cfg
}

// config returns the settings currently in effect.
func (c *core) config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Close stops the watcher and the reaper.
func (c *core) Close() {
	if c.watcher != nil {
		c.watcher.Close()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reaper != nil {
		c.reaper.Stop()
		c.reaper = nil
	}
}
