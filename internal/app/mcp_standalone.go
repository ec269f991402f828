package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "reportdesigner/internal/mcp"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the designer as a standalone MCP server on stdin/stdout with
// no GUI. Logs go to stderr since stdout carries the protocol.
func ServeMCP(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := startCore(ctx, configPath, os.Stderr, noopEmitter{})
	if err != nil {
		return err
	}
	defer c.Close()

	cfg := c.config()
	srv := mcpserver.New(c.ctx, mcpserver.Deps{
		Designer: c.designer,
		Name:     cfg.MCP.Name,
		Version:  cfg.MCP.Version,
	})

	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
