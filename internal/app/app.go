package app

import (
	"context"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"reportdesigner/internal/service"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx        context.Context
	configPath string
	core       *core
	designer   *service.DesignerService
}

// New creates a new App that reads its settings from configPath.
func New(configPath string) *App {
	return &App{configPath: configPath}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	c, err := startCore(ctx, a.configPath, os.Stderr, a)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to start designer: %v", err)
		return
	}
	a.core = c
	a.ctx = c.ctx
	a.designer = c.designer
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.core != nil {
		a.core.Close()
	}
}

// Emit forwards service events to the webview.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}
