package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"reportdesigner/internal/logging"
	"reportdesigner/internal/service"
)

// Server is the MCP server for the report designer.
// It exposes tools, resources, and prompts so AI agents can build report
// layouts through the same undoable edits the canvas uses.
type Server struct {
	mcp      *server.MCPServer
	designer *service.DesignerService
	ctx      context.Context

	// Active report context (set by create_report / set_active_report)
	mu             sync.Mutex
	activeReportID string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Designer *service.DesignerService
	Name     string
	Version  string
}

// New creates and configures a new MCP server with all tools and resources.
// ctx carries the logger used by handlers.
func New(ctx context.Context, deps Deps) *Server {
	s := &Server{
		designer: deps.Designer,
		ctx:      ctx,
	}

	name, version := deps.Name, deps.Version
	if name == "" {
		name = "report-designer-mcp"
	}
	if version == "" {
		version = "1.0.0"
	}

	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerReportTools()
	s.registerLayoutTools()
	s.registerHistoryTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	logging.FromContext(s.ctx).Info("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveReportID returns the reportId from tool args or falls back to the
// active report.
func (s *Server) resolveReportID(args map[string]any) (string, error) {
	if id, ok := args["reportId"].(string); ok && id != "" {
		return id, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeReportID != "" {
		return s.activeReportID, nil
	}
	return "", fmt.Errorf("no reportId provided and no active report set (use create_report or set_active_report first)")
}

func (s *Server) setActive(reportID string) {
	s.mu.Lock()
	s.activeReportID = reportID
	s.mu.Unlock()
}

func (s *Server) active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeReportID
}

// handlerCtx attaches the server's logger to a request context.
func (s *Server) handlerCtx(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, logging.FromContext(s.ctx))
}
