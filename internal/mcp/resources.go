package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	reportsURI        = "report://reports"
	layoutURIPrefix   = "report://"
	layoutURISuffix   = "/layout"
	layoutURITemplate = layoutURIPrefix + "{reportId}" + layoutURISuffix
)

func (s *Server) registerResources() {
	// ── report://reports ───────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		reportsURI,
		"Open Reports",
		mcp.WithMIMEType("application/json"),
	), s.handleReportsResource)

	// ── report://{reportId}/layout ─────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			layoutURITemplate,
			"Report Layout Tree",
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleLayoutResource,
	)
}

func (s *Server) handleReportsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.designer.ListReports(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      reportsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleLayoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	reportID := extractReportIDFromURI(uri)
	if reportID == "" {
		return nil, fmt.Errorf("could not extract reportId from URI: %s", uri)
	}

	state, err := s.designer.GetReportState(reportID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// extractReportIDFromURI extracts the id from "report://{id}/layout".
func extractReportIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, layoutURIPrefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, layoutURISuffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
