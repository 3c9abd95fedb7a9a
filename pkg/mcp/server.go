// Package mcp provides an MCP server exposing the page layout comparison
// as a tool, so AI assistants can run org-to-org layout audits directly.
package mcp

import (
	"context"
	"log/slog"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.orgdiff.io/orgdiff/pkg/service/compare"
	"go.uber.org/zap"
)

// Server is the orgdiff MCP server.
type Server struct {
	server   *sdkmcp.Server
	comparer compare.Service
	logger   *zap.Logger
}

// ServerOptions contains configuration options for the MCP server.
type ServerOptions struct {
	// Logger is the zap logger for logging.
	Logger *zap.Logger
	// Comparer runs layout comparisons.
	Comparer compare.Service
}

// NewServer creates a new orgdiff MCP server.
func NewServer(opts *ServerOptions) *Server {
	if opts == nil {
		opts = &ServerOptions{}
	}

	s := &Server{
		comparer: opts.Comparer,
		logger:   opts.Logger,
	}

	if s.logger == nil {
		zapCfg := zap.NewProductionConfig()
		zapCfg.OutputPaths = []string{"stderr"}
		logger, _ := zapCfg.Build()
		s.logger = logger
	}

	return s
}

// Run starts the MCP server and blocks until the context is cancelled or
// an error occurs.
func (s *Server) Run(ctx context.Context) error {
	slogHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slogLogger := slog.New(slogHandler)

	s.server = sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "orgdiff",
		Version: "v1.0.0",
	}, &sdkmcp.ServerOptions{
		Logger:       slogLogger,
		Instructions: "Orgdiff MCP server for comparing Salesforce page layouts between orgs. Use compare_page_layouts to retrieve the layout metadata from a source and a target org and produce a field/section/related-list diff report as CSV.",
	})

	s.registerTools()

	s.logger.Info("Starting orgdiff MCP server on stdio transport")

	return s.server.Run(ctx, &sdkmcp.StdioTransport{})
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "compare_page_layouts",
		Description: "Compare Salesforce page layouts between two orgs and produce a CSV diff report. Retrieves the full layout XML from source and target orgs via the Metadata API (one batched call per org), then compares sections, fields, and related lists, one CSV row per layout.",
	}, s.handleCompareLayouts)

	s.logger.Info("Registered MCP tools",
		zap.Strings("tools", []string{"compare_page_layouts"}),
	)
}
