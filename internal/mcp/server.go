// Package mcp exposes vitals question answering to agents over the Model
// Context Protocol.
package mcp

import (
	"context"

	"github.com/alexanderramin/vitals/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server around the ask and days services.
type Server struct {
	mcpServer *mcp.Server
	ask       service.AskService
	days      service.DaysService
}

// NewServer registers the vitals tools and resources. days may be nil, in
// which case list_days is not offered.
func NewServer(ask service.AskService, days service.DaysService, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: "vitals", Version: version}, nil),
		ask:       ask,
		days:      days,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Serve runs the server on stdio until ctx is cancelled or the client leaves.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
