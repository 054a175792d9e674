// Package server assembles the analytics Capability Host: an MCP
// server whose fixed catalog of tools, resources, and prompt templates
// is registered at startup and immutable thereafter. The protocol
// machinery (session, JSON-RPC framing, stdio transport) comes entirely
// from the official MCP SDK; this package only binds the catalog in
// internal/analytics to it.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/buildinfo"
)

// Name is the implementation name advertised during the MCP handshake.
const Name = "datacorp-analytics"

// Server is the Capability Host.
type Server struct {
	logger *slog.Logger
	mcp    *mcp.Server
}

// New creates a Server with the full catalog registered.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		logger: logger.With("component", "server"),
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: buildinfo.Version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	s.logger.Info("capability host initialized", "name", Name, "version", buildinfo.Version)
	return s
}

// Run serves the catalog over stdin/stdout until the client disconnects
// or ctx is cancelled. Log output goes to the logger, never stdout:
// stdout is the transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting capability host on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the host to an arbitrary transport. Used by tests to
// wire host and client in-process over in-memory pipes.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
