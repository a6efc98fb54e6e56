// Package mcp exposes the todo store to LLM agents over the Model Context
// Protocol.
package mcp

import (
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ambrogio-dev/ambrogio/internal/todo"
)

const serverName = "ambrogio"

// Server wires the store into an MCP server.
type Server struct {
	store  *todo.Store
	mcp    *server.MCPServer
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source used for "now" focus sessions.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for tool call diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer registers every store tool on a new MCP server.
func NewServer(store *todo.Store, version string, opts ...Option) *Server {
	s := &Server{
		store:  store,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Debug("serving MCP on stdio", "todos", s.store.Path())
	return server.ServeStdio(s.mcp)
}
