package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/db"
)

// Pinger reports whether the history database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server wraps the MCP server with the document conversion tools
type Server struct {
	mcpServer *server.MCPServer
	service   *convert.Service
	history   db.ConversionStore
	database  Pinger
}

// NewServer creates a new MCP server. history and database may be nil,
// in which case the history tools are not offered.
func NewServer(service *convert.Service, history db.ConversionStore, database Pinger, version string) *Server {
	s := &Server{
		service:  service,
		history:  history,
		database: database,
	}

	s.mcpServer = server.NewMCPServer(
		"sdfwot",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Converts IoT device models between OneDM SDF and W3C WoT Thing Models or Thing Descriptions. "+
			"Pass documents as JSON text."),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
