// ABOUTME: MCP server setup for the reps workout tracker.
// ABOUTME: Wraps the MCP server around the training service and its database.
package mcp

import (
	"context"

	"github.com/harperreed/reps/internal/storage"
	"github.com/harperreed/reps/internal/training"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the training service.
type Server struct {
	mcpServer *mcp.Server
	svc       *training.Service
	db        *storage.DB
}

// NewServer creates a new MCP server over svc. db serves read-only resources
// such as the Markdown rendering of a workout.
func NewServer(svc *training.Service, db *storage.DB) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "reps",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		db:        db,
	}

	s.registerTemplateTools()
	s.registerWorkoutTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
