// Package mcp exposes a project's route tables to agents over the Model
// Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdul-hamid-achik/nextroutes/internal/version"
)

// Server serves the nextroutes tools for one working directory.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a server whose tools resolve projects relative to workdir.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir: workdir,
		mcpServer: server.NewMCPServer(
			"nextroutes",
			version.GetVersion(),
			server.WithToolCapabilities(false),
		),
		logger: slog.New(slog.DiscardHandler),
	}
	s.registerTools()
	return s
}

// SetLogger sets the logger passed to route scans.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// ServeStdio serves MCP over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	projectArg := mcp.WithString("project",
		mcp.Description("Project directory, relative to the server's working directory (default: working directory)"),
	)

	s.mcpServer.AddTool(mcp.NewTool("list_routes",
		mcp.WithDescription("List the leaf routes of the pages and app routers with their URL paths and parameters"),
		projectArg,
		mcp.WithString("convention",
			mcp.Description("Only list routes of this router"),
			mcp.Enum("pages", "app"),
		),
	), s.handleListRoutes)

	s.mcpServer.AddTool(mcp.NewTool("route_tree",
		mcp.WithDescription("Return the full route tree of one router, including route groups and parallel slots"),
		projectArg,
		mcp.WithString("convention",
			mcp.Required(),
			mcp.Description("Router to dump"),
			mcp.Enum("pages", "app"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: json)"),
			mcp.Enum("json", "yaml"),
		),
	), s.handleRouteTree)

	s.mcpServer.AddTool(mcp.NewTool("render_declarations",
		mcp.WithDescription("Render the generated TypeScript route declarations without writing them to disk"),
		projectArg,
		mcp.WithString("artifact",
			mcp.Description("Which file to render (default: both)"),
			mcp.Enum("declarations", "constants", "both"),
		),
	), s.handleRenderDeclarations)
}
