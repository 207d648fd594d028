package commands

import (
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/nextroutes/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [workdir]",
	Short: "Serve route tables over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout so agents can
list routes, dump route trees and render the generated declarations.

Tools:
  list_routes          List leaf routes of both routers
  route_tree           Dump one router's route tree
  render_declarations  Render routes.d.ts or routes.ts without writing it

Example configuration:
  {"mcpServers": {"nextroutes": {"command": "nextroutes", "args": ["mcp"]}}}`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	s := mcp.NewServer(projectDir(args))
	s.SetLogger(newLogger())
	if err := s.ServeStdio(); err != nil {
		fail("MCP server stopped", err)
	}
}
