package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
Mission Control and write to its activity log.

Tools:
  search        Ranked search over notes, projects, tasks and activity
  log_activity  Append an activity log entry

Resources:
  mission-control://activity              Recent activity
  mission-control://board                 Board columns and projects
  mission-control://calendar/{weekOf}     Week of events ("current" for this week)

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead.

Examples:
  mission-control mcp serve
  mission-control mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Search:   searchService,
		Activity: activityService,
		Board:    boardService,
		Calendar: calendarService,
	}

	server, err := mcp.NewServer(ports, defaultSearchLimit())
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
