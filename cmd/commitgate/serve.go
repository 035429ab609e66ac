package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	gatemcp "github.com/gorewood/commitgate/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run commitgate as a Model Context Protocol (MCP) server over stdio.

An agent can run the gate before committing and read every failure with
the tool output behind it.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "commitgate": {
        "command": "commitgate",
        "args": ["serve"]
      }
    }
  }

Available tools: check, changes, categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadGate(cmd)
			if err != nil {
				return err
			}
			server := gatemcp.NewServer(buildVersion(), loaded.cfg, loaded.runner)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
