// Package mcp provides a Model Context Protocol server for commitgate.
// It lets an MCP-capable agent run the gate and inspect staged changes
// before it attempts a commit.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/commitgate/internal/config"
	"github.com/gorewood/commitgate/internal/gate"
)

// NewServer creates an MCP server with all commitgate tools registered.
// cfg describes the configuration runner was built from.
func NewServer(version string, cfg *config.Config, runner *gate.Runner) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "commitgate",
		Version: version,
	}, nil)
	registerTools(server, cfg, runner)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that only inspect the repository.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// checkAnnotations describes the check tool. It never touches the index, but
// the test suite it runs may write caches or fixtures.
func checkAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    false,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, cfg *config.Config, runner *gate.Runner) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Run the pre-commit gate against the staged changes. Returns whether the commit would be accepted, every failure with the offending tool output, and checkers that could not run.",
		Annotations: checkAnnotations(),
	}, handleCheck(runner))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "changes",
		Description: "List the staged added, copied, modified, and renamed files the gate would check, and the baseline they are compared against.",
		Annotations: readOnlyAnnotations(),
	}, handleChanges(runner))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "categories",
		Description: "Show the effective gate configuration: file categories, their suffixes and checker commands, and the test step.",
		Annotations: readOnlyAnnotations(),
	}, handleCategories(cfg))
}
