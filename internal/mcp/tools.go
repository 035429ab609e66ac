package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/commitgate/internal/config"
	"github.com/gorewood/commitgate/internal/gate"
)

// --- Check tool ---

// CheckInput is the input for the check tool (no parameters needed).
type CheckInput struct{}

// FailureDetail is a gate failure together with the tool output behind it.
type FailureDetail struct {
	Category    string `json:"category"              jsonschema:"category the checker belongs to, or tests"`
	Check       string `json:"check"                 jsonschema:"checker name"`
	File        string `json:"file,omitempty"        jsonschema:"offending file, empty for the test step"`
	Fragment    string `json:"fragment"              jsonschema:"output lines that triggered the failure"`
	Diagnostics string `json:"diagnostics,omitempty" jsonschema:"full output of the failing tool"`
}

// CheckOutput is the output for the check tool.
type CheckOutput struct {
	Passed   bool            `json:"passed"             jsonschema:"true when the commit would be accepted"`
	ExitCode int             `json:"exit_code"          jsonschema:"exit status the pre-commit hook would return"`
	Notice   string          `json:"notice,omitempty"   jsonschema:"success notice, empty on rejection"`
	Baseline gate.Baseline   `json:"baseline"           jsonschema:"reference the staged changes were computed against"`
	Files    []string        `json:"files"              jsonschema:"staged files considered"`
	Checked  int             `json:"checked"            jsonschema:"number of checker invocations"`
	Failures []FailureDetail `json:"failures"           jsonschema:"detected problems in detection order"`
	Warnings []gate.Warning  `json:"warnings,omitempty" jsonschema:"checkers that could not run"`
}

// collector keeps failure diagnostics for the check tool's output.
type collector struct {
	diagnostics []string
}

func (c *collector) Failed(_ gate.Failure, diagnostics string) {
	c.diagnostics = append(c.diagnostics, diagnostics)
}

func (c *collector) ToolWarning(gate.Warning) {}

func handleCheck(runner *gate.Runner) mcp.ToolHandlerFor[CheckInput, CheckOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
		seen := &collector{}
		report, err := runner.With(gate.WithReporter(seen)).Run(ctx)
		if err != nil {
			return nil, CheckOutput{}, fmt.Errorf("running gate: %w", err)
		}

		decision := gate.Decide(report)
		out := CheckOutput{
			Passed:   report.Passed(),
			ExitCode: decision.ExitCode,
			Notice:   decision.Notice,
			Baseline: report.Baseline,
			Files:    nonNil(report.Files),
			Checked:  report.Checked,
			Failures: make([]FailureDetail, 0, len(report.Failures)),
			Warnings: report.Warnings,
		}
		for i, failure := range report.Failures {
			detail := FailureDetail{
				Category: failure.Category,
				Check:    failure.Check,
				File:     failure.File,
				Fragment: failure.Fragment,
			}
			if i < len(seen.diagnostics) {
				detail.Diagnostics = seen.diagnostics[i]
			}
			out.Failures = append(out.Failures, detail)
		}
		return nil, out, nil
	}
}

// --- Changes tool ---

// ChangesInput is the input for the changes tool (no parameters needed).
type ChangesInput struct{}

// ChangesOutput is the output for the changes tool.
type ChangesOutput struct {
	Baseline gate.Baseline `json:"baseline" jsonschema:"HEAD, or the empty tree before the first commit"`
	Files    []string      `json:"files"    jsonschema:"staged files the gate would check"`
	Count    int           `json:"count"    jsonschema:"number of staged files"`
}

func handleChanges(runner *gate.Runner) mcp.ToolHandlerFor[ChangesInput, ChangesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ChangesInput) (*mcp.CallToolResult, ChangesOutput, error) {
		baseline := runner.ResolveBaseline(ctx)
		files, err := runner.ChangedFiles(ctx, baseline)
		if err != nil {
			return nil, ChangesOutput{}, fmt.Errorf("listing staged changes: %w", err)
		}
		return nil, ChangesOutput{Baseline: baseline, Files: nonNil(files), Count: len(files)}, nil
	}
}

// --- Categories tool ---

// CategoriesInput is the input for the categories tool (no parameters needed).
type CategoriesInput struct{}

// CategoriesOutput is the output for the categories tool.
type CategoriesOutput struct {
	Source      string              `json:"source,omitempty" jsonschema:"config file in effect, empty for built-in defaults"`
	Categories  []gate.CategorySpec `json:"categories"       jsonschema:"categories in validation order"`
	Tests       *gate.CheckerSpec   `json:"tests,omitempty"  jsonschema:"project-wide test step"`
	StrictTools bool                `json:"strict_tools"     jsonschema:"whether a checker that cannot run fails the gate"`
	Timeout     string              `json:"timeout,omitempty" jsonschema:"per-invocation timeout"`
}

func handleCategories(cfg *config.Config) mcp.ToolHandlerFor[CategoriesInput, CategoriesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ CategoriesInput) (*mcp.CallToolResult, CategoriesOutput, error) {
		out := CategoriesOutput{
			Source:      cfg.Source,
			Categories:  cfg.Categories,
			Tests:       cfg.Tests,
			StrictTools: cfg.StrictTools,
		}
		if cfg.Timeout > 0 {
			out.Timeout = cfg.Timeout.String()
		}
		return nil, out, nil
	}
}

func nonNil(files []string) []string {
	if files == nil {
		return []string{}
	}
	return files
}
