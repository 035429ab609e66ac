package main

import (
	"os/exec"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/config"
	"github.com/gorewood/commitgate/internal/gate"
	"github.com/gorewood/commitgate/internal/git"
	"github.com/gorewood/commitgate/internal/output"
	"github.com/gorewood/commitgate/internal/setup"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by section.
type doctorResult struct {
	Version string        `json:"version"`
	Core    []checkResult `json:"core"`
	Tools   []checkResult `json:"tools"`
	Hooks   []checkResult `json:"hooks"`
	Summary doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

func newDoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that git and every checker tool are available",
		Long: `Check commitgate installation health.

Runs checks in three sections:
  CORE   - git, repository, and configuration
  TOOLS  - whether each configured checker binary is on PATH
  HOOKS  - whether the pre-commit hook is installed

A missing tool is a warning, or a failure when strict_tools is enabled,
mirroring how the gate treats it.

Examples:
  commitgate doctor          # Run all checks
  commitgate doctor --quiet  # Only show failures and warnings
  commitgate doctor --json   # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only show failures and warnings")
	return cmd
}

func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := newPrinter(cmd)

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result := gatherDoctorChecks(cmd)
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, quiet)
	return nil
}

func gatherDoctorChecks(cmd *cobra.Command) *doctorResult {
	result := &doctorResult{Version: version}

	root, rootErr := git.RepoRoot()
	result.Core = append(result.Core, checkGit(), checkRepo(root, rootErr))

	cfg, cfgErr := loadConfig(cmd, root)
	result.Core = append(result.Core, checkConfig(cfg, cfgErr))
	if cfgErr == nil {
		result.Tools = checkTools(cfg)
	}
	result.Hooks = append(result.Hooks, checkHook())

	for _, check := range slices.Concat(result.Core, result.Tools, result.Hooks) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

func checkGit() checkResult {
	path, err := lookPath("git")
	if err != nil {
		return checkResult{Name: "git", Status: checkFail, Message: "not found in PATH", Hint: "Install git"}
	}
	return checkResult{Name: "git", Status: checkPass, Message: path}
}

func checkRepo(root string, err error) checkResult {
	if err != nil {
		return checkResult{Name: "Repository", Status: checkFail, Message: err.Error()}
	}
	return checkResult{Name: "Repository", Status: checkPass, Message: root}
}

func checkConfig(cfg *config.Config, err error) checkResult {
	if err != nil {
		return checkResult{
			Name:    "Configuration",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the file or pass --config",
		}
	}
	return checkResult{Name: "Configuration", Status: checkPass, Message: describeSource(cfg)}
}

// checkTools reports each distinct checker executable once, in the order
// the gate would first run it.
func checkTools(cfg *config.Config) []checkResult {
	missing := checkWarn
	if cfg.StrictTools {
		missing = checkFail
	}

	var specs []gate.CheckerSpec
	for _, category := range cfg.Categories {
		specs = append(specs, category.Checkers...)
	}
	if cfg.Tests != nil {
		specs = append(specs, *cfg.Tests)
	}

	seen := make(map[string]bool)
	var results []checkResult
	for _, spec := range specs {
		tool := spec.Tool()
		if seen[tool] {
			continue
		}
		seen[tool] = true

		path, err := lookPath(tool)
		if err != nil {
			results = append(results, checkResult{
				Name:    tool,
				Status:  missing,
				Message: "not found (used by " + spec.Name + ")",
				Hint:    "Install " + tool + " or remove the checker from the config",
			})
			continue
		}
		results = append(results, checkResult{Name: tool, Status: checkPass, Message: path})
	}
	return results
}

func checkHook() checkResult {
	path, err := setup.PreCommitPath()
	if err != nil {
		return checkResult{Name: "pre-commit", Status: checkWarn, Message: err.Error()}
	}

	status := setup.CheckHookStatus(path)
	switch {
	case status.Installed:
		msg := "installed"
		if status.Chained {
			msg += " (chained)"
		}
		return checkResult{Name: "pre-commit", Status: checkPass, Message: msg}
	case status.Foreign:
		return checkResult{
			Name:    "pre-commit",
			Status:  checkWarn,
			Message: "another hook is installed",
			Hint:    "Run 'commitgate hooks install --chain'",
		}
	default:
		return checkResult{
			Name:    "pre-commit",
			Status:  checkWarn,
			Message: "not installed",
			Hint:    "Run 'commitgate hooks install'",
		}
	}
}

func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("commitgate doctor %s\n", result.Version)

	printCheckSection(printer, "CORE", result.Core, quiet)
	printCheckSection(printer, "TOOLS", result.Tools, quiet)
	printCheckSection(printer, "HOOKS", result.Hooks, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet && !slices.ContainsFunc(checks, func(c checkResult) bool { return c.Status != checkPass }) {
		return
	}

	printer.Println()
	printer.Println(title)
	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, printer.Dim(check.Message))
		if check.Hint != "" {
			printer.Print("      -> %s\n", check.Hint)
		}
	}
}

func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
