// Package main provides the entry point for the commitgate CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against whether stdout is a terminal.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer every command writes through. Human-mode
// errors and warnings go to the command's stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Without a subcommand it runs the gate,
// so a hook can invoke plain "commitgate".
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commitgate",
		Short: "Pre-commit gate that rejects commits with lint or test problems",
		Long: `Commitgate validates staged files before a commit is recorded.

For every staged added, copied, modified, or renamed file it runs the
checkers of each matching category (PHP syntax and PSR2 style, PHP mess
detection, JSHint, CSSLint, SCSS-Lint by default), then runs the unit
tests once. Any detected problem rejects the commit with exit status 1.

Checkers are configured in .commitgate.yaml or .commitgate.toml at the
repository root.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runGateCmd,
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Colorize output: auto, always, never")
	cmd.PersistentFlags().String("config", "", "Path to a config file (default: discovered)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log checker invocations to stderr")
	cmd.PersistentFlags().Bool("strict-tools", false, "Fail the gate when a checker cannot run")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return validateColorFlag(cmd)
	}

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

func validateColorFlag(cmd *cobra.Command) error {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "auto", "always", "never":
		return nil
	}
	err := output.NewUserError(fmt.Sprintf("invalid --color %q: use auto, always, or never", mode))
	newPrinter(cmd).Error(err)
	return err
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "gate", Title: "Gate Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newRunCmd(), "gate")
	addGroupedCommand(cmd, newChangesCmd(), "gate")
	addGroupedCommand(cmd, newCategoriesCmd(), "gate")

	addGroupedCommand(cmd, newHooksCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
