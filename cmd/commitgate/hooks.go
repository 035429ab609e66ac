package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/git"
	"github.com/gorewood/commitgate/internal/output"
	"github.com/gorewood/commitgate/internal/setup"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the commitgate pre-commit hook",
		Long: `Manage the git pre-commit hook that runs the gate.

The hook blocks the commit when the gate rejects the staged changes.

Subcommands:
  install    Install the pre-commit hook
  uninstall  Remove the pre-commit hook
  list       Show hook status

Examples:
  commitgate hooks list              # Show hook status
  commitgate hooks install           # Install pre-commit hook
  commitgate hooks install --chain   # Keep the existing hook, run it first
  commitgate hooks uninstall         # Remove hook, restore backup`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// resolveHookPath checks for a repository and returns its pre-commit path.
func resolveHookPath(printer *output.Printer) (string, error) {
	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return "", err
	}
	path, err := setup.PreCommitPath()
	if err != nil {
		printer.Error(err)
		return "", err
	}
	return path, nil
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of the pre-commit hook",
		Args:  cobra.NoArgs,
		RunE:  runHooksList,
	}
}

func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(printer)
	if err != nil {
		return err
	}
	status := setup.CheckHookStatus(hookPath)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"pre_commit": status,
			"path":       hookPath,
		})
	}

	statusStr := "not installed"
	switch {
	case status.Installed && status.Chained:
		statusStr = "installed (chained)"
	case status.Installed:
		statusStr = "installed"
	case status.Foreign:
		statusStr = "other hook present"
	}
	printer.Section("Git Hooks")
	printer.KeyValue(setup.PreCommitHook, statusStr)
	return nil
}

func newHooksInstallCmd() *cobra.Command {
	var opts setup.InstallOptions
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook",
		Long: `Install the commitgate pre-commit hook into the repository's hooks
directory (core.hooksPath is honored).

Use --chain to keep an existing hook; it runs first and its failure
also blocks the commit. Use --force to overwrite it without a backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, opts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&opts.Chain, "chain", false, "Preserve the existing hook and run it first")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite the existing hook without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	cmd.MarkFlagsMutuallyExclusive("chain", "force")

	return cmd
}

func runHooksInstall(cmd *cobra.Command, opts setup.InstallOptions, dryRun bool) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(printer)
	if err != nil {
		return err
	}

	if dryRun {
		status := setup.CheckHookStatus(hookPath)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":          "dry_run",
				"hook":            setup.PreCommitHook,
				"path":            hookPath,
				"exists":          status.Installed || status.Foreign,
				"would_chain":     opts.Chain && status.Foreign,
				"would_overwrite": opts.Force && status.Foreign,
			})
		}
		printDryRun(printer, hookPath, setup.DescribeInstallAction(status, opts))
		return nil
	}

	result, err := setup.InstallHook(hookPath, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":      "ok",
			"hook":        setup.PreCommitHook,
			"path":        result.Path,
			"chained":     result.Chained,
			"overwritten": result.Overwritten,
		})
	}

	msg := "Installed pre-commit hook"
	switch {
	case result.Chained:
		msg += " (existing hook backed up and chained)"
	case result.Overwritten:
		msg += " (existing hook overwritten)"
	}
	return printer.Success(map[string]any{"message": msg})
}

func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the pre-commit hook",
		Long:  `Remove the commitgate pre-commit hook and restore any backed-up hook.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	hookPath, err := resolveHookPath(printer)
	if err != nil {
		return err
	}

	if dryRun {
		installed := setup.CheckHookStatus(hookPath).Installed
		hasBackup := setup.HookExists(hookPath + setup.BackupSuffix)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":        "dry_run",
				"hook":          setup.PreCommitHook,
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": installed && hasBackup,
			})
		}
		printDryRun(printer, hookPath, setup.DescribeUninstallAction(installed, hasBackup))
		return nil
	}

	removed, restored, err := setup.UninstallHook(hookPath)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"hook":     setup.PreCommitHook,
			"removed":  removed,
			"restored": restored,
		})
	}

	msg := "No commitgate hook installed"
	if removed {
		msg = "Removed pre-commit hook"
		if restored {
			msg += " and restored original"
		}
	}
	return printer.Success(map[string]any{"message": msg})
}

func printDryRun(printer *output.Printer, hookPath, action string) {
	printer.Section("Dry Run")
	printer.KeyValue("Hook", setup.PreCommitHook)
	printer.KeyValue("Path", hookPath)
	printer.KeyValue("Action", action)
}
