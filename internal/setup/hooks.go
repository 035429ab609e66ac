package setup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/commitgate/internal/git"
	"github.com/gorewood/commitgate/internal/output"
)

// Hook file names.
const (
	PreCommitHook = "pre-commit"
	BackupSuffix  = ".backup"
)

// hookCommand identifies a hook script written by commitgate.
const hookCommand = "commitgate run"

// HookStatus describes the pre-commit hook on disk.
type HookStatus struct {
	Installed bool `json:"installed"`
	Chained   bool `json:"chained"`
	// Foreign is set when a hook exists that commitgate did not write.
	Foreign bool `json:"foreign"`
}

// InstallOptions controls what happens to a hook that is already present.
type InstallOptions struct {
	// Chain backs up the existing hook and runs it before the gate.
	Chain bool
	// Force overwrites the existing hook without a backup.
	Force bool
}

// InstallResult reports what InstallHook did.
type InstallResult struct {
	Path        string `json:"path"`
	Chained     bool   `json:"chained"`
	Overwritten bool   `json:"overwritten"`
}

// PreCommitPath returns the pre-commit hook path for the current repository.
func PreCommitPath() (string, error) {
	dir, err := git.HooksDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PreCommitHook), nil
}

// HookExists checks if a hook file exists at the given path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckHookStatus inspects the hook at hookPath.
func CheckHookStatus(hookPath string) HookStatus {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return HookStatus{}
	}

	script := string(content)
	if !strings.Contains(script, hookCommand) {
		return HookStatus{Foreign: true}
	}
	return HookStatus{
		Installed: true,
		Chained:   strings.Contains(script, PreCommitHook+BackupSuffix),
	}
}

// GeneratePreCommitHook returns the hook script. The script exits non-zero,
// and so blocks the commit, when the gate rejects the staged changes. With
// chain set, the backed-up hook runs first and its failure also blocks.
func GeneratePreCommitHook(chain bool) string {
	var b strings.Builder
	b.WriteString(`#!/bin/sh
# commitgate pre-commit hook
# Rejects the commit when staged files fail their checks.
`)

	if chain {
		b.WriteString(`
backup="$(dirname "$0")/` + PreCommitHook + BackupSuffix + `"
if [ -x "$backup" ]; then
  "$backup" "$@" || exit $?
fi
`)
	}

	b.WriteString(`
if ! command -v commitgate >/dev/null 2>&1; then
  echo "commitgate: not found in PATH, skipping checks" >&2
  exit 0
fi
exec ` + hookCommand + `
`)
	return b.String()
}

// InstallHook writes the pre-commit hook at hookPath. A foreign hook is a
// conflict unless opts asks to chain or overwrite it. Reinstalling over a
// commitgate hook refreshes the script and keeps an existing backup chained.
func InstallHook(hookPath string, opts InstallOptions) (InstallResult, error) {
	result := InstallResult{Path: hookPath}
	status := CheckHookStatus(hookPath)

	switch {
	case status.Installed:
		result.Chained = status.Chained && HookExists(hookPath+BackupSuffix)
	case status.Foreign && opts.Force:
		result.Overwritten = true
	case status.Foreign && opts.Chain:
		if err := BackupExistingHook(hookPath); err != nil {
			return result, err
		}
		result.Chained = true
	case status.Foreign:
		return result, output.NewConflictError("hook already exists; use --chain to preserve or --force to overwrite")
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return result, output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}
	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(GeneratePreCommitHook(result.Chained)), 0o755); err != nil {
		return result, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return result, nil
}

// BackupExistingHook moves an existing hook to its backup location.
func BackupExistingHook(hookPath string) error {
	if err := os.Rename(hookPath, hookPath+BackupSuffix); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// UninstallHook removes a commitgate hook and restores the backup if one
// exists. Foreign hooks are left alone.
func UninstallHook(hookPath string) (removed, restored bool, err error) {
	if !CheckHookStatus(hookPath).Installed {
		return false, false, nil
	}
	if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
		return false, false, output.NewSystemErrorWithCause("failed to remove hook", err)
	}

	backupPath := hookPath + BackupSuffix
	if !HookExists(backupPath) {
		return true, false, nil
	}
	if err := os.Rename(backupPath, hookPath); err != nil {
		return true, false, output.NewSystemErrorWithCause("failed to restore backup hook", err)
	}
	return true, true, nil
}

// DescribeInstallAction returns what InstallHook would do given the
// current hook status.
func DescribeInstallAction(status HookStatus, opts InstallOptions) string {
	switch {
	case status.Installed:
		return "would refresh the commitgate hook"
	case !status.Foreign:
		return "would install"
	case opts.Force:
		return "would overwrite existing hook"
	case opts.Chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction returns what UninstallHook would do.
func DescribeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no commitgate hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
