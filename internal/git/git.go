// Package git provides Git operations via exec for the commitgate CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gorewood/commitgate/internal/output"
)

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo checks if the current directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the current git repository.
// Returns an error if not in a git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// HooksDir returns the absolute path of the directory git runs hooks from.
// It honors core.hooksPath and linked worktrees.
func HooksDir() (string, error) {
	dir, err := Run("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to locate hooks directory", err)
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to resolve hooks directory", err)
	}
	return abs, nil
}
