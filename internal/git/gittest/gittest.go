// Package gittest creates throwaway git repositories for tests.
package gittest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Repo is a temporary repository that the test process has chdir'd into.
type Repo struct {
	t   *testing.T
	Dir string
}

// New initializes an empty repository in a temp dir and changes into it.
// Skips the test when git is not installed.
func New(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	t.Chdir(dir)

	repo := &Repo{t: t, Dir: dir}
	repo.Git("init", "--quiet")
	repo.Git("config", "user.email", "gate@example.com")
	repo.Git("config", "user.name", "Gate Test")
	repo.Git("config", "commit.gpgsign", "false")
	return repo
}

// Git runs a git command in the repository and returns trimmed stdout.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// Write creates or replaces a file relative to the repository root.
func (r *Repo) Write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.Dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		r.t.Fatalf("write %s: %v", path, err)
	}
}

// Stage writes files and adds them to the index.
func (r *Repo) Stage(files map[string]string) {
	r.t.Helper()
	for path, content := range files {
		r.Write(path, content)
		r.Git("add", "--", path)
	}
}

// Commit records the index as a new commit.
func (r *Repo) Commit(message string) {
	r.t.Helper()
	r.Git("commit", "--quiet", "--allow-empty", "-m", message)
}
