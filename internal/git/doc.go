// Package git provides Git operations via exec for the commitgate CLI.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating failures to *output.ExitError
// values with ExitSystemError.
//
// # Change Detection
//
// The gate compares the index against a baseline:
//
//	ref := "HEAD"
//	if !git.HasCommit(ctx, ref) {
//	    ref = git.EmptyTreeSHA // first commit in a fresh repository
//	}
//	files, err := git.StagedFiles(ctx, ref) // added, copied, modified, renamed
//
// # Repository Layout
//
//	git.IsRepo()   // Check if current directory is a git repository
//	git.RepoRoot() // Root directory of the working tree
//	git.HooksDir() // Directory git runs hooks from (honors core.hooksPath)
//
// # Running Git Commands
//
// For anything else, use Run or RunContext:
//
//	out, err := git.RunContext(ctx, "rev-parse", "--git-dir")
package git
