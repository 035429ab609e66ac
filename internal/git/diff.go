package git

import (
	"context"
	"strings"

	"github.com/gorewood/commitgate/internal/output"
)

// EmptyTreeSHA is the object name of the empty tree. Diffing the index
// against it lists every staged path, which is what a repository without
// commits needs.
const EmptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// StagedDiffFilter selects added, copied, modified, and renamed paths.
// Deleted paths are never listed.
const StagedDiffFilter = "ACMR"

// HasCommit reports whether ref resolves to an existing commit.
func HasCommit(ctx context.Context, ref string) bool {
	if ref == "" {
		return false
	}
	_, err := RunContext(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// StagedFiles lists staged paths that differ from ref, in the order git
// reports them. Only added, copied, modified, and renamed paths are returned.
func StagedFiles(ctx context.Context, ref string) ([]string, error) {
	out, err := RunContext(ctx, "diff-index", "--cached", "--name-only", "-z",
		"--diff-filter="+StagedDiffFilter, ref, "--")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list staged files against "+ref, err)
	}
	return splitNUL(out), nil
}

// splitNUL splits -z output. Paths are reported verbatim, without the
// quoting git applies to unusual names in line-oriented output.
func splitNUL(out string) []string {
	var files []string
	for _, path := range strings.Split(out, "\x00") {
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}
