package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/gorewood/commitgate/internal/gate"
	"github.com/gorewood/commitgate/internal/git/gittest"
	"github.com/gorewood/commitgate/internal/output"
)

// shellConfig stands in for the real linters: the PHP checker reports a
// parse error for files containing BROKEN, and the test step fails while
// tests/fail exists.
const shellConfig = `
categories:
  - name: php
    suffixes: [".php"]
    checkers:
      - name: PHP syntax check
        command: ["sh", "-c", "if grep -q BROKEN \"$1\"; then echo \"PHP Parse error: syntax error in $1\"; fi", "php-lint", "{file}"]
        marker: "Parse error"
  - name: javascript
    suffixes: [".js"]
    checkers:
      - name: JSHint
        command: ["sh", "-c", "if grep -q BROKEN \"$1\"; then printf '%s: Missing semicolon.\\n\\n1 error\\n' \"$1\"; fi", "jshint", "{file}"]
        marker: "error"
tests:
  name: PHPUnit
  command: ["sh", "-c", "if [ -f tests/fail ]; then echo 'FAILURES!'; else echo 'OK (3 tests)'; fi"]
  marker: "FAILURES!"
`

func newGateRepo(t *testing.T) *gittest.Repo {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	repo := gittest.New(t)
	repo.Write(".commitgate.yaml", shellConfig)
	return repo
}

func TestRun_ParseErrorRejects(t *testing.T) {
	repo := newGateRepo(t)
	repo.Stage(map[string]string{"Foo.php": "<?php BROKEN"})

	stdout, _, err := execute(t)

	if code := output.GetExitCode(err); code != output.ExitFailure {
		t.Fatalf("exit code = %d, want 1 (err %v)", code, err)
	}
	if !strings.Contains(stdout, "Foo.php fails PHP syntax check") {
		t.Errorf("stdout missing failure notice:\n%s", stdout)
	}
	if !strings.Contains(stdout, "PHP Parse error: syntax error in Foo.php") {
		t.Errorf("stdout missing echoed diagnostics:\n%s", stdout)
	}
	if strings.Contains(stdout, gate.SuccessNotice) {
		t.Error("rejection must not print the success notice")
	}
}

func TestRun_CleanCommitAccepted(t *testing.T) {
	repo := newGateRepo(t)
	repo.Stage(map[string]string{"style.css": "a { color: red; }\n", "lib/app.js": "var a = 1;\n"})

	stdout, _, err := execute(t, "run")

	if err != nil {
		t.Fatalf("expected success, got %v\n%s", err, stdout)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if last := lines[len(lines)-1]; last != gate.SuccessNotice {
		t.Errorf("last line = %q, want %q", last, gate.SuccessNotice)
	}
}

func TestRun_LintAndTestFailuresBothReported(t *testing.T) {
	repo := newGateRepo(t)
	repo.Stage(map[string]string{"app.js": "BROKEN", "tests/fail": ""})

	stdout, _, err := execute(t, "run", "--json")

	if code := output.GetExitCode(err); code != output.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	result := decodeJSON(t, stdout)
	if result["status"] != "rejected" {
		t.Errorf("status = %v, want rejected", result["status"])
	}
	failures, ok := result["failures"].([]any)
	if !ok || len(failures) != 2 {
		t.Fatalf("failures = %v, want 2 entries", result["failures"])
	}
	first := failures[0].(map[string]any)
	second := failures[1].(map[string]any)
	if first["file"] != "app.js" || first["check"] != "JSHint" {
		t.Errorf("first failure = %v", first)
	}
	if second["category"] != gate.TestsCategory {
		t.Errorf("second failure = %v, want the test step", second)
	}
}

func TestRun_NothingStagedStillRunsTests(t *testing.T) {
	repo := newGateRepo(t)
	repo.Write("tests/fail", "")

	stdout, _, err := execute(t)

	if code := output.GetExitCode(err); code != output.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout, testSuiteSubject+" fails PHPUnit") {
		t.Errorf("stdout = %q, want test failure notice", stdout)
	}
}

func TestRun_AfterFirstCommitUsesHead(t *testing.T) {
	repo := newGateRepo(t)
	repo.Stage(map[string]string{"old.php": "<?php BROKEN"})
	repo.Commit("initial")
	repo.Stage(map[string]string{"new.php": "<?php echo 1;"})

	stdout, _, err := execute(t, "--json")

	if err != nil {
		t.Fatalf("expected success, got %v\n%s", err, stdout)
	}
	result := decodeJSON(t, stdout)
	baseline := result["baseline"].(map[string]any)
	if baseline["kind"] != string(gate.BaselineHead) {
		t.Errorf("baseline = %v, want head", baseline)
	}
	if files := result["files"].([]any); len(files) != 1 || files[0] != "new.php" {
		t.Errorf("files = %v, want only new.php", files)
	}
}

func TestRun_MissingToolWarnsUnlessStrict(t *testing.T) {
	repo := newGateRepo(t)
	repo.Write(".commitgate.yaml", `
categories:
  - name: css
    suffixes: [".css"]
    checkers:
      - name: CSSLint
        command: ["commitgate-missing-csslint", "{file}"]
        marker: "Error -"
tests:
  name: noop
  command: ["sh", "-c", "true"]
  marker: "FAILURES!"
`)
	repo.Stage(map[string]string{"a.css": "a {}"})

	stdout, stderr, err := execute(t)
	if err != nil {
		t.Fatalf("missing tool should not block by default: %v", err)
	}
	if !strings.Contains(stderr, "Warning:") || !strings.Contains(stderr, "commitgate-missing-csslint") {
		t.Errorf("stderr = %q, want tool warning", stderr)
	}
	if !strings.Contains(stdout, gate.SuccessNotice) {
		t.Errorf("stdout = %q, want success notice", stdout)
	}

	_, _, err = execute(t, "--strict-tools")
	if code := output.GetExitCode(err); code != output.ExitFailure {
		t.Errorf("strict exit code = %d, want 1", code)
	}
}

func TestRun_NotARepository(t *testing.T) {
	t.Chdir(t.TempDir())

	_, stderr, err := execute(t)
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Fatalf("exit code = %d, want %d", code, output.ExitSystemError)
	}
	if !strings.Contains(stderr, "not in a git repository") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	repo := newGateRepo(t)
	repo.Write(".commitgate.yaml", "categories: [{name: js}]\n")

	_, stderr, err := execute(t)
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Fatalf("exit code = %d, want %d", code, output.ExitSystemError)
	}
	if !strings.Contains(stderr, "failed to load config") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestChanges(t *testing.T) {
	repo := newGateRepo(t)
	repo.Stage(map[string]string{"a.php": "<?php", "README.md": "hi"})

	stdout, _, err := execute(t, "changes")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"empty tree", "a.php", "php", "README.md"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("changes output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, "changes", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if result := decodeJSON(t, stdout); result["count"] != float64(2) {
		t.Errorf("count = %v, want 2", result["count"])
	}
}

func TestCategories_DefaultsOutsideRepo(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COMMITGATE_CONFIG_HOME", t.TempDir())

	stdout, _, err := execute(t, "categories")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"built-in defaults", "php-mess", "phpmd {file} text phpmd.xml", "exit 2", `"FAILURES!" in output`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("categories output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCategories_JSON(t *testing.T) {
	newGateRepo(t)

	stdout, _, err := execute(t, "categories", "--json")
	if err != nil {
		t.Fatal(err)
	}
	result := decodeJSON(t, stdout)
	if !strings.HasSuffix(result["source"].(string), ".commitgate.yaml") {
		t.Errorf("source = %v", result["source"])
	}
	if categories := result["categories"].([]any); len(categories) != 2 {
		t.Errorf("categories = %d, want 2", len(categories))
	}
}
