package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"passed":   true,
		"baseline": "HEAD",
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["passed"] != true {
		t.Errorf("passed = %v, want true", result["passed"])
	}
	if result["baseline"] != "HEAD" {
		t.Errorf("baseline = %v, want %q", result["baseline"], "HEAD")
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewSystemError("not in a git repository"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "not in a git repository" {
		t.Errorf("error = %v, want %q", result["error"], "not in a git repository")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitSystemError {
		t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
	}
}

func TestPrinter_Error_SilentPrintsNothing(t *testing.T) {
	for _, jsonMode := range []bool{false, true} {
		var buf bytes.Buffer
		printer := NewPrinter(&buf, jsonMode, false)
		printer.Error(NewGateError(2))
		if buf.Len() != 0 {
			t.Errorf("json=%v: silent error produced output %q", jsonMode, buf.String())
		}
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "No problems found"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if buf.String() != "No problems found\n" {
		t.Errorf("output = %q, want %q", buf.String(), "No problems found\n")
	}
}

func TestPrinter_Human_ErrorToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewUserError("unknown category: perl"))

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if got := stderr.String(); got != "Error: unknown category: perl\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestPrinter_Fail(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Fail("src/Foo.php", "PHP syntax check")

	if got := buf.String(); got != "src/Foo.php fails PHP syntax check\n" {
		t.Errorf("Fail() output = %q", got)
	}
}

func TestPrinter_Diagnostics(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		input string
		want  string
	}{
		{name: "verbatim when piped", input: "line 1\nline 2\n\n", want: "line 1\nline 2\n"},
		{name: "empty output skipped", input: "\n", want: ""},
		{name: "json mode suppressed", json: true, input: "line 1", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, tt.json, false).Diagnostics(tt.input)
			if buf.String() != tt.want {
				t.Errorf("Diagnostics() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_Diagnostics_TTYKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, true).Diagnostics("Parse error: unexpected '}'")

	if !strings.Contains(buf.String(), "Parse error: unexpected '}'") {
		t.Errorf("framed diagnostics lost content: %q", buf.String())
	}
}

func TestPrinter_PrintAndPrintln(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("Hello, %s!", "world")
	printer.Println()

	if buf.String() != "Hello, world!\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello, world!\n")
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("could not run %s", "phpmd")

	if got := buf.String(); got != "Warning: could not run phpmd\n" {
		t.Errorf("Warn() = %q", got)
	}
}

func TestPrinter_Warn_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Warn("could not run %s", "phpmd")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if result["warning"] != "could not run phpmd" {
		t.Errorf("warning = %v", result["warning"])
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Table(
		[]string{"CATEGORY", "SUFFIXES"},
		[][]string{{"php", ".php"}, {"javascript", ".js"}},
	)

	want := "CATEGORY    SUFFIXES\n" +
		"php         .php    \n" +
		"javascript  .js     \n"
	if buf.String() != want {
		t.Errorf("Table() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("Git Hooks")
	printer.KeyValue("pre-commit", "installed")

	want := "\nGit Hooks\n─────────\npre-commit: installed\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
