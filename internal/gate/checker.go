package gate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// outputWaitDelay bounds how long Execute waits for a finished or killed
// process's output pipes, which leftover descendants may hold open.
const outputWaitDelay = 500 * time.Millisecond

// Result is the outcome of one checker invocation.
type Result struct {
	Passed bool
	// Diagnostics is the tool's full combined output.
	Diagnostics string
	// Fragment is the part of the output that triggered the failure.
	Fragment string
	ExitCode int
}

// Checker runs one kind of check against a single file.
// An empty file means the checker runs once for the whole project.
type Checker interface {
	Name() string
	Check(ctx context.Context, file string) (Result, error)
}

// Execution is a finished process: its combined output and exit code.
type Execution struct {
	Output   []byte
	ExitCode int
}

// Executor starts external processes. It returns an error only when the
// process could not run to completion (missing binary, permission denied,
// cancelled context); a non-zero exit is reported through ExitCode.
type Executor interface {
	Execute(ctx context.Context, argv []string, env []string) (Execution, error)
}

// OSExecutor runs processes with os/exec, capturing stdout and stderr together.
// Processes start in Dir, or the current directory when Dir is empty.
type OSExecutor struct {
	Dir string
}

// Execute implements Executor.
func (e OSExecutor) Execute(ctx context.Context, argv []string, env []string) (Execution, error) {
	if len(argv) == 0 {
		return Execution{}, errors.New("empty command")
	}

	// #nosec G204 -- commands come from the gate configuration
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.WaitDelay = outputWaitDelay
	isolateProcess(cmd)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Execution{Output: combined.Bytes()}, ctxErr
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		return Execution{Output: combined.Bytes(), ExitCode: cmd.ProcessState.ExitCode()}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		return Execution{Output: combined.Bytes(), ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return Execution{Output: combined.Bytes()}, err
	}
	return Execution{Output: combined.Bytes()}, nil
}

// ToolError reports a checker whose process could not run.
type ToolError struct {
	Check string
	Argv  []string
	Err   error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: could not run %q: %v", e.Check, strings.Join(e.Argv, " "), e.Err)
}

// Unwrap returns the underlying execution error.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// CommandChecker runs an external tool and inspects its output.
type CommandChecker struct {
	spec CheckerSpec
	exec Executor
	env  []string
}

// NewCommandChecker creates a checker for spec. Extra env entries
// ("KEY=VALUE") are added to the tool's environment.
func NewCommandChecker(spec CheckerSpec, executor Executor, env []string) *CommandChecker {
	return &CommandChecker{spec: spec, exec: executor, env: env}
}

// Name implements Checker.
func (c *CommandChecker) Name() string {
	return c.spec.Name
}

// Check implements Checker.
func (c *CommandChecker) Check(ctx context.Context, file string) (Result, error) {
	argv := c.spec.Argv(file)
	run, err := c.exec.Execute(ctx, argv, c.env)
	if err != nil {
		return Result{}, &ToolError{Check: c.spec.Name, Argv: argv, Err: err}
	}
	return c.evaluate(run), nil
}

// evaluate applies the marker and exit-code rules to a finished run.
func (c *CommandChecker) evaluate(run Execution) Result {
	out := string(run.Output)
	result := Result{Passed: true, Diagnostics: out, ExitCode: run.ExitCode}

	if c.spec.Marker != "" && strings.Contains(out, c.spec.Marker) {
		result.Passed = false
		result.Fragment = matchingLines(out, c.spec.Marker)
		return result
	}
	if slices.Contains(c.spec.FailExitCodes, run.ExitCode) {
		result.Passed = false
		result.Fragment = firstLine(out)
		if result.Fragment == "" {
			result.Fragment = fmt.Sprintf("exit status %d", run.ExitCode)
		}
	}
	return result
}

// matchingLines returns every line of out containing marker.
func matchingLines(out, marker string) string {
	var matched []string
	for line := range strings.Lines(out) {
		if strings.Contains(line, marker) {
			matched = append(matched, strings.TrimRight(line, "\r\n"))
		}
	}
	return strings.Join(matched, "\n")
}

func firstLine(out string) string {
	for line := range strings.Lines(out) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
