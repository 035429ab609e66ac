package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/gate"
	"github.com/gorewood/commitgate/internal/output"
)

// testSuiteSubject names the test step in "<subject> fails <check>" notices.
const testSuiteSubject = "Test suite"

// newRunCmd creates the run command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check staged changes and the test suite",
		Long: `Check the staged changes and run the unit tests.

Each failing check prints "<file> fails <check>" followed by the tool's
output. When anything failed, the command exits with status 1 and prints
nothing more. Otherwise it prints a success notice and exits 0.

A checker that cannot be started (missing binary, timeout) produces a
warning and does not block the commit unless --strict-tools is set.

This is what the installed pre-commit hook runs.

Examples:
  commitgate run                 # Gate the staged changes
  commitgate run --strict-tools  # Also fail when a tool is missing
  commitgate run --json          # Machine-readable report`,
		Args: cobra.NoArgs,
		RunE: runGateCmd,
	}
}

// cliReporter prints failures and warnings as the runner finds them.
type cliReporter struct {
	printer *output.Printer
}

func (r cliReporter) Failed(failure gate.Failure, diagnostics string) {
	subject := failure.File
	if subject == "" {
		subject = testSuiteSubject
	}
	r.printer.Fail(subject, failure.Check)
	r.printer.Diagnostics(diagnostics)
}

func (r cliReporter) ToolWarning(warning gate.Warning) {
	if r.printer.IsJSON() {
		return
	}
	r.printer.Warn("%s", warning.Message)
}

// runGateCmd runs the gate and turns the report into the exit status.
func runGateCmd(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	loaded, err := loadGate(cmd, gate.WithReporter(cliReporter{printer: printer}))
	if err != nil {
		printer.Error(err)
		return err
	}

	report, err := loaded.runner.Run(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	decision := gate.Decide(report)
	if printer.IsJSON() {
		if err := printer.WriteJSON(gateJSON(report, decision)); err != nil {
			return err
		}
		return report.Err()
	}

	if decision.Notice != "" {
		if err := printer.Success(map[string]any{"message": decision.Notice}); err != nil {
			return err
		}
	}
	return report.Err()
}

// gateJSON is the --json document for a gate run.
func gateJSON(report *gate.Report, decision gate.Decision) map[string]any {
	files := report.Files
	if files == nil {
		files = []string{}
	}
	data := map[string]any{
		"status":    "rejected",
		"exit_code": decision.ExitCode,
		"baseline":  report.Baseline,
		"files":     files,
		"checked":   report.Checked,
		"failures":  report.Failures,
	}
	if decision.Notice != "" {
		data["status"] = "accepted"
		data["message"] = decision.Notice
	}
	if len(report.Warnings) > 0 {
		data["warnings"] = report.Warnings
	}
	return data
}
