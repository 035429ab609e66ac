// Package output provides structured output handling for the commitgate CLI.
//
// Every command renders through a Printer, which switches between
// human-readable and JSON output based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Fail("src/Foo.php", "PHP syntax check") // "src/Foo.php fails PHP syntax check"
//	printer.Diagnostics(toolOutput)                 // raw checker output
//	printer.Success(map[string]any{"message": "No problems found"})
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: gate passed
//	output.ExitFailure     // 1: gate rejected the commit, or bad arguments
//	output.ExitSystemError // 2: git failed, config unreadable, I/O error
//	output.ExitConflict    // 3: hook already installed by something else
//
// A rejected commit is reported through NewGateError, which is Silent: the
// individual problems have already been printed, so the printer writes
// nothing for it and only the exit code changes.
package output
