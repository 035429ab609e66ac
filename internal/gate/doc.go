// Package gate implements the commit gate: it resolves a baseline, lists the
// staged changes against it, runs per-category checkers over matching files,
// runs the test suite once, and decides whether the commit may proceed.
//
// Categories are data. Each one pairs a set of path suffixes with an ordered
// list of checkers; the same routine validates every category:
//
//	categories, err := gate.BuildCategories(gate.DefaultCategories(), gate.OSExecutor{}, nil)
//	tests := gate.NewCommandChecker(gate.DefaultTests(), gate.OSExecutor{}, nil)
//	runner := gate.NewRunner(gate.DefaultGitOps(), categories, tests,
//	    gate.WithReporter(reporter), gate.WithLogger(logger))
//
//	report, err := runner.Run(ctx)
//	decision := gate.Decide(report)
//
// Detected problems are never returned as errors. They are Failure values
// collected in Findings, which every step returns and the runner merges.
// Errors are reserved for infrastructure problems such as a missing
// repository.
package gate
