package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gorewood/commitgate/internal/git"
	"github.com/gorewood/commitgate/internal/output"
)

// GitOps defines the git operations required by Runner.
type GitOps interface {
	HasCommit(ctx context.Context, ref string) bool
	StagedFiles(ctx context.Context, ref string) ([]string, error)
}

// realGitOps implements GitOps using the git package.
type realGitOps struct{}

func (realGitOps) HasCommit(ctx context.Context, ref string) bool {
	return git.HasCommit(ctx, ref)
}

func (realGitOps) StagedFiles(ctx context.Context, ref string) ([]string, error) {
	return git.StagedFiles(ctx, ref)
}

// DefaultGitOps returns GitOps backed by the git executable.
func DefaultGitOps() GitOps {
	return realGitOps{}
}

// Reporter observes problems as the runner finds them.
type Reporter interface {
	// Failed is called for every failure, with the tool's full output.
	Failed(failure Failure, diagnostics string)
	// ToolWarning is called when a checker could not run.
	ToolWarning(warning Warning)
}

type nopReporter struct{}

func (nopReporter) Failed(Failure, string) {}
func (nopReporter) ToolWarning(Warning)    {}

// Runner executes the gate pipeline.
type Runner struct {
	git         GitOps
	categories  []Category
	tests       Checker
	reporter    Reporter
	logger      *slog.Logger
	strictTools bool
	timeout     time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the observer notified of failures and warnings.
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) { r.reporter = reporter }
}

// WithLogger sets the logger for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithStrictTools makes a checker that cannot run count as a failure
// instead of a warning.
func WithStrictTools(strict bool) Option {
	return func(r *Runner) { r.strictTools = strict }
}

// WithTimeout bounds every external invocation. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) { r.timeout = timeout }
}

// NewRunner creates a Runner. A nil tests checker skips the test step.
func NewRunner(gitOps GitOps, categories []Category, tests Checker, opts ...Option) *Runner {
	runner := &Runner{
		git:        gitOps,
		categories: categories,
		tests:      tests,
		reporter:   nopReporter{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// With returns a copy of the runner with opts applied on top.
func (r *Runner) With(opts ...Option) *Runner {
	clone := *r
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Categories returns the categories the runner validates, in order.
func (r *Runner) Categories() []Category {
	return r.categories
}

// ResolveBaseline picks HEAD when a commit exists, and the empty tree
// otherwise. It never fails.
func (r *Runner) ResolveBaseline(ctx context.Context) Baseline {
	if r.git.HasCommit(ctx, "HEAD") {
		return Baseline{Ref: "HEAD", Kind: BaselineHead}
	}
	return Baseline{Ref: git.EmptyTreeSHA, Kind: BaselineEmptyTree}
}

// ChangedFiles lists the staged added, copied, modified, and renamed paths
// relative to baseline.
func (r *Runner) ChangedFiles(ctx context.Context, baseline Baseline) ([]string, error) {
	return r.git.StagedFiles(ctx, baseline.Ref)
}

// ValidateCategory runs every checker of category against every matching
// file. Checkers run in declared order for each file, and a failure never
// skips the checkers after it. Nothing more runs once ctx is cancelled.
func (r *Runner) ValidateCategory(ctx context.Context, files []string, category Category) Findings {
	var findings Findings
	for _, file := range category.Filter(files) {
		for _, checker := range category.Checkers {
			if ctx.Err() != nil {
				return findings
			}
			findings.Merge(r.check(ctx, category.Name, checker, file))
		}
	}
	return findings
}

// RunTests runs the test step once.
func (r *Runner) RunTests(ctx context.Context) Findings {
	if r.tests == nil || ctx.Err() != nil {
		return Findings{}
	}
	return r.check(ctx, TestsCategory, r.tests, "")
}

// Run executes the whole pipeline and returns the merged report. The test
// step runs even when categories already failed. An error is returned when
// the staged changes cannot be listed or ctx is cancelled mid-run; an
// interrupted run never produces a report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	baseline := r.ResolveBaseline(ctx)
	r.logger.DebugContext(ctx, "resolved baseline", slog.String("ref", baseline.Ref), slog.String("kind", string(baseline.Kind)))

	files, err := r.ChangedFiles(ctx, baseline)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "staged changes", slog.Int("files", len(files)))

	report := &Report{Baseline: baseline, Files: files}
	if len(files) > 0 {
		for _, category := range r.categories {
			report.Merge(r.ValidateCategory(ctx, files, category))
			if err := interrupted(ctx); err != nil {
				return nil, err
			}
		}
	}
	report.Merge(r.RunTests(ctx))
	if err := interrupted(ctx); err != nil {
		return nil, err
	}

	if report.Failures == nil {
		report.Failures = []Failure{}
	}
	return report, nil
}

// check runs one checker against one file and classifies the outcome.
// A checker cut short by cancellation of the caller's ctx yields nothing;
// Run reports the interruption.
func (r *Runner) check(parent context.Context, category string, checker Checker, file string) Findings {
	ctx := parent
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, r.timeout)
		defer cancel()
	}

	log := r.logger.With(slog.String("check", checker.Name()), slog.String("file", file))
	log.DebugContext(ctx, "running checker")
	start := time.Now()

	result, err := checker.Check(ctx, file)
	if parent.Err() != nil {
		log.DebugContext(ctx, "checker interrupted", slog.Any("err", err))
		return Findings{}
	}
	findings := Findings{Checked: 1}
	if err != nil {
		warning := Warning{Check: checker.Name(), File: file, Message: toolErrorMessage(err)}
		log.DebugContext(ctx, "checker could not run", slog.Any("err", err))
		r.reporter.ToolWarning(warning)
		findings.Warnings = append(findings.Warnings, warning)
		if r.strictTools {
			failure := Failure{Category: category, Check: checker.Name(), File: file, Fragment: warning.Message}
			r.reporter.Failed(failure, "")
			findings.Failures = append(findings.Failures, failure)
		}
		return findings
	}

	log.DebugContext(ctx, "checker finished",
		slog.Bool("passed", result.Passed),
		slog.Int("exit_code", result.ExitCode),
		slog.Duration("elapsed", time.Since(start)))
	if result.Passed {
		return findings
	}

	failure := Failure{Category: category, Check: checker.Name(), File: file, Fragment: result.Fragment}
	r.reporter.Failed(failure, result.Diagnostics)
	findings.Failures = append(findings.Failures, failure)
	return findings
}

// interrupted returns the error for a run whose context was cancelled.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return output.NewSystemErrorWithCause("gate interrupted, commit not checked", err)
	}
	return nil
}

func toolErrorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out: " + err.Error()
	}
	return err.Error()
}
