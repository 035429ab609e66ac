package gate

import "github.com/gorewood/commitgate/internal/output"

// BaselineKind says which snapshot staged files are compared against.
type BaselineKind string

// Baseline kinds.
const (
	BaselineHead      BaselineKind = "head"
	BaselineEmptyTree BaselineKind = "empty-tree"
)

// Baseline is the reference staged changes are computed against.
type Baseline struct {
	Ref  string       `json:"ref"`
	Kind BaselineKind `json:"kind"`
}

// TestsCategory is the category name failures from the test step carry.
const TestsCategory = "tests"

// SuccessNotice is printed when the gate lets a commit through.
const SuccessNotice = "No problems found, commit accepted"

// Failure is one detected problem: a checker's marker or failing exit code.
type Failure struct {
	Category string `json:"category"`
	Check    string `json:"check"`
	File     string `json:"file,omitempty"`
	Fragment string `json:"fragment"`
}

// Warning records a checker that could not run at all.
type Warning struct {
	Check   string `json:"check"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// Findings is what a validation step produced. Steps return their own
// Findings and the runner merges them in order.
type Findings struct {
	Failures []Failure `json:"failures"`
	Warnings []Warning `json:"warnings,omitempty"`
	Checked  int       `json:"checked"`
}

// Merge appends other to f, preserving order.
func (f *Findings) Merge(other Findings) {
	f.Failures = append(f.Failures, other.Failures...)
	f.Warnings = append(f.Warnings, other.Warnings...)
	f.Checked += other.Checked
}

// Report is the outcome of a full gate run.
type Report struct {
	Baseline Baseline `json:"baseline"`
	Files    []string `json:"files"`
	Findings
}

// Passed reports whether no failures were detected.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Decision is the final verdict for the commit.
type Decision struct {
	ExitCode int
	// Notice is printed on success. It is empty on failure, which
	// produces no further output.
	Notice string
}

// Decide turns a report into the process outcome.
func Decide(r *Report) Decision {
	if r.Passed() {
		return Decision{ExitCode: output.ExitSuccess, Notice: SuccessNotice}
	}
	return Decision{ExitCode: output.ExitFailure}
}

// Err returns nil for a passing report, and otherwise a silent gate error
// carrying exit code 1.
func (r *Report) Err() error {
	if r.Passed() {
		return nil
	}
	return output.NewGateError(len(r.Failures))
}
