package gate

import (
	"errors"
	"fmt"
	"strings"
)

// FilePlaceholder is replaced by the checked path in command templates.
const FilePlaceholder = "{file}"

// CheckerSpec describes one external tool invocation and how to recognize
// that it found a problem.
type CheckerSpec struct {
	Name    string   `json:"name"    yaml:"name"    toml:"name"`
	Command []string `json:"command" yaml:"command" toml:"command"`
	// Marker fails the check when it occurs anywhere in combined output.
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty" toml:"marker,omitempty"`
	// FailExitCodes fails the check when the tool exits with one of them.
	FailExitCodes []int `json:"fail_exit_codes,omitempty" yaml:"fail_exit_codes,omitempty" toml:"fail_exit_codes,omitempty"`
}

// Validate reports configuration mistakes.
func (s CheckerSpec) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return errors.New("checker name is required")
	case len(s.Command) == 0 || s.Command[0] == "":
		return fmt.Errorf("checker %q: command is required", s.Name)
	case s.Marker == "" && len(s.FailExitCodes) == 0:
		return fmt.Errorf("checker %q: needs a marker or fail_exit_codes", s.Name)
	}
	return nil
}

// Argv renders the command for file. Every {file} placeholder is replaced;
// without a placeholder the file is appended as the last argument. An empty
// file (the test step) leaves the template as is.
func (s CheckerSpec) Argv(file string) []string {
	argv := make([]string, 0, len(s.Command)+1)
	substituted := false
	for _, arg := range s.Command {
		if strings.Contains(arg, FilePlaceholder) {
			substituted = true
			arg = strings.ReplaceAll(arg, FilePlaceholder, file)
		}
		argv = append(argv, arg)
	}
	if !substituted && file != "" {
		argv = append(argv, file)
	}
	return argv
}

// Tool returns the executable the checker invokes.
func (s CheckerSpec) Tool() string {
	if len(s.Command) == 0 {
		return ""
	}
	return s.Command[0]
}

// CategorySpec groups checkers that apply to files with given suffixes.
type CategorySpec struct {
	Name     string        `json:"name"     yaml:"name"     toml:"name"`
	Suffixes []string      `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
	Checkers []CheckerSpec `json:"checkers" yaml:"checkers" toml:"checkers"`
}

// Validate reports configuration mistakes in the category and its checkers.
func (s CategorySpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("category name is required")
	}
	if len(s.Suffixes) == 0 {
		return fmt.Errorf("category %q: at least one suffix is required", s.Name)
	}
	for _, suffix := range s.Suffixes {
		if suffix == "" {
			return fmt.Errorf("category %q: empty suffix", s.Name)
		}
	}
	if len(s.Checkers) == 0 {
		return fmt.Errorf("category %q: at least one checker is required", s.Name)
	}
	for _, checker := range s.Checkers {
		if err := checker.Validate(); err != nil {
			return fmt.Errorf("category %q: %w", s.Name, err)
		}
	}
	return nil
}
