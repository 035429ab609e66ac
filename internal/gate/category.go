package gate

import (
	"fmt"
	"strings"
)

// Category is a filetype-specific group of checks.
type Category struct {
	Name     string
	Suffixes []string
	Checkers []Checker
}

// Matches reports whether path ends with one of the category suffixes.
// Matching is case-sensitive.
func (c Category) Matches(path string) bool {
	for _, suffix := range c.Suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Filter returns the files the category applies to, in input order.
func (c Category) Filter(files []string) []string {
	var matched []string
	for _, file := range files {
		if c.Matches(file) {
			matched = append(matched, file)
		}
	}
	return matched
}

// BuildCategories validates specs and turns them into runnable categories
// backed by command checkers.
func BuildCategories(specs []CategorySpec, executor Executor, env []string) ([]Category, error) {
	categories := make([]Category, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate category %q", spec.Name)
		}
		seen[spec.Name] = true

		checkers := make([]Checker, 0, len(spec.Checkers))
		for _, checker := range spec.Checkers {
			checkers = append(checkers, NewCommandChecker(checker, executor, env))
		}
		categories = append(categories, Category{
			Name:     spec.Name,
			Suffixes: spec.Suffixes,
			Checkers: checkers,
		})
	}
	return categories, nil
}
