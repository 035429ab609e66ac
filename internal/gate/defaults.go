package gate

// Check names used by the default configuration.
const (
	CheckPHPSyntax = "PHP syntax check"
	CheckPHPStyle  = "PSR2 style check"
	CheckPHPMess   = "PHP mess detector"
	CheckJSHint    = "JSHint"
	CheckCSSLint   = "CSSLint"
	CheckSCSSLint  = "SCSS-Lint"
	CheckUnitTests = "PHPUnit"
)

// DefaultMessRules is the phpmd rule set file, relative to the repository root.
const DefaultMessRules = "phpmd.xml"

// DefaultTestDir is the directory handed to the test runner.
const DefaultTestDir = "tests"

// DefaultCategories returns the built-in category configuration.
// Checkers within a category run in the order listed.
func DefaultCategories() []CategorySpec {
	return []CategorySpec{
		{
			Name:     "php",
			Suffixes: []string{".php"},
			Checkers: []CheckerSpec{
				{Name: CheckPHPSyntax, Command: []string{"php", "-l", FilePlaceholder}, Marker: "Parse error"},
				{Name: CheckPHPStyle, Command: []string{"phpcs", "--standard=PSR2", FilePlaceholder}, Marker: "| ERROR"},
			},
		},
		{
			Name:     "php-mess",
			Suffixes: []string{".php"},
			Checkers: []CheckerSpec{
				// phpmd exits 2 when it found violations.
				{Name: CheckPHPMess, Command: []string{"phpmd", FilePlaceholder, "text", DefaultMessRules}, FailExitCodes: []int{2}},
			},
		},
		{
			Name:     "javascript",
			Suffixes: []string{".js"},
			Checkers: []CheckerSpec{
				{Name: CheckJSHint, Command: []string{"jshint", FilePlaceholder}, Marker: "error"},
			},
		},
		{
			Name:     "css",
			Suffixes: []string{".css"},
			Checkers: []CheckerSpec{
				{Name: CheckCSSLint, Command: []string{"csslint", "--format=compact", FilePlaceholder}, Marker: "Error -"},
			},
		},
		{
			Name:     "scss",
			Suffixes: []string{".scss"},
			Checkers: []CheckerSpec{
				{Name: CheckSCSSLint, Command: []string{"scss-lint", FilePlaceholder}, Marker: "[E]"},
			},
		},
	}
}

// DefaultTests returns the built-in test step.
func DefaultTests() CheckerSpec {
	return CheckerSpec{
		Name:    CheckUnitTests,
		Command: []string{"phpunit", DefaultTestDir},
		Marker:  "FAILURES!",
	}
}
