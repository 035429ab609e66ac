package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ResolveColorMode determines the effective isTTY value based on the --color
// flag and actual TTY detection. The colorMode parameter accepts "never",
// "always", or "auto":
//   - "never":  always disable colors (returns false)
//   - "always": always enable colors (returns true)
//   - "auto":   use the detected isTTY value (default behavior)
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for an *os.File attached to a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int on supported platforms
}
