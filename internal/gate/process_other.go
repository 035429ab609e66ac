//go:build !unix

package gate

import "os/exec"

// isolateProcess keeps the default behavior: only the direct child is
// killed on cancellation. WaitDelay still bounds the wait for its output.
func isolateProcess(*exec.Cmd) {}
