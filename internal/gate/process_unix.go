//go:build unix

package gate

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// isolateProcess starts cmd in its own process group and makes cancellation
// kill the whole group, so tools that fork (wrapper scripts, test launchers)
// cannot outlive the deadline.
func isolateProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
