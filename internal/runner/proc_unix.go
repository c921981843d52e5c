//go:build !windows

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

func shellCommand(command string) (string, []string) {
	return "sh", []string{"-c", command}
}

// processTree is the shell's process group; the kernel tracks membership.
type processTree struct{}

// configureProcess puts the shell in its own process group so a kill reaches
// every child it spawned. A group that is already gone counts as done.
func configureProcess(cmd *exec.Cmd) *processTree {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	return &processTree{}
}

func (*processTree) attach(*exec.Cmd) error { return nil }

func (*processTree) release() {}
