//go:build windows

package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

func shellCommand(command string) (string, []string) {
	return "cmd", []string{"/C", command}
}

// processTree is a job object holding cmd.exe and everything it starts.
// Closing the last handle kills every process still in the job.
type processTree struct {
	mu  sync.Mutex
	job windows.Handle
}

func configureProcess(cmd *exec.Cmd) *processTree {
	t := &processTree{}
	cmd.Cancel = func() error {
		if t.terminate() {
			return nil
		}
		err := cmd.Process.Kill()
		if errors.Is(err, os.ErrProcessDone) {
			return os.ErrProcessDone
		}
		return err
	}
	return t
}

// attach moves the started shell into a kill-on-close job. Children the
// shell spawns afterwards inherit the job.
func (t *processTree) attach(cmd *exec.Cmd) error {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return fmt.Errorf("create job object: %w", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	if _, err := windows.SetInformationJobObject(
		job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	); err != nil {
		windows.CloseHandle(job)
		return fmt.Errorf("configure job object: %w", err)
	}

	proc, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(cmd.Process.Pid))
	if err != nil {
		windows.CloseHandle(job)
		return fmt.Errorf("open process %d: %w", cmd.Process.Pid, err)
	}
	defer windows.CloseHandle(proc)

	if err := windows.AssignProcessToJobObject(job, proc); err != nil {
		windows.CloseHandle(job)
		return fmt.Errorf("assign process %d to job: %w", cmd.Process.Pid, err)
	}

	t.mu.Lock()
	t.job = job
	t.mu.Unlock()
	return nil
}

// terminate kills every process in the job. It reports false when no job
// is attached.
func (t *processTree) terminate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.job == 0 {
		return false
	}
	return windows.TerminateJobObject(t.job, 1) == nil
}

// release closes the job, killing anything the shell left behind.
func (t *processTree) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.job != 0 {
		windows.CloseHandle(t.job)
		t.job = 0
	}
}
