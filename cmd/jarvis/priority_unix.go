//go:build !windows

package main

import "syscall"

// lowerPriority renices the agent so background work yields to the host.
func lowerPriority() error {
	return syscall.Setpriority(syscall.PRIO_PROCESS, 0, 10)
}
