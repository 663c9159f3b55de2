//go:build !windows

// Package process terminates the headless browser launched for PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the whole process group led by pid, so
// renderer and GPU helpers exit together with the browser.
// Non-positive PIDs are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors ignored; launcher.Kill() runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
