//go:build windows

// Package process terminates the headless browser launched for PDF export.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills the process tree rooted at pid with taskkill.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors ignored; launcher.Kill() runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
