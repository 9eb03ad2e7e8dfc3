// internal/process/proc_unix.go

//go:build !windows
// +build !windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup puts the logon child in its own group so killTree also
// reaches anything it forked.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// setDetached starts the child in a new session, outside our terminal.
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

func killTree(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		return p.Kill()
	}
	return nil
}
