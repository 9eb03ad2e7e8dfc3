// internal/process/proc_windows.go

//go:build windows
// +build windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}

// Windows nie ma grup procesów w sensie POSIX, zabijamy tylko dziecko
func killTree(p *os.Process) error {
	return p.Kill()
}
