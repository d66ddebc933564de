//go:build windows

package player

import (
	"os"
	"os/exec"
	"syscall"
)

// isolate keeps mpv from opening a console window.
func isolate(cmd *exec.Cmd) {
	const createNoWindow = 0x08000000
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}

func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}
