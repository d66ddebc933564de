//go:build !windows

package player

import (
	"os"
	"os/exec"
	"syscall"
)

// isolate starts mpv in its own process group, out of reach of Ctrl+C in the terminal.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate kills p together with anything it spawned.
func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err == nil {
		return nil
	}
	return p.Kill()
}
