//go:build !windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

func shellCommand(shell, line string, group bool) *exec.Cmd {
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell, "-c", line)
	if group {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
	return cmd
}

// signalProcess signals the process group led by p, or p alone when it
// does not lead one.
func signalProcess(p *os.Process, sig os.Signal) error {
	if s, ok := sig.(syscall.Signal); ok {
		if err := syscall.Kill(-p.Pid, s); err == nil {
			return nil
		}
	}
	return p.Signal(sig)
}
