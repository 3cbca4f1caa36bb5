//go:build windows

package process

import (
	"os"
	"os/exec"
)

func shellCommand(shell, line string, _ bool) *exec.Cmd {
	if shell == "" {
		shell = "cmd"
	}
	return exec.Command(shell, "/C", line)
}

func signalProcess(p *os.Process, sig os.Signal) error {
	if err := p.Signal(sig); err != nil {
		return p.Kill()
	}
	return nil
}
