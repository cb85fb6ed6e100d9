//go:build !unix

package proton

import (
	"os"
	"os/exec"
)

func detach(*exec.Cmd) {}

// systemProcesses falls back to single-process signalling where process
// groups are unavailable.
type systemProcesses struct{}

func (systemProcesses) Alive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}

func (systemProcesses) Cmdline(int) ([]string, bool) { return nil, false }

func (systemProcesses) Terminate(pid int) error {
	return systemProcesses{}.Kill(pid)
}

func (systemProcesses) Kill(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return p.Kill()
}
