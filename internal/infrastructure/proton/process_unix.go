//go:build unix

package proton

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// detach puts the child in its own process group so force close can signal
// wine and every helper it spawned at once.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

type systemProcesses struct{}

func (systemProcesses) Alive(pgid int) bool {
	err := syscall.Kill(-pgid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Cmdline reads /proc/<pid>/cmdline. Systems without procfs report ok=false.
func (systemProcesses) Cmdline(pid int) ([]string, bool) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/cmdline")
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var args []string
	for _, arg := range bytes.Split(bytes.TrimRight(data, "\x00"), []byte{0}) {
		args = append(args, string(arg))
	}
	return args, true
}

func (systemProcesses) Terminate(pgid int) error {
	return ignoreGone(syscall.Kill(-pgid, syscall.SIGTERM))
}

func (systemProcesses) Kill(pgid int) error {
	return ignoreGone(syscall.Kill(-pgid, syscall.SIGKILL))
}

func ignoreGone(err error) error {
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
