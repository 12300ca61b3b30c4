//go:build windows

package adapters

import (
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
