//go:build !windows

package adapters

import "os/exec"

func configureProcAttr(_ *exec.Cmd) {}
