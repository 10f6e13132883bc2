//go:build !windows

package native

import "os/exec"

func hideWindow(_ *exec.Cmd) {}
