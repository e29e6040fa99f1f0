//go:build !linux && !darwin

package build

import "os/exec"

func (r *Runner) runPTY(cmd *exec.Cmd) (int, error) {
	return 0, ErrUnsupportedPlatform
}
