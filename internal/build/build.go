// Package build runs the user's build command with the interception library
// injected, so that every process the build spawns writes a trace file into
// the scratch directory.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/earshot-dev/earshot/internal/log"
)

// Runner executes one build under interception.
type Runner struct {
	// Args is the build command argument vector.
	Args []string
	// TraceDir is the scratch directory the interception library writes
	// cmd.* files into.
	TraceDir string
	// Library is the path to the interception shared library.
	Library string
	// PTY runs the build on a pseudo-terminal so compilers keep their
	// color and progress output. Only honored when stdout is a terminal.
	PTY bool
}

// Run executes the build and returns its exit code. A failing build is not an
// error here: the exit code is reported to the caller (and ultimately
// propagated as earshot's own exit code), while trace collection proceeds
// over whatever the build managed to run.
func (r *Runner) Run(ctx context.Context) (int, error) {
	if len(r.Args) == 0 {
		return 0, errors.New("no build command given")
	}

	env, err := injectionEnv(r.TraceDir, r.Library)
	if err != nil {
		return 0, err
	}

	log.Debug("running build",
		"command", r.Args, "trace_dir", r.TraceDir, "library", r.Library)

	cmd := exec.CommandContext(ctx, r.Args[0], r.Args[1:]...)
	cmd.Env = append(os.Environ(), env...)

	if r.PTY {
		return r.runPTY(cmd)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wait(cmd.Run())
}

// wait maps a child failure to its exit code. Anything other than a non-zero
// exit (start failure, signal) is a real error.
func wait(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("running build command: %w", err)
}
