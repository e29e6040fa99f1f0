//go:build linux || darwin

package build

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// runPTY runs the build on a pseudo-terminal, mirroring the controlling
// terminal's size and raw input. Compilers detect a tty and keep their color
// and progress output.
func (r *Runner) runPTY(cmd *exec.Cmd) (int, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return 0, fmt.Errorf("starting build on pty: %w", err)
	}
	defer ptmx.Close()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winch <- unix.SIGWINCH

	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err == nil {
			defer term.Restore(int(os.Stdin.Fd()), oldState)
		}
	}

	// Stdin copy never terminates on its own; it dies with the process.
	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(os.Stdout, ptmx)
		// The pty master reads EIO once the child side is closed.
		if err != nil && !errors.Is(err, unix.EIO) {
			return err
		}
		return nil
	})

	code, runErr := wait(cmd.Wait())
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = fmt.Errorf("copying build output: %w", err)
	}
	return code, runErr
}
