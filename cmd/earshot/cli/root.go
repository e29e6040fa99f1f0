// Package cli implements the earshot command-line interface using Cobra:
// running builds under interception, collecting compilation databases from
// trace directories, and inspecting past runs.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/config"
	"github.com/earshot-dev/earshot/internal/log"
	"github.com/earshot-dev/earshot/internal/ui"
)

var (
	verbose bool
	jsonOut bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "earshot",
	Short: "Earshot - compilation databases from uninstrumented builds",
	Long: `Earshot generates a JSON compilation database for clang tooling by
running your existing build command unmodified. A small shared library is
preloaded into every process the build spawns; it records each exec call,
and earshot curates those records into compile_commands.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      config.DebugDir(),
			RetentionDays: cfg.Debug.RetentionDays,
		}); err != nil {
			// Non-fatal: fall back to the default logger.
			cmd.PrintErrf("Warning: failed to initialize debug logging: %v\n", err)
		}
		return nil
	},
}

// exitCodeError carries a specific process exit code out of a command, used
// to propagate the build's own exit status.
type exitCodeError int

func (e exitCodeError) Error() string {
	return ""
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var code exitCodeError
	if errors.As(err, &code) {
		return int(code)
	}
	ui.Errorf("%v", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "log in JSON format")
}
