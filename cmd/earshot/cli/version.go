package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/build"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Version returns the build version string.
func Version() string {
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of earshot and its interception library",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "earshot %s\n", version)
		if commit != "none" {
			fmt.Fprintf(out, "  commit:  %s\n", commit)
		}
		if date != "unknown" {
			fmt.Fprintf(out, "  built:   %s\n", date)
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				fmt.Fprintf(out, "  module:  %s\n", info.Main.Version)
			}
			fmt.Fprintf(out, "  go:      %s\n", info.GoVersion)
		}

		// The shared library is resolved the same way `run` resolves it, so
		// this doubles as a quick preload-setup check.
		if lib, err := build.LocateLibrary(cfg.Library); err == nil {
			fmt.Fprintf(out, "  library: %s\n", lib)
		} else {
			fmt.Fprintln(out, "  library: not found")
		}
	},
}
