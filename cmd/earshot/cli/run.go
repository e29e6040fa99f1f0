package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/build"
	"github.com/earshot-dev/earshot/internal/collect"
	"github.com/earshot-dev/earshot/internal/compdb"
	"github.com/earshot-dev/earshot/internal/config"
	"github.com/earshot-dev/earshot/internal/history"
	"github.com/earshot-dev/earshot/internal/log"
	"github.com/earshot-dev/earshot/internal/ui"
)

var (
	runOutput   string
	runNoFilter bool
	runTolerant bool
	runLibrary  string
	runNoPTY    bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <build command>",
	Short: "Run a build and generate its compilation database",
	Long: `Run the given build command with the interception library preloaded,
then curate the captured execution traces into a compilation database.

The build runs unmodified with its own exit code propagated; the database is
written even when the build fails, covering whatever did compile.

Examples:
  # A plain make build
  earshot run -- make

  # Custom output file, parallel build
  earshot run -o build/compile_commands.json -- make -j8

  # Diagnostic raw dump of every intercepted exec call
  earshot run --no-filter -o traces.json -- ./build.sh`,
	Args: cobra.ArbitraryArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (default from config, compile_commands.json)")
	runCmd.Flags().BoolVarP(&runNoFilter, "no-filter", "n", false, "skip curation and dump raw trace records")
	runCmd.Flags().BoolVar(&runTolerant, "tolerant", false, "skip unparseable trace files instead of aborting")
	runCmd.Flags().StringVar(&runLibrary, "library", "", "path to the interception shared library")
	runCmd.Flags().BoolVar(&runNoPTY, "no-pty", false, "never allocate a pseudo-terminal for the build")
}

func runBuild(cmd *cobra.Command, args []string) error {
	buildArgs := args
	if dashIdx := cmd.ArgsLenAtDash(); dashIdx >= 0 {
		buildArgs = args[dashIdx:]
	}
	if len(buildArgs) == 0 {
		return fmt.Errorf("no build command given (usage: earshot run -- make)")
	}

	output := runOutput
	if output == "" {
		output = cfg.Output
	}

	libraryPath := runLibrary
	if libraryPath == "" {
		libraryPath = cfg.Library
	}
	library, err := build.LocateLibrary(libraryPath)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "earshot-")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)
	log.SetBuildID(filepath.Base(scratch))

	runner := &build.Runner{
		Args:     buildArgs,
		TraceDir: scratch,
		Library:  library,
		PTY:      !runNoPTY && ui.StdoutIsTerminal(),
	}
	exitCode, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if exitCode != 0 {
		ui.Warnf("build exited with code %d; the database covers what did run", exitCode)
	}

	entryCount, err := writeDatabase(scratch, output, runNoFilter, runTolerant)
	if err != nil {
		return err
	}
	ui.Infof("%s %d entries written to %s", ui.Green("✓"), entryCount, output)

	recordHistory(buildArgs, exitCode, entryCount, output)

	if exitCode != 0 {
		return exitCodeError(exitCode)
	}
	return nil
}

// writeDatabase collects from the scratch directory and writes the result,
// returning how many records or entries were written. Collection happens
// before the output file is touched: a failed collection leaves no partial
// database behind.
func writeDatabase(scratch, output string, noFilter, tolerant bool) (int, error) {
	opts := collect.Options{Tolerant: tolerant}

	write := func(count int, emit func(f *os.File) error) (int, error) {
		f, err := os.Create(output)
		if err != nil {
			return 0, fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		if err := emit(f); err != nil {
			return 0, err
		}
		return count, f.Close()
	}

	if noFilter {
		records, err := collect.Records(scratch, opts)
		if err != nil {
			return 0, err
		}
		return write(len(records), func(f *os.File) error {
			return compdb.WriteRecords(f, records)
		})
	}

	entries, err := collect.Entries(scratch, opts)
	if err != nil {
		return 0, err
	}
	return write(len(entries), func(f *os.File) error {
		return compdb.Write(f, entries)
	})
}

// recordHistory appends the run to the history store. History failures are
// reported but never fail the run.
func recordHistory(buildArgs []string, exitCode, entryCount int, output string) {
	if !cfg.History {
		return
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}

	store, err := history.OpenStore(config.HistoryPath())
	if err != nil {
		log.Warn("could not open history store", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(history.Build{
		Command:    buildArgs,
		Directory:  dir,
		Revision:   history.HeadRevision(dir),
		ExitCode:   exitCode,
		EntryCount: entryCount,
		Output:     output,
	}); err != nil {
		log.Warn("could not record build history", "error", err)
	}
}
