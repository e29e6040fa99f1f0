package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/collect"
	"github.com/earshot-dev/earshot/internal/compdb"
)

var (
	collectOutput   string
	collectNoFilter bool
	collectTolerant bool
)

var collectCmd = &cobra.Command{
	Use:   "collect <trace-dir>",
	Short: "Build a compilation database from an existing trace directory",
	Long: `Collect runs the curation pipeline over a directory of cmd.* trace
files without running a build, for example one kept from an earlier run or
produced on another machine. Writes to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: collectTraces,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "output file (default stdout)")
	collectCmd.Flags().BoolVarP(&collectNoFilter, "no-filter", "n", false, "skip curation and dump raw trace records")
	collectCmd.Flags().BoolVar(&collectTolerant, "tolerant", false, "skip unparseable trace files instead of aborting")
}

func collectTraces(cmd *cobra.Command, args []string) error {
	opts := collect.Options{Tolerant: collectTolerant}

	// Collect before opening the output so a failed collection leaves no
	// partial database behind.
	var emit func(w io.Writer) error
	if collectNoFilter {
		records, err := collect.Records(args[0], opts)
		if err != nil {
			return err
		}
		emit = func(w io.Writer) error { return compdb.WriteRecords(w, records) }
	} else {
		entries, err := collect.Entries(args[0], opts)
		if err != nil {
			return err
		}
		emit = func(w io.Writer) error { return compdb.Write(w, entries) }
	}

	if collectOutput == "" {
		return emit(cmd.OutOrStdout())
	}
	f, err := os.Create(collectOutput)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := emit(f); err != nil {
		return err
	}
	return f.Close()
}
