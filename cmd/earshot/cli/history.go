package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/config"
	"github.com/earshot-dev/earshot/internal/history"
	"github.com/earshot-dev/earshot/internal/ui"
)

var (
	historyLimit int
	historyID    int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past earshot runs",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "number of runs to show")
	historyCmd.Flags().Int64Var(&historyID, "id", 0, "show one run in full")
}

// wireBuild is the machine-readable rendering of a history row.
type wireBuild struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Command    []string  `json:"command"`
	Directory  string    `json:"directory"`
	Revision   string    `json:"revision,omitempty"`
	ExitCode   int       `json:"exit_code"`
	EntryCount int       `json:"entry_count"`
	Output     string    `json:"output"`
}

func toWire(b *history.Build) wireBuild {
	return wireBuild{
		ID:         b.ID,
		Timestamp:  b.Timestamp,
		Command:    b.Command,
		Directory:  b.Directory,
		Revision:   b.Revision,
		ExitCode:   b.ExitCode,
		EntryCount: b.EntryCount,
		Output:     b.Output,
	}
}

func listHistory(cmd *cobra.Command, args []string) error {
	store, err := history.OpenStore(config.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if historyID > 0 {
		return showBuild(cmd, store, historyID)
	}

	builds, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	if jsonOut {
		return printHistoryJSON(cmd, builds)
	}

	if len(builds) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	for _, b := range builds {
		tag := ui.Green("✓")
		if b.ExitCode != 0 {
			tag = ui.Red(fmt.Sprintf("✗ (%d)", b.ExitCode))
		}
		revision := b.Revision
		if len(revision) > 8 {
			revision = revision[:8]
		}
		fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %s  %s  %4d entries  %s  %s\n",
			b.ID,
			b.Timestamp.Local().Format(time.DateTime),
			tag,
			b.EntryCount,
			ui.Dim(revision),
			strings.Join(b.Command, " "))
	}

	total, err := store.Count()
	if err != nil {
		return err
	}
	if total > int64(len(builds)) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Dim(fmt.Sprintf("(%d of %d runs; use -l to show more)", len(builds), total)))
	}
	return nil
}

// showBuild prints a single run in full.
func showBuild(cmd *cobra.Command, store *history.Store, id int64) error {
	b, err := store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("no run with id %d", id)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(toWire(b))
	}

	fmt.Fprintf(out, "run #%d\n", b.ID)
	fmt.Fprintf(out, "  time:      %s\n", b.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(out, "  command:   %s\n", strings.Join(b.Command, " "))
	fmt.Fprintf(out, "  directory: %s\n", b.Directory)
	if b.Revision != "" {
		fmt.Fprintf(out, "  revision:  %s\n", b.Revision)
	}
	fmt.Fprintf(out, "  exit code: %d\n", b.ExitCode)
	fmt.Fprintf(out, "  entries:   %d\n", b.EntryCount)
	fmt.Fprintf(out, "  output:    %s\n", b.Output)
	return nil
}

func printHistoryJSON(cmd *cobra.Command, builds []*history.Build) error {
	wire := make([]wireBuild, 0, len(builds))
	for _, b := range builds {
		wire = append(wire, toWire(b))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}
