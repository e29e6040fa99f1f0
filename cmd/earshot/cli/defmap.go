package cli

import (
	"github.com/spf13/cobra"

	"github.com/earshot-dev/earshot/internal/extdef"
	"github.com/earshot-dev/earshot/internal/ui"
)

var defmapOutput string

var defmapCmd = &cobra.Command{
	Use:   "defmap <input-dir>",
	Short: "Merge external-definition symbol maps",
	Long: `Merge the per-translation-unit external-definition map files in a
directory into a single map for cross-translation-unit analysis. Symbols
defined in more than one module are ambiguous and dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: mergeDefmaps,
}

func init() {
	rootCmd.AddCommand(defmapCmd)
	defmapCmd.Flags().StringVarP(&defmapOutput, "output", "o", "externalDefMap.txt", "merged output file")
}

func mergeDefmaps(cmd *cobra.Command, args []string) error {
	if err := extdef.Merge(args[0], defmapOutput); err != nil {
		return err
	}
	ui.Infof("%s merged symbol map written to %s", ui.Green("✓"), defmapOutput)
	return nil
}
