package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/index"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the persisted index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Empty expected model: stats inspects whatever is on disk.
		ix, err := index.Load(cfg.Index.Path, "")
		if err != nil {
			return err
		}

		fmt.Printf("Index:     %s\n", cfg.Index.Path)
		fmt.Printf("Entries:   %d\n", ix.Len())
		fmt.Printf("Dimension: %d\n", ix.Dimension())
		fmt.Printf("Model:     %s\n", ix.Model())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
