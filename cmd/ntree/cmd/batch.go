package cmd

import (
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Print the postorder of every encoding listed in YAML files",
	Long: `Each file holds a YAML list of encodings, written inline or quoted:

  - [1, null, 3, 2, 4, null, 5, 6]
  - "[1,null,2,3,4,null,null,null,null]"

Files are read concurrently (see the concurrency setting); results are
printed as <file>:<entry> <postorder>, in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), fs, args, cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
