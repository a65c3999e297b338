package cmd

import (
	"github.com/spf13/cobra"
)

var postorderCmd = &cobra.Command{
	Use:   "postorder <encoding>...",
	Short: "Print the postorder of each encoded tree",
	Example: `  ntree postorder '[1,null,3,2,4,null,5,6]'
  ntree postorder '[1, None, 2, 3, 4, None, None, None, None]' --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, literal := range args {
			ev, err := evaluateLiteral(literal, cfg.Strict)
			if err != nil {
				return err
			}
			ev.warn()
			if err := render(cmd.OutOrStdout(), ev, cfg.Format); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postorderCmd)
}
