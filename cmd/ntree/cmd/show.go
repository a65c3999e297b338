package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <encoding>",
	Short: "Render the tree an encoding describes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := evaluateLiteral(args[0], cfg.Strict)
		if err != nil {
			return err
		}
		ev.warn()
		return renderTree(cmd.OutOrStdout(), ev)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
