package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/e11jah/ntree"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize <encoding>",
	Short: "Print the canonical encoding of a tree",
	Long: `serialize rebuilds the tree and encodes it again, dropping the
elements the builder ignored and the trailing markers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := evaluateLiteral(args[0], cfg.Strict)
		if err != nil {
			return err
		}
		ev.warn()
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ntree.Format(ntree.Serialize(ev.tree)))
		return err
	},
}

func init() {
	rootCmd.AddCommand(serializeCmd)
}
