package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/e11jah/ntree/internal/config"
)

var (
	cfgFile string
	verbose bool
	strict  bool

	fs  = afero.NewOsFs()
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "ntree",
	Short: "Rebuild N-ary trees from level-order encodings",
	Long: `ntree decodes level-order encodings of N-ary trees such as

  [1,null,3,2,4,null,5,6]

where the first element is the root, each null closes the children list
of the current parent, and prints the rebuilt tree or its postorder.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err)
	}
	return err
}

func init() {
	pterm.SetDefaultOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug messages")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "report encodings that are not canonical")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(fs, cfgFile)
	if err != nil {
		return err
	}

	fileEnv, err := config.ReadEnvFiles(fs, config.DefaultEnvFiles...)
	if err != nil {
		return err
	}
	if err := loaded.ApplyEnv(lo.Assign(fileEnv, config.ProcessEnv())); err != nil {
		return err
	}

	if cmd.Flags().Changed("strict") {
		loaded.Strict = strict
	}
	if verbose {
		loaded.LogLevel = "debug"
	}
	if loaded.Debug() {
		pterm.EnableDebugMessages()
	}

	cfg = loaded
	pterm.Debug.Printfln("config: strict=%t format=%s concurrency=%d", cfg.Strict, cfg.Format, cfg.Concurrency)
	return nil
}
