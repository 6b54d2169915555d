package main

import (
	"github.com/spf13/cobra"

	"github.com/jlumpe/paperpile-tools/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pptools",
	Short: "Paperpile BibTeX rekeying tools",
	Long: `pptools - Paperpile BibTeX rekeying tools

pptools rewrites the citation keys of entries exported from Paperpile
according to a keymap, a one-to-one mapping from Paperpile keys to their
replacements. The mapping is kept reversible: rekeyed entries record their
original key in a side field.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover pptools.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(assignKeysCmd)
	rootCmd.AddCommand(revertKeysCmd)
	rootCmd.AddCommand(versionCmd)
}
