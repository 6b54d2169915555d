package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jlumpe/paperpile-tools/bibliography"
	"github.com/jlumpe/paperpile-tools/internal/cli"
)

var (
	revertOutput string
	revertUpdate bool
)

var revertKeysCmd = &cobra.Command{
	Use:   "revertkeys [flags] BIBFILE",
	Short: "Restore original Paperpile keys in a rekeyed .bib file",
	Long: `Restore the original Paperpile citation keys in a .bib file previously
processed with assignkeys. The original key is taken from the side field
recorded during rekeying; entries without the field are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRevertKeys,
}

func init() {
	f := revertKeysCmd.Flags()
	f.StringVarP(&revertOutput, "output", "o", "", "where to write the reverted bibtex file (default stdout)")
	f.BoolVarP(&revertUpdate, "update", "u", false, "update bibtex file in-place")
}

func runRevertKeys(cmd *cobra.Command, args []string) error {
	if revertOutput != "" && revertUpdate {
		return cli.GeneralError("the --output and --update options are mutually exclusive", nil)
	}

	bibfile := args[0]
	db, err := bibliography.ReadFile(bibfile, true)
	if err != nil {
		return cli.BibParseError("reading bibliography", err)
	}

	out, err := bibliography.RevertKeys(db, cfg.Attribute)
	if err != nil {
		return cli.ConflictError("reverting keys", err)
	}

	switch {
	case revertOutput != "":
		err = bibliography.WriteFile(revertOutput, out)
	case revertUpdate:
		err = bibliography.WriteFile(bibfile, out)
	default:
		err = bibliography.Write(os.Stdout, out)
	}
	if err != nil {
		return cli.GeneralError("writing bibliography", err)
	}
	return nil
}
