// Package main provides the pptools CLI for rekeying Paperpile BibTeX
// exports.
//
// The CLI supports:
//   - assignkeys: rewrite entry keys using a keymap, optionally auto-assigned
//   - revertkeys: restore the original Paperpile keys from a rekeyed file
//   - version: print build information
//
// Rekeyed entries carry their original key in a side field, so every rewrite
// stays reversible and the keymap can be rebuilt from the output file alone.
package main

import (
	"github.com/jlumpe/paperpile-tools/internal/cli"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}
