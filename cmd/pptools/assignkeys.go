package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/nickng/bibtex"
	"github.com/spf13/cobra"

	"github.com/jlumpe/paperpile-tools/bibliography"
	"github.com/jlumpe/paperpile-tools/internal/cli"
	"github.com/jlumpe/paperpile-tools/paperpile"
)

var (
	assignOutput      string
	assignKeymapFile  string
	assignAuto        bool
	assignInteractive bool
	assignResolve     bool
	assignSummary     bool
	assignUpdate      bool
	assignMergeInto   string
	assignWriteKeymap string
)

var assignKeysCmd = &cobra.Command{
	Use:   "assignkeys [flags] BIBFILE",
	Short: "Update keys of entries in an exported .bib file",
	Long: `Update the citation keys of entries in an exported .bib file.

Keys are updated according to a keymap mapping Paperpile keys to their
replacements. The keymap may be loaded from a JSON (or YAML) file with the
--keymap option. With --auto-assign the keymap is generated (or extended) by
stripping the random two-letter suffix Paperpile appends to every key;
ambiguous assignments are reported as conflicts and skipped unless resolved
with --interactive or --resolve-conflicts.

BIBFILE is the path to the exported .bib file, or a directory to search;
when multiple export files are found, the most recently modified one is used.`,
	Example: `  # Auto-assign keys, show what changed, write the result
  pptools assignkeys -a -s -o refs.bib ~/Downloads

  # Apply a saved keymap and update the export in place
  pptools assignkeys -k keymap.json -u export.bib

  # Merge a fresh export into an existing processed bibliography
  pptools assignkeys -a -m refs.bib ~/Downloads`,
	Args: cobra.ExactArgs(1),
	RunE: runAssignKeys,
}

func init() {
	f := assignKeysCmd.Flags()
	f.StringVarP(&assignOutput, "output", "o", "", "where to write the modified bibtex file (default stdout)")
	f.StringVarP(&assignKeymapFile, "keymap", "k", "", "existing keymap file to use")
	f.BoolVarP(&assignAuto, "auto-assign", "a", false, "auto-assign keys")
	f.BoolVarP(&assignInteractive, "interactive", "i", false, "resolve auto-assignment conflicts interactively")
	f.BoolVarP(&assignResolve, "resolve-conflicts", "r", false, "resolve auto-assignment conflicts automatically")
	f.BoolVarP(&assignSummary, "summary", "s", false, "print auto-assignment summary")
	f.BoolVarP(&assignUpdate, "update", "u", false, "update bibtex file in-place")
	f.StringVarP(&assignMergeInto, "merge", "m", "", "merge into existing bibtex file")
	f.StringVarP(&assignWriteKeymap, "write-keymap", "w", "", "file to write updated keymap to")
}

func runAssignKeys(cmd *cobra.Command, args []string) error {
	if nSet := countTrue(assignOutput != "", assignUpdate, assignMergeInto != ""); nSet > 1 {
		return cli.GeneralError("the --output, --update, and --merge options are mutually exclusive", nil)
	}
	if assignInteractive && assignResolve {
		return cli.GeneralError("the --interactive and --resolve-conflicts options are mutually exclusive", nil)
	}

	// Locate most recent export if given a directory
	bibfile := args[0]
	if info, err := os.Stat(bibfile); err == nil && info.IsDir() {
		dir := bibfile
		bibfile, err = paperpile.FindLatestExport(dir)
		if err != nil {
			return cli.GeneralError(fmt.Sprintf("no Paperpile bibtex files found in %s", dir), nil)
		}
		if !quiet {
			fmt.Fprintln(os.Stderr, "Using most recent Paperpile export in directory:", bibfile)
		}
	}

	db, err := bibliography.ReadFile(bibfile, true)
	if err != nil {
		return cli.BibParseError("reading bibliography", err)
	}

	keymap := bibliography.NewKeyMap()

	// Merging into an existing processed bibliography? Start from its
	// keymap and fold it back to original keys before merging.
	if assignMergeInto != "" {
		target, err := bibliography.ReadFile(assignMergeInto, true)
		if err != nil {
			return cli.BibParseError("reading merge target", err)
		}
		keymap, err = paperpile.ExtractKeymap(target)
		if err != nil {
			return cli.ConflictError("extracting keymap from merge target", err)
		}
		reverted, err := bibliography.RevertKeys(target, cfg.Attribute)
		if err != nil {
			return cli.ConflictError("reverting merge target keys", err)
		}
		db = bibliography.MergeDBs(reverted, db)
	}

	// Keymap file: flag overrides the configured default.
	keymapFile := assignKeymapFile
	if keymapFile == "" {
		keymapFile = cfg.Keymap
	}
	if keymapFile != "" {
		m, err := bibliography.LoadKeymapFile(keymapFile)
		if err != nil {
			return cli.ConfigError("loading keymap file", err)
		}
		if err := keymap.UpdateLeftMap(m); err != nil {
			return cli.ConflictError("merging keymap file", err)
		}
	}

	var conflicts map[string][]string
	if assignAuto {
		var updates *bibliography.KeyMap
		updates, conflicts = paperpile.AssignKeys(db, keymap)

		if len(conflicts) > 0 && (assignInteractive || assignResolve) {
			existing := takenKeys(db, keymap, updates)
			if assignInteractive {
				conflicts, err = resolveInteractively(updates, conflicts, existing, cfg.Assign.Separator)
				if err != nil {
					return cli.GeneralError("resolving conflicts", err)
				}
			} else {
				if err := bibliography.ResolveConflicts(updates, conflicts, existing, cfg.Assign.Separator); err != nil {
					return cli.ConflictError("resolving conflicts", err)
				}
				conflicts = nil
			}
		}

		if assignSummary || cfg.Assign.Summary {
			printSummary(os.Stderr, updates, conflicts)
		}

		if err := keymap.UpdateLeft(updates); err != nil {
			return cli.ConflictError("applying assignments", err)
		}
	}

	out, err := bibliography.UpdateKeys(db, keymap, cfg.Attribute)
	if err != nil {
		return cli.ConflictError("updating keys", err)
	}

	// Unresolved conflicts: report which keys were left untouched.
	if len(conflicts) > 0 && !quiet {
		var omitted []string
		for _, target := range sortedTargets(conflicts) {
			omitted = append(omitted, conflicts[target]...)
		}
		fmt.Fprint(os.Stderr, bibliography.KeySubComment(keymap, omitted))
	}

	switch {
	case assignOutput != "":
		err = bibliography.WriteFile(assignOutput, out)
	case assignUpdate:
		err = bibliography.WriteFile(bibfile, out)
	case assignMergeInto != "":
		err = bibliography.WriteFile(assignMergeInto, out)
	default:
		err = bibliography.Write(os.Stdout, out)
	}
	if err != nil {
		return cli.GeneralError("writing bibliography", err)
	}

	if assignWriteKeymap != "" {
		if err := bibliography.SaveKeymapFile(assignWriteKeymap, keymap); err != nil {
			return cli.GeneralError("writing keymap", err)
		}
	}

	return nil
}

func countTrue(vals ...bool) int {
	n := 0
	for _, v := range vals {
		if v {
			n++
		}
	}
	return n
}

// takenKeys collects every key that is already spoken for: current entry
// keys plus both sides of each keymap.
func takenKeys(db *bibtex.BibTex, keymaps ...*bibliography.KeyMap) map[string]bool {
	taken := make(map[string]bool, len(db.Entries))
	for _, entry := range db.Entries {
		taken[entry.CiteName] = true
	}
	for _, keymap := range keymaps {
		for _, key := range keymap.Left() {
			taken[key] = true
		}
		for _, key := range keymap.Right() {
			taken[key] = true
		}
	}
	return taken
}

func sortedTargets(conflicts map[string][]string) []string {
	targets := make([]string, 0, len(conflicts))
	for target := range conflicts {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}
