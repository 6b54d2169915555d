package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jlumpe/paperpile-tools/bibliography"
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleNewKey  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	styleMuted   = lipgloss.NewStyle().Faint(true)
)

// printSummary reports what auto-assignment did: the accepted renames and
// the groups skipped because several keys reduced to the same target.
func printSummary(w io.Writer, updates *bibliography.KeyMap, conflicts map[string][]string) {
	if updates.Len() > 0 {
		fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("Assigned %d keys:", updates.Len())))
		ltr := updates.LTR()
		oldKeys := updates.Left()
		sort.Strings(oldKeys)
		for _, oldKey := range oldKeys {
			newKey, _ := ltr.Get(oldKey)
			fmt.Fprintf(w, "%-30s --> %s\n", oldKey, styleNewKey.Render(newKey))
		}
	} else {
		fmt.Fprintln(w, "No additional assignments made.")
	}

	fmt.Fprintln(w)

	if len(conflicts) > 0 {
		nSkipped := 0
		for _, oldKeys := range conflicts {
			nSkipped += len(oldKeys)
		}
		fmt.Fprintln(w, styleWarning.Render(
			fmt.Sprintf("Skipped %d keys due to %d conflicts:", nSkipped, len(conflicts))))
		for _, target := range sortedTargets(conflicts) {
			fmt.Fprintln(w, target)
			for _, oldKey := range conflicts[target] {
				fmt.Fprintln(w, styleMuted.Render("\t"+oldKey))
			}
		}
	}
}

// resolveInteractively asks, for each conflicting group, which original key
// should receive the contested target; the rest of the group gets
// deduplication suffixes. Skipped groups are returned as remaining
// conflicts.
func resolveInteractively(updates *bibliography.KeyMap, conflicts map[string][]string, existing map[string]bool, sep string) (map[string][]string, error) {
	const skip = "\x00skip"

	taken := make(map[string]bool, len(existing))
	for key := range existing {
		taken[key] = true
	}

	remaining := make(map[string][]string)
	for _, target := range sortedTargets(conflicts) {
		oldKeys := conflicts[target]

		choice := skip
		opts := make([]huh.Option[string], 0, len(oldKeys)+1)
		for _, key := range oldKeys {
			opts = append(opts, huh.NewOption(key, key))
		}
		opts = append(opts, huh.NewOption("(skip this group)", skip))

		sel := huh.NewSelect[string]().
			Title(fmt.Sprintf("%d keys reduce to %q", len(oldKeys), target)).
			Description("Choose the key that should receive it; the others get suffixes.").
			Options(opts...).
			Value(&choice)

		if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
			return nil, err
		}
		if choice == skip {
			remaining[target] = oldKeys
			continue
		}

		for _, oldKey := range oldKeys {
			newKey := target
			if oldKey != choice || taken[target] {
				newKey = bibliography.DedupKey(target, taken, sep)
			}
			if err := updates.Add(oldKey, newKey); err != nil {
				return nil, err
			}
			taken[newKey] = true
		}
	}
	return remaining, nil
}
