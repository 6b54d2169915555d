package bibliography

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/jlumpe/paperpile-tools/bijection"
)

// KeyMap is a bijection between original and replacement cite keys.
type KeyMap = bijection.Bijection[string, string]

// NewKeyMap returns an empty keymap.
func NewKeyMap() *KeyMap {
	return bijection.New[string, string]()
}

// ExtractKeymap rebuilds an original->current keymap from a bibliography in
// which rekeyed entries carry their original key under the attr field.
// Entries without the field are skipped. Returns a *bijection.KeyConflict
// (framed absolutely) if the same original or replacement key appears twice.
func ExtractKeymap(db *bibtex.BibTex, attr string) (*KeyMap, error) {
	keymap := NewKeyMap()
	for _, entry := range db.Entries {
		orig, ok := entry.Fields[attr]
		if !ok {
			continue
		}
		if err := keymap.Add(orig.String(), entry.CiteName); err != nil {
			return nil, err
		}
	}
	return keymap, nil
}

// MakeKeymap proposes replacement keys by applying transform to every key.
//
// Keys whose transformed value equals the original are left alone. Keys
// already present on the left side of existing are skipped entirely. The
// remaining proposals are grouped by transformed value: a group with exactly
// one member whose target is not already taken on the right side of existing
// becomes an update; every other group is a conflict, reported as a mapping
// from the contested target to the original keys (in first-seen order) that
// produced it. Ambiguity is data, not an error: a silent tie-break here
// would corrupt citations that reference the losing key.
//
// existing may be nil.
func MakeKeymap(keys []string, transform func(string) string, existing *KeyMap) (*KeyMap, map[string][]string) {
	groups := make(map[string][]string)
	for _, key := range keys {
		if existing != nil && existing.LTR().Has(key) {
			continue
		}
		newKey := transform(key)
		if newKey != key {
			groups[newKey] = append(groups[newKey], key)
		}
	}

	updates := NewKeyMap()
	conflicts := make(map[string][]string)
	for newKey, oldKeys := range groups {
		if len(oldKeys) == 1 && !(existing != nil && existing.RTL().Has(newKey)) {
			// Cannot conflict: group targets are unique by construction and
			// each original key belongs to exactly one group.
			_ = updates.Add(oldKeys[0], newKey)
		} else {
			conflicts[newKey] = oldKeys
		}
	}
	return updates, conflicts
}

// ResolveConflicts assigns suffixed keys to conflicting auto-assignment
// groups and records them in updates. For each contested target (in sorted
// order) the first original key receives the bare target if it is still
// free; every later key gets the target with a dedup suffix. existing should
// contain every key already taken: current entry keys plus both sides of the
// keymap being built.
func ResolveConflicts(updates *KeyMap, conflicts map[string][]string, existing map[string]bool, sep string) error {
	taken := make(map[string]bool, len(existing))
	for key := range existing {
		taken[key] = true
	}
	for _, newKey := range updates.Right() {
		taken[newKey] = true
	}

	targets := make([]string, 0, len(conflicts))
	for target := range conflicts {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		for _, oldKey := range conflicts[target] {
			newKey := target
			if taken[newKey] {
				newKey = DedupKey(target, taken, sep)
			}
			if err := updates.Add(oldKey, newKey); err != nil {
				return err
			}
			taken[newKey] = true
		}
	}
	return nil
}

// UpdateKeys rewrites entry cite keys according to keymap. Entries whose key
// is not in the keymap are left untouched. With a non-empty saveAttr the
// original key is recorded under that field on each updated entry, making
// the rewrite reversible with RevertKeys. The input database is not
// modified.
func UpdateKeys(db *bibtex.BibTex, keymap *KeyMap, saveAttr string) (*bibtex.BibTex, error) {
	ltr := keymap.LTR()

	out := bibtex.NewBibTex()
	for _, entry := range db.Entries {
		clone := cloneEntry(entry)
		if newKey, ok := ltr.Get(clone.CiteName); ok {
			oldKey := clone.CiteName
			clone.CiteName = newKey
			if saveAttr != "" {
				clone.AddField(saveAttr, bibtex.NewBibConst(oldKey))
			}
		}
		out.AddEntry(clone)
	}

	if err := CheckEntries(out.Entries); err != nil {
		return nil, err
	}
	return out, nil
}

// RevertKeys restores original cite keys from the attr field, removing the
// field from reverted entries. Entries without the field keep their current
// key. The input database is not modified.
func RevertKeys(db *bibtex.BibTex, attr string) (*bibtex.BibTex, error) {
	out := bibtex.NewBibTex()
	for _, entry := range db.Entries {
		clone := cloneEntry(entry)
		if orig, ok := clone.Fields[attr]; ok {
			clone.CiteName = orig.String()
			delete(clone.Fields, attr)
		}
		out.AddEntry(clone)
	}

	if err := CheckEntries(out.Entries); err != nil {
		return nil, err
	}
	return out, nil
}

// KeySubComment renders a human-readable report of the key substitutions in
// keymap as TSV lines, optionally listing keys omitted from the output.
func KeySubComment(keymap *KeyMap, omitted []string) string {
	var sb strings.Builder
	sb.WriteString("This BibTeX file has been processed from the one exported from Paperpile.\n")
	sb.WriteString("The following TSV data indicates the citation key substitutions made:\n\n")

	ltr := keymap.LTR()
	keys := keymap.Left()
	sort.Strings(keys)
	for _, key := range keys {
		newKey, _ := ltr.Get(key)
		fmt.Fprintf(&sb, "%s\t%s\n", key, newKey)
	}

	if len(omitted) > 0 {
		sb.WriteString("\nThe following entries were omitted:\n\n")
		for _, key := range omitted {
			sb.WriteString(key)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
