// Package paperpile contains the Paperpile-specific pieces of the rekeying
// tool: key normalization, suffix stripping, keymap extraction with
// operator-readable errors, and export file discovery.
package paperpile

import (
	"fmt"
	"regexp"

	"github.com/nickng/bibtex"

	"github.com/jlumpe/paperpile-tools/bibliography"
	"github.com/jlumpe/paperpile-tools/bijection"
)

// Attr is the entry field holding the original Paperpile key after rekeying.
const Attr = "paperpile_key"

// Paperpile appends a hyphen and two random letters to generated keys.
var suffixPattern = regexp.MustCompile(`-[A-Za-z]{2}$`)

// RemoveSuffix strips the trailing two-letter suffix Paperpile appends to a
// BibTeX key. Keys without the suffix are returned unchanged.
func RemoveSuffix(key string) string {
	if suffixPattern.MatchString(key) {
		return key[:len(key)-3]
	}
	return key
}

// keyNormalizers is applied in order; later patterns see the output of
// earlier ones.
var keyNormalizers = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\\_`), "_"},        // escaped underscore
	{regexp.MustCompile(`\s+`), " "},        // collapse whitespace
	{regexp.MustCompile(`\{(\w+)\}`), "$1"}, // braces wrapping a single word
}

// NormalizeKey cleans up the escaping artifacts Paperpile leaves in
// exported keys.
func NormalizeKey(key string) string {
	for _, n := range keyNormalizers {
		key = n.pattern.ReplaceAllString(key, n.repl)
	}
	return key
}

// CleanKey is the transform used for auto-assignment: normalize, then strip
// the Paperpile suffix.
func CleanKey(key string) string {
	return RemoveSuffix(NormalizeKey(key))
}

// AssignKeys proposes replacement keys for every entry in db using CleanKey.
// Keys already assigned in existing are skipped; see bibliography.MakeKeymap
// for the update/conflict partition. existing may be nil.
func AssignKeys(db *bibtex.BibTex, existing *bibliography.KeyMap) (*bibliography.KeyMap, map[string][]string) {
	keys := make([]string, 0, len(db.Entries))
	for _, entry := range db.Entries {
		keys = append(keys, entry.CiteName)
	}
	return bibliography.MakeKeymap(keys, CleanKey, existing)
}

// ExtractKeymap rebuilds the Paperpile keymap from a previously rekeyed
// bibliography, translating key conflicts into messages naming the
// offending keys.
func ExtractKeymap(db *bibtex.BibTex) (*bibliography.KeyMap, error) {
	keymap, err := bibliography.ExtractKeymap(db, Attr)
	if err == nil {
		return keymap, nil
	}

	kc := bijection.AsConflict(err)
	if kc == nil {
		return nil, err
	}
	ppKey, key := kc.Pair[0], kc.Pair[1]
	switch kc.Side {
	case bijection.Right:
		// The paperpile key maps to two different replacement keys.
		return nil, fmt.Errorf(
			"paperpile key %v appears twice, corresponding to replacement keys %v and %v",
			ppKey, key, kc.Current)
	case bijection.Left:
		// The replacement key is claimed by two different paperpile keys.
		return nil, fmt.Errorf(
			"replacement key %v appears twice, corresponding to paperpile keys %v and %v",
			key, ppKey, kc.Current)
	default:
		return nil, err
	}
}
