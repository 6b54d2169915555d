// Package bibliography handles BibTeX entry collections and the keymaps used
// to rekey them.
//
// Parsing and serialization are delegated to github.com/nickng/bibtex; this
// package adds validation (duplicate cite keys are a hard failure), merging,
// keymap extraction and auto-assignment, and the deduplication suffix
// generator. The keymap itself is a bijection.Bijection between original and
// replacement keys, so every rekeying stays reversible.
package bibliography

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nickng/bibtex"
)

// ErrDuplicateKey is returned when two entries in a collection share the
// same cite key.
var ErrDuplicateKey = errors.New("bibliography: duplicate cite key")

// IsDuplicateKey returns true if err is or wraps ErrDuplicateKey.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// Read parses a BibTeX bibliography from r.
func Read(r io.Reader) (*bibtex.BibTex, error) {
	return bibtex.Parse(r)
}

// ReadFile parses a BibTeX bibliography from a file. With check set the
// entries are validated for duplicate cite keys.
func ReadFile(path string, check bool) (*bibtex.BibTex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if check {
		if err := CheckEntries(db.Entries); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Write serializes db to w in pretty-printed form.
func Write(w io.Writer, db *bibtex.BibTex) error {
	_, err := io.WriteString(w, db.PrettyString())
	return err
}

// WriteFile serializes db to a file.
func WriteFile(path string, db *bibtex.BibTex) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, db); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CheckEntries validates a list of entries. The only check is cite key
// uniqueness; field semantics are out of scope.
func CheckEntries(entries []*bibtex.BibEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.CiteName] {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, entry.CiteName)
		}
		seen[entry.CiteName] = true
	}
	return nil
}

// MergeDBs merges bibliographies together. Entries sharing a cite key are
// collapsed, with later databases taking precedence; within one database the
// last entry wins. First-seen entry order is preserved.
func MergeDBs(dbs ...*bibtex.BibTex) *bibtex.BibTex {
	var order []string
	byKey := make(map[string]*bibtex.BibEntry)
	for _, db := range dbs {
		for _, entry := range db.Entries {
			if _, ok := byKey[entry.CiteName]; !ok {
				order = append(order, entry.CiteName)
			}
			byKey[entry.CiteName] = entry
		}
	}

	out := bibtex.NewBibTex()
	for _, key := range order {
		out.AddEntry(byKey[key])
	}
	return out
}

// cloneEntry returns a shallow copy of an entry with its own field map.
// Field values are immutable BibStrings and can be shared.
func cloneEntry(entry *bibtex.BibEntry) *bibtex.BibEntry {
	clone := bibtex.NewBibEntry(entry.Type, entry.CiteName)
	for name, val := range entry.Fields {
		clone.AddField(name, val)
	}
	return clone
}

// EntryDiff compares the fields of two entries, ignoring the cite key.
// Returns a map from field name to the (e1, e2) values for each field
// present in both entries with differing values.
func EntryDiff(e1, e2 *bibtex.BibEntry) map[string][2]string {
	diff := make(map[string][2]string)
	for name, v1 := range e1.Fields {
		v2, ok := e2.Fields[name]
		if !ok {
			continue
		}
		if v1.String() != v2.String() {
			diff[name] = [2]string{v1.String(), v2.String()}
		}
	}
	return diff
}

// FindDuplicateKeys groups entry cite keys by their normalized form and
// returns the groups with more than one member. A nil normalize compares
// keys as-is.
func FindDuplicateKeys(db *bibtex.BibTex, normalize func(string) string) map[string][]string {
	groups := make(map[string][]string)
	for _, entry := range db.Entries {
		key := entry.CiteName
		if normalize != nil {
			key = normalize(key)
		}
		groups[key] = append(groups[key], entry.CiteName)
	}

	dupes := make(map[string][]string)
	for key, keys := range groups {
		if len(keys) > 1 {
			dupes[key] = keys
		}
	}
	return dupes
}
