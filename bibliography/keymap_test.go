package bibliography

import (
	"strings"
	"testing"

	"github.com/nickng/bibtex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlumpe/paperpile-tools/bijection"
)

func stripSuffix(key string) string {
	if i := strings.LastIndex(key, "-"); i >= 0 && len(key)-i == 3 {
		return key[:i]
	}
	return key
}

func makeDB(keys ...string) *bibtex.BibTex {
	db := bibtex.NewBibTex()
	for _, key := range keys {
		entry := bibtex.NewBibEntry("article", key)
		entry.AddField("title", bibtex.NewBibConst("Title of "+key))
		db.AddEntry(entry)
	}
	return db
}

func TestMakeKeymapSingletons(t *testing.T) {
	updates, conflicts := MakeKeymap([]string{"abc-xy", "def-zz", "ghi"}, stripSuffix, nil)

	assert.Equal(t, map[string]string{"abc-xy": "abc", "def-zz": "def"}, updates.LTR().Items())
	assert.Empty(t, conflicts)
}

func TestMakeKeymapConflicts(t *testing.T) {
	// Both def-zz and def-qq strip to "def": neither is assigned.
	updates, conflicts := MakeKeymap([]string{"abc-xy", "def-zz", "def-qq"}, stripSuffix, nil)

	assert.Equal(t, map[string]string{"abc-xy": "abc"}, updates.LTR().Items())
	assert.Equal(t, map[string][]string{"def": {"def-zz", "def-qq"}}, conflicts)
}

func TestMakeKeymapExisting(t *testing.T) {
	existing, err := bijection.FromLTR(map[string]string{
		"abc-xy": "abc",
		"old-ab": "def",
	})
	require.NoError(t, err)

	updates, conflicts := MakeKeymap([]string{"abc-xy", "def-zz", "ghi-qq"}, stripSuffix, existing)

	// abc-xy is already assigned: skipped, not re-transformed. def-zz is a
	// singleton but its target "def" is taken on the right side: conflict.
	assert.Equal(t, map[string]string{"ghi-qq": "ghi"}, updates.LTR().Items())
	assert.Equal(t, map[string][]string{"def": {"def-zz"}}, conflicts)
}

func TestMakeKeymapNoChange(t *testing.T) {
	updates, conflicts := MakeKeymap([]string{"abc", "def"}, stripSuffix, nil)
	assert.Equal(t, 0, updates.Len())
	assert.Empty(t, conflicts)
}

func TestResolveConflicts(t *testing.T) {
	updates := NewKeyMap()
	conflicts := map[string][]string{"def": {"def-zz", "def-qq"}}
	existing := map[string]bool{"def-zz": true, "def-qq": true}

	require.NoError(t, ResolveConflicts(updates, conflicts, existing, "-"))

	// First group member gets the bare target, later members get suffixes
	// ("a" is reserved as the bare-key alias).
	assert.Equal(t, map[string]string{"def-zz": "def", "def-qq": "def-b"}, updates.LTR().Items())
}

func TestResolveConflictsTargetTaken(t *testing.T) {
	updates := NewKeyMap()
	conflicts := map[string][]string{"def": {"def-zz", "def-qq"}}
	existing := map[string]bool{"def": true}

	require.NoError(t, ResolveConflicts(updates, conflicts, existing, ""))

	assert.Equal(t, map[string]string{"def-zz": "defb", "def-qq": "defc"}, updates.LTR().Items())
}

func TestExtractKeymap(t *testing.T) {
	db := makeDB("abc", "def")
	db.Entries[0].AddField("origkey", bibtex.NewBibConst("abc-xy"))

	keymap, err := ExtractKeymap(db, "origkey")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"abc-xy": "abc"}, keymap.LTR().Items())
}

func TestExtractKeymapConflict(t *testing.T) {
	// Two entries claiming the same original key.
	db := makeDB("abc", "def")
	db.Entries[0].AddField("origkey", bibtex.NewBibConst("orig"))
	db.Entries[1].AddField("origkey", bibtex.NewBibConst("orig"))

	_, err := ExtractKeymap(db, "origkey")
	require.Error(t, err)
	kc := bijection.AsConflict(err)
	require.NotNil(t, kc)
	assert.Equal(t, bijection.Right, kc.Side)
	assert.Equal(t, "abc", kc.Current)
}

func TestUpdateAndRevertKeys(t *testing.T) {
	db := makeDB("abc-xy", "def-zz", "keep")
	keymap, err := bijection.FromLTR(map[string]string{"abc-xy": "abc", "def-zz": "def"})
	require.NoError(t, err)

	out, err := UpdateKeys(db, keymap, "origkey")
	require.NoError(t, err)

	require.Len(t, out.Entries, 3)
	assert.Equal(t, "abc", out.Entries[0].CiteName)
	assert.Equal(t, "abc-xy", out.Entries[0].Fields["origkey"].String())
	assert.Equal(t, "def", out.Entries[1].CiteName)
	assert.Equal(t, "keep", out.Entries[2].CiteName)
	_, hasAttr := out.Entries[2].Fields["origkey"]
	assert.False(t, hasAttr)

	// Input untouched.
	assert.Equal(t, "abc-xy", db.Entries[0].CiteName)

	// Round-trip back to the original keys.
	reverted, err := RevertKeys(out, "origkey")
	require.NoError(t, err)
	assert.Equal(t, "abc-xy", reverted.Entries[0].CiteName)
	assert.Equal(t, "def-zz", reverted.Entries[1].CiteName)
	_, hasAttr = reverted.Entries[0].Fields["origkey"]
	assert.False(t, hasAttr)
}

func TestUpdateKeysNoSaveAttr(t *testing.T) {
	db := makeDB("abc-xy")
	keymap, err := bijection.FromLTR(map[string]string{"abc-xy": "abc"})
	require.NoError(t, err)

	out, err := UpdateKeys(db, keymap, "")
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Entries[0].CiteName)
	_, hasAttr := out.Entries[0].Fields[""]
	assert.False(t, hasAttr)
}

func TestUpdateKeysDuplicate(t *testing.T) {
	// A keymap that collides a replacement key with an untouched entry.
	db := makeDB("abc-xy", "abc")
	keymap, err := bijection.FromLTR(map[string]string{"abc-xy": "abc"})
	require.NoError(t, err)

	_, err = UpdateKeys(db, keymap, "")
	assert.True(t, IsDuplicateKey(err))
}

func TestKeySubComment(t *testing.T) {
	keymap, err := bijection.FromLTR(map[string]string{"b-xy": "b", "a-xy": "a"})
	require.NoError(t, err)

	s := KeySubComment(keymap, []string{"skipped-aa"})
	assert.Contains(t, s, "a-xy\ta\n")
	assert.Contains(t, s, "b-xy\tb\n")
	assert.Contains(t, s, "skipped-aa\n")
	// Sorted by original key.
	assert.Less(t, strings.Index(s, "a-xy"), strings.Index(s, "b-xy"))
}
