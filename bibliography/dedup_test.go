package bibliography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetters(t *testing.T) {
	want := []string{"a", "b", "c", "d"}
	var got []string
	for s := range Letters() {
		got = append(got, s)
		if len(got) == len(want) {
			break
		}
	}
	assert.Equal(t, want, got)

	// Sequence continues past single letters, shortest first.
	var nth string
	i := 0
	for s := range Letters() {
		if i == 26 {
			nth = s
			break
		}
		i++
	}
	assert.Equal(t, "aa", nth)
}

func TestLettersIndependent(t *testing.T) {
	// Each call restarts from "a"; no cross-call cursor.
	first := func() string {
		for s := range Letters() {
			return s
		}
		return ""
	}
	assert.Equal(t, "a", first())
	assert.Equal(t, "a", first())
}

func TestDedupKey(t *testing.T) {
	set := func(keys ...string) map[string]bool {
		m := make(map[string]bool)
		for _, k := range keys {
			m[k] = true
		}
		return m
	}

	assert.Equal(t, "fooa", DedupKey("foo", set(), ""))

	// Bare key taken: the "a" candidate is skipped entirely.
	assert.Equal(t, "foob", DedupKey("foo", set("foo"), ""))
	assert.Equal(t, "foob", DedupKey("foo", set("foo", "fooa"), ""))
	assert.Equal(t, "fooc", DedupKey("foo", set("foo", "foob"), ""))

	// With a separator.
	assert.Equal(t, "foo-a", DedupKey("foo", set(), "-"))
	assert.Equal(t, "foo-b", DedupKey("foo", set("foo", "foo-a"), "-"))
}

func TestDedupKeyManyTaken(t *testing.T) {
	existing := map[string]bool{"x": true}
	for s := range Letters() {
		existing["x"+s] = true
		if s == "z" {
			break
		}
	}
	assert.Equal(t, "xaa", DedupKey("x", existing, ""))
}
