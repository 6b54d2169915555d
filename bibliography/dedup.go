package bibliography

import "iter"

// Letters returns the infinite sequence of non-empty lowercase letter
// strings ordered by length then lexicographically: "a".."z", "aa", "ab", …
// Each call returns an independent sequence with no shared cursor.
func Letters() iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := 1; ; n++ {
			if !yieldLetters(nil, n, yield) {
				return
			}
		}
	}
}

func yieldLetters(prefix []byte, n int, yield func(string) bool) bool {
	if n == 0 {
		return yield(string(prefix))
	}
	for c := byte('a'); c <= 'z'; c++ {
		if !yieldLetters(append(prefix, c), n-1, yield) {
			return false
		}
	}
	return true
}

// DedupKey makes key unique against existing by appending sep and the first
// free suffix from Letters. The "a" suffix is treated as equivalent to the
// bare key: when key itself is taken, the first candidate tried is key+sep+"b".
func DedupKey(key string, existing map[string]bool, sep string) string {
	for suffix := range Letters() {
		if suffix == "a" && existing[key] {
			continue
		}
		if newKey := key + sep + suffix; !existing[newKey] {
			return newKey
		}
	}
	panic("unreachable: suffix sequence is infinite")
}
