// Package bijection provides a mutable, strictly one-to-one mapping between
// two key sets.
//
// A Bijection maintains the invariant that ltr[l] == r exactly when
// rtl[r] == l: no left key maps to two right keys and no right key is
// reachable from two left keys. The two directions are exposed as map views
// (LTR, RTL) backed by the same state, and the bijection as a whole behaves
// as a set of (left, right) pairs via Add/Discard/Contains. Every mutation
// updates both internal maps or neither, and mutations that would break the
// invariant fail with a *KeyConflict instead of silently overwriting.
//
// The Bijection is not safe for concurrent use; callers sharing one across
// goroutines must synchronize externally.
package bijection

import "fmt"

// Pair is a single (left, right) member of a Bijection.
type Pair[L, R comparable] struct {
	Left  L
	Right R
}

// Bijection is a bidirectional one-to-one mapping between a left key set
// and a right key set. The zero value is not usable; use New or one of the
// From* constructors.
type Bijection[L, R comparable] struct {
	ltr map[L]R
	rtl map[R]L
}

// New returns an empty bijection.
func New[L, R comparable]() *Bijection[L, R] {
	return &Bijection[L, R]{
		ltr: make(map[L]R),
		rtl: make(map[R]L),
	}
}

// FromPairs builds a bijection from (left, right) pairs. Duplicate pairs are
// idempotent; conflicting pairs return a *KeyConflict framed absolutely.
func FromPairs[L, R comparable](pairs []Pair[L, R]) (*Bijection[L, R], error) {
	b := New[L, R]()
	for _, p := range pairs {
		if err := b.Add(p.Left, p.Right); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromLTR builds a bijection from a left-to-right mapping. Fails with a
// *KeyConflict if two left keys map to the same right key.
func FromLTR[L, R comparable](m map[L]R) (*Bijection[L, R], error) {
	b := New[L, R]()
	for l, r := range m {
		if err := b.LTR().Set(l, r); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromRTL builds a bijection from a right-to-left mapping. Fails with a
// *KeyConflict if two right keys map to the same left key.
func FromRTL[L, R comparable](m map[R]L) (*Bijection[L, R], error) {
	b := New[L, R]()
	for r, l := range m {
		if err := b.RTL().Set(r, l); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Identity returns a bijection mapping every key in keys to itself.
func Identity[K comparable](keys []K) *Bijection[K, K] {
	b := New[K, K]()
	for _, k := range keys {
		b.ltr[k] = k
		b.rtl[k] = k
	}
	return b
}

// Clone returns an independent copy.
func (b *Bijection[L, R]) Clone() *Bijection[L, R] {
	c := New[L, R]()
	for l, r := range b.ltr {
		c.ltr[l] = r
		c.rtl[r] = l
	}
	return c
}

// LTR returns the left-to-right map view. The view shares the bijection's
// state: mutations through it are visible through RTL and the pair surface
// immediately.
func (b *Bijection[L, R]) LTR() Map[L, R] {
	return Map[L, R]{fwd: b.ltr, rev: b.rtl}
}

// RTL returns the right-to-left map view.
func (b *Bijection[L, R]) RTL() Map[R, L] {
	return Map[R, L]{fwd: b.rtl, rev: b.ltr}
}

// Len returns the number of pairs.
func (b *Bijection[L, R]) Len() int {
	return len(b.ltr)
}

// Left returns all left keys, in no particular order.
func (b *Bijection[L, R]) Left() []L {
	keys := make([]L, 0, len(b.ltr))
	for l := range b.ltr {
		keys = append(keys, l)
	}
	return keys
}

// Right returns all right keys, in no particular order.
func (b *Bijection[L, R]) Right() []R {
	keys := make([]R, 0, len(b.rtl))
	for r := range b.rtl {
		keys = append(keys, r)
	}
	return keys
}

// Pairs returns all (left, right) pairs, in no particular order.
func (b *Bijection[L, R]) Pairs() []Pair[L, R] {
	pairs := make([]Pair[L, R], 0, len(b.ltr))
	for l, r := range b.ltr {
		pairs = append(pairs, Pair[L, R]{Left: l, Right: r})
	}
	return pairs
}

// Contains reports whether the exact pair (left, right) is a member.
func (b *Bijection[L, R]) Contains(left L, right R) bool {
	r, ok := b.ltr[left]
	return ok && r == right
}

// Add inserts the pair (left, right). Conflicts are reported with a
// *KeyConflict framed absolutely, anchored at Left. Adding a pair that is
// already a member is a no-op.
func (b *Bijection[L, R]) Add(left L, right R) error {
	return asAbsolute(b.LTR().Set(left, right), Left)
}

// Discard removes the pair (left, right). Returns ErrNotFound unless the
// exact pair is currently a member.
func (b *Bijection[L, R]) Discard(left L, right R) error {
	if !b.Contains(left, right) {
		return fmt.Errorf("%w: pair (%v, %v)", ErrNotFound, left, right)
	}
	return b.LTR().Delete(left)
}

// UpdateLeft merges other into b, replacing existing entries whose left key
// appears in other. If an insertion still conflicts after eviction (the
// right key collides with an unrelated left key) the merge stops with a
// *KeyConflict anchored at Left.
//
// The merge is not transactional: evictions and insertions applied before a
// failing insertion are kept. Callers needing atomicity should Clone first.
func (b *Bijection[L, R]) UpdateLeft(other *Bijection[L, R]) error {
	return asAbsolute(update(b.LTR(), other.LTR()), Left)
}

// UpdateLeftMap is UpdateLeft for a plain left-to-right mapping.
func (b *Bijection[L, R]) UpdateLeftMap(m map[L]R) error {
	other, err := FromLTR(m)
	if err != nil {
		return err
	}
	return b.UpdateLeft(other)
}

// UpdateRight merges other into b, replacing existing entries whose right
// key appears in other. Conflicts are anchored at Right. Like UpdateLeft,
// partial application on failure is not rolled back.
func (b *Bijection[L, R]) UpdateRight(other *Bijection[L, R]) error {
	return asAbsolute(update(b.RTL(), other.RTL()), Right)
}

// UpdateRightMap is UpdateRight for a plain right-to-left mapping.
func (b *Bijection[L, R]) UpdateRightMap(m map[R]L) error {
	other, err := FromRTL(m)
	if err != nil {
		return err
	}
	return b.UpdateRight(other)
}

// Conflicts compares b with other without mutating either. The first result
// maps left keys present in both whose right values differ to the
// (b value, other value) pair; the second is the symmetric comparison of
// right keys.
func (b *Bijection[L, R]) Conflicts(other *Bijection[L, R]) (map[L][2]R, map[R][2]L) {
	ltr := make(map[L][2]R)
	rtl := make(map[R][2]L)

	for left, v1 := range b.ltr {
		if v2, ok := other.ltr[left]; ok && v1 != v2 {
			ltr[left] = [2]R{v1, v2}
		}
	}
	for right, v1 := range b.rtl {
		if v2, ok := other.rtl[right]; ok && v1 != v2 {
			rtl[right] = [2]L{v1, v2}
		}
	}
	return ltr, rtl
}

// update merges src into dst through matching directional views: evict every
// key of src from dst first, then insert. Eviction before insertion is what
// gives Update* its replace-on-the-near-side semantics, and is also why a
// failed insertion leaves earlier replacements applied.
func update[F, T comparable](dst, src Map[F, T]) error {
	for key := range src.fwd {
		if err := dst.Delete(key); err != nil && !IsNotFound(err) {
			return err
		}
	}
	for key, val := range src.fwd {
		if err := dst.Set(key, val); err != nil {
			return err
		}
	}
	return nil
}

// asAbsolute reframes a relative *KeyConflict in absolute terms anchored at
// the given side, passing other errors (and nil) through.
func asAbsolute(err error, anchor KeyLoc) error {
	if kc := AsConflict(err); kc != nil {
		return kc.ToAbsolute(anchor)
	}
	return err
}
