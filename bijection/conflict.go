package bijection

import "fmt"

// KeyConflict is returned when a mutation would break the one-to-one
// invariant of a Bijection.
//
// Pair holds the (from, to) keys of the attempted assignment when the
// conflict is framed relative to a directional view, or the (left, right)
// keys when framed absolutely. Side identifies which side of the pair
// already existed with a different value, and Current is that pre-existing
// value. The same conflict can be reframed losslessly between the two
// interpretations as it propagates up through composed operations.
type KeyConflict struct {
	Pair    [2]any
	Side    KeyLoc
	Current any
}

func (e *KeyConflict) Error() string {
	return fmt.Sprintf("bijection: conflict on %s side of pair (%v, %v): key already mapped with %v",
		e.Side, e.Pair[0], e.Pair[1], e.Current)
}

// ToAbsolute reframes a relative conflict as an absolute one, given the
// absolute side the originating view reads from. Conflicts that are already
// absolute are returned unchanged. Panics if anchor is not absolute.
func (e *KeyConflict) ToAbsolute(anchor KeyLoc) *KeyConflict {
	checkAnchor(anchor)
	if !e.Side.Relative() {
		return e
	}
	return &KeyConflict{
		Pair:    orientPair(e.Pair, anchor),
		Side:    e.Side.ToAbsolute(anchor),
		Current: e.Current,
	}
}

// ToRelative reframes an absolute conflict relative to the given anchor
// side. Conflicts that are already relative are returned unchanged.
// Panics if anchor is not absolute.
func (e *KeyConflict) ToRelative(anchor KeyLoc) *KeyConflict {
	checkAnchor(anchor)
	if e.Side.Relative() {
		return e
	}
	return &KeyConflict{
		Pair:    orientPair(e.Pair, anchor),
		Side:    e.Side.ToRelative(anchor),
		Current: e.Current,
	}
}

// orientPair swaps the pair when the anchor is Right, so that a
// (from, to) pair becomes (left, right) and vice versa.
func orientPair(pair [2]any, anchor KeyLoc) [2]any {
	if anchor == Right {
		return [2]any{pair[1], pair[0]}
	}
	return pair
}
