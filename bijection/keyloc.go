package bijection

import "fmt"

// KeyLoc identifies one side of a key pair in a Bijection.
//
// A side can be named absolutely (Left/Right) or relative to one of the
// two directional map views (From/To). A conflict raised by a directional
// view is framed relative to that view; it can be reframed in absolute
// terms once the direction it came from is known.
type KeyLoc uint8

const (
	// Left is the left side of a pair (absolute).
	Left KeyLoc = iota
	// Right is the right side of a pair (absolute).
	Right
	// From is the source side of a directional view (relative).
	From
	// To is the destination side of a directional view (relative).
	To
)

const relativeBit = 2

// Relative reports whether the location is relative (From/To) rather than
// absolute (Left/Right).
func (l KeyLoc) Relative() bool {
	return l&relativeBit != 0
}

// checkAnchor panics unless anchor is Left or Right. Passing a relative
// location as an anchor is a contract violation by the caller, never a
// recoverable condition.
func checkAnchor(anchor KeyLoc) {
	if anchor != Left && anchor != Right {
		panic(fmt.Sprintf("bijection: anchor must be Left or Right, got %v", anchor))
	}
}

// ToAbsolute converts a relative location to an absolute one, interpreting
// From as the anchor side. Absolute locations are returned unchanged.
// Panics if anchor is not absolute.
func (l KeyLoc) ToAbsolute(anchor KeyLoc) KeyLoc {
	checkAnchor(anchor)
	if !l.Relative() {
		return l
	}
	return (l &^ relativeBit) ^ anchor
}

// ToRelative converts an absolute location to one relative to the anchor
// side, so that anchor itself becomes From. Relative locations are returned
// unchanged. Panics if anchor is not absolute.
func (l KeyLoc) ToRelative(anchor KeyLoc) KeyLoc {
	checkAnchor(anchor)
	if l.Relative() {
		return l
	}
	return (l ^ anchor) | relativeBit
}

// Flip returns the opposite location on the same axis:
// Left<->Right, From<->To.
func (l KeyLoc) Flip() KeyLoc {
	return l ^ 1
}

func (l KeyLoc) String() string {
	switch l {
	case Left:
		return "left"
	case Right:
		return "right"
	case From:
		return "from"
	case To:
		return "to"
	default:
		return fmt.Sprintf("KeyLoc(%d)", uint8(l))
	}
}
