package bijection

import "errors"

// ErrNotFound is returned when deleting or discarding a key or pair that is
// not a member of the bijection.
var ErrNotFound = errors.New("bijection: key not found")

// IsNotFound returns true if err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsConflict extracts a *KeyConflict from err, or returns nil if err does
// not wrap one.
func AsConflict(err error) *KeyConflict {
	var kc *KeyConflict
	if errors.As(err, &kc) {
		return kc
	}
	return nil
}
