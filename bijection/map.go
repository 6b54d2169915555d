package bijection

import "fmt"

// Map is one directional view of a Bijection. It is a lightweight handle
// over the bijection's own maps, so mutations through a view are observable
// through the other view and the pair surface with no intermediate state.
//
// Set and Delete are the only mutation primitives in the package; every
// other mutating operation goes through them.
type Map[F, T comparable] struct {
	fwd map[F]T
	rev map[T]F
}

// Len returns the number of entries.
func (m Map[F, T]) Len() int {
	return len(m.fwd)
}

// Get returns the value mapped from key.
func (m Map[F, T]) Get(key F) (T, bool) {
	val, ok := m.fwd[key]
	return val, ok
}

// Has reports whether key is present on this side.
func (m Map[F, T]) Has(key F) bool {
	_, ok := m.fwd[key]
	return ok
}

// Keys returns all keys on this side, in no particular order.
func (m Map[F, T]) Keys() []F {
	keys := make([]F, 0, len(m.fwd))
	for k := range m.fwd {
		keys = append(keys, k)
	}
	return keys
}

// Items returns a copy of the view as a plain map.
func (m Map[F, T]) Items() map[F]T {
	items := make(map[F]T, len(m.fwd))
	for k, v := range m.fwd {
		items[k] = v
	}
	return items
}

// Set assigns key -> val, inserting into both directions atomically.
// Re-assigning an existing entry to the same value is a no-op. If key is
// already mapped to a different value the conflict is framed on the To
// side; if val is already mapped from a different key it is framed on the
// From side. The conflict's Current field carries the pre-existing value.
func (m Map[F, T]) Set(key F, val T) error {
	if cur, ok := m.fwd[key]; ok {
		if cur != val {
			return &KeyConflict{Pair: [2]any{key, val}, Side: To, Current: cur}
		}
		return nil
	}
	if cur, ok := m.rev[val]; ok {
		if cur != key {
			return &KeyConflict{Pair: [2]any{key, val}, Side: From, Current: cur}
		}
		return nil
	}

	m.fwd[key] = val
	m.rev[val] = key
	return nil
}

// Delete removes key and its paired counterpart from both directions.
// Returns ErrNotFound if key is absent.
func (m Map[F, T]) Delete(key F) error {
	val, ok := m.fwd[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	delete(m.fwd, key)
	delete(m.rev, val)
	return nil
}
