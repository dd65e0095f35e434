package flags

import (
	"errors"
	"fmt"
)

// ErrNotCounter is returned by TickUp when the identifier is a simple flag.
var ErrNotCounter = errors.New("not a counter")

// MaxCount is the saturation point for counters.
const MaxCount = 255

// Store holds one agent's afflictions and defenses. It is a flat value
// type: copying a Store with = produces an independent copy.
// The simple array spans the whole FType domain so that no identifier,
// valid or not, can index out of range.
type Store struct {
	simple [idSpace]bool
	counts [NumCounters]uint8
}

// IsSet reports whether the identifier is present. A counter is present
// when its magnitude is above zero.
func (s *Store) IsSet(id FType) bool {
	if i := counterIndex[id]; i >= 0 {
		return s.counts[i] > 0
	}
	return s.simple[id]
}

// Count returns the magnitude of a counter, or 1/0 for a simple flag.
func (s *Store) Count(id FType) uint8 {
	if i := counterIndex[id]; i >= 0 {
		return s.counts[i]
	}
	if s.simple[id] {
		return 1
	}
	return 0
}

// Set marks the identifier present or absent. Setting a counter present
// raises it to at least 1; clearing it resets the magnitude to 0.
func (s *Store) Set(id FType, value bool) {
	if i := counterIndex[id]; i >= 0 {
		switch {
		case !value:
			s.counts[i] = 0
		case s.counts[i] == 0:
			s.counts[i] = 1
		}
		return
	}
	s.simple[id] = value
}

// SetCount stores an explicit magnitude. On a simple flag any non-zero
// value sets it.
func (s *Store) SetCount(id FType, n uint8) {
	if i := counterIndex[id]; i >= 0 {
		s.counts[i] = n
		return
	}
	s.simple[id] = n > 0
}

// TickUp increments a counter by one, saturating at MaxCount.
func (s *Store) TickUp(id FType) error {
	i := counterIndex[id]
	if i < 0 {
		return fmt.Errorf("tick up %s: %w", id, ErrNotCounter)
	}
	if s.counts[i] < MaxCount {
		s.counts[i]++
	}
	return nil
}

// TickDown decrements a counter by one, stopping at zero.
func (s *Store) TickDown(id FType) error {
	i := counterIndex[id]
	if i < 0 {
		return fmt.Errorf("tick down %s: %w", id, ErrNotCounter)
	}
	if s.counts[i] > 0 {
		s.counts[i]--
	}
	return nil
}

// Afflictions returns every present non-defense identifier in
// enumeration order.
func (s *Store) Afflictions() []FType {
	var out []FType
	for id := lastDefense + 1; id < NumFlags; id++ {
		if s.IsSet(id) {
			out = append(out, id)
		}
	}
	return out
}

// Defenses returns every present defense in enumeration order.
func (s *Store) Defenses() []FType {
	var out []FType
	for id := FType(0); id <= lastDefense; id++ {
		if s.IsSet(id) {
			out = append(out, id)
		}
	}
	return out
}

// AfflictionCount returns the number of present afflictions; counters
// contribute one each regardless of magnitude.
func (s *Store) AfflictionCount() int {
	n := 0
	for id := lastDefense + 1; id < NumFlags; id++ {
		if s.IsSet(id) {
			n++
		}
	}
	return n
}
