// Package tui provides a Bubble Tea replay inspector for duelcore: it steps
// recorded slices into the engine and shows plans and agent state as the
// fight unfolds.
package tui

// History is a bounded list of submitted lines with cursor navigation.
// Re-submitting a line moves it to the newest position.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, 0..len-1 = position in entries
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a line as the newest entry.
func (h *History) Push(line string) {
	for i, e := range h.entries {
		if e == line {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Prev returns the previous (older) entry, or false when empty.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == -1 {
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next returns the next (newer) entry, or false once past the newest.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor stops navigation.
func (h *History) ResetCursor() {
	h.cursor = -1
}
