// Package tui provides a Bubble Tea terminal UI that animates the wheel.
package tui

// History keeps the most recent commands for up/down recall.
type History struct {
	buf    []string // ring storage
	head   int      // index of the oldest entry
	n      int      // number of stored entries
	cursor int      // -1 = not navigating, else 0 (oldest) .. n-1 (newest)
}

// NewHistory creates a history that keeps at most size entries.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]string, size), cursor: -1}
}

// Len returns the number of stored entries.
func (h *History) Len() int { return h.n }

// at returns the i-th entry, oldest first.
func (h *History) at(i int) string {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Push records a command. Repeating the newest entry is a no-op; when full
// the oldest entry is overwritten.
func (h *History) Push(cmd string) {
	if h.n > 0 && h.at(h.n-1) == cmd {
		return
	}
	if h.n < len(h.buf) {
		h.buf[(h.head+h.n)%len(h.buf)] = cmd
		h.n++
		return
	}
	h.buf[h.head] = cmd
	h.head = (h.head + 1) % len(h.buf)
}

// Prev steps back to an older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if h.n == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = h.n - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.at(h.cursor), true
}

// Next steps forward. Past the newest entry it returns false and leaves
// navigation, so the caller can restore an empty prompt.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= h.n {
		h.cursor = -1
		return "", false
	}
	return h.at(h.cursor), true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
