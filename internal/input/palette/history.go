package palette

import (
	"slices"
	"sync"
)

// DefaultHistorySize is the number of commands a History keeps when no
// positive size is given.
const DefaultHistorySize = 50

// History tracks recently run commands, most recent first.
type History struct {
	mu    sync.Mutex
	names []string
	max   int
}

// NewHistory creates a history holding at most size names.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		names: make([]string, 0, size),
		max:   size,
	}
}

// Add moves name to the front, inserting it if needed.
func (h *History) Add(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.names, name); i >= 0 {
		h.names = slices.Delete(h.names, i, i+1)
	}
	h.names = slices.Insert(h.names, 0, name)
	if len(h.names) > h.max {
		h.names = h.names[:h.max]
	}
}

// Recent returns up to limit names, most recent first. A limit of zero or
// less returns all of them.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.names) {
		limit = len(h.names)
	}
	return slices.Clone(h.names[:limit])
}

// Position returns the index of name, 0 being the most recent, or -1.
func (h *History) Position(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.names, name)
}

// Len returns the number of names held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.names)
}

// Clear forgets every name.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.names = h.names[:0]
}
