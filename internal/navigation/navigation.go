package navigation

import "sync"

type Navigator interface {
	Navigate(path string)
	CurrentPath() string
}

// History is an in-memory router keeping the visited paths.
type History struct {
	mu    sync.Mutex
	stack []string
}

func NewHistory(start string) *History {
	return &History{stack: []string{start}}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stack = append(h.stack, path)
}

func (h *History) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.stack[len(h.stack)-1]
}

// Back drops the current entry. The first entry is never dropped.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
	}
	return h.stack[len(h.stack)-1]
}

// Visited returns a copy of every path navigated to, oldest first.
func (h *History) Visited() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.stack))
	copy(out, h.stack)
	return out
}
