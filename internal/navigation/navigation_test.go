package navigation

import "testing"

func TestHistory(t *testing.T) {
	t.Parallel()

	h := NewHistory("/posts")
	h.Navigate("/posts/new")
	h.Navigate("/posts")

	if got := h.CurrentPath(); got != "/posts" {
		t.Fatalf("CurrentPath() = %q", got)
	}
	if got := h.Back(); got != "/posts/new" {
		t.Fatalf("Back() = %q", got)
	}
	h.Back()
	if got := h.Back(); got != "/posts" {
		t.Fatalf("Back() on first entry = %q", got)
	}
	if got := len(h.Visited()); got != 1 {
		t.Fatalf("Visited() len = %d", got)
	}
}
