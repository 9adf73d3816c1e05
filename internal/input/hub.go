// Package input routes terminal key events to whichever views are currently
// mounted. The root model owns a single Hub and forwards every key message
// to it; views register handlers while they are active.
package input

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Handler consumes a key event and reports whether it handled it.
type Handler func(msg tea.KeyMsg) bool

// Hub is the application-wide key dispatcher.
type Hub struct {
	mu       sync.Mutex
	next     uint64
	handlers map[uint64]Handler
	order    []uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{handlers: make(map[uint64]Handler)}
}

// Register installs h and returns the function that removes it. The release
// function is safe to call more than once.
func (h *Hub) Register(fn Handler) (release func()) {
	h.mu.Lock()
	h.next++
	id := h.next
	h.handlers[id] = fn
	h.order = append(h.order, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.handlers, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Dispatch offers msg to handlers, most recently registered first, and stops
// at the first one that handles it.
func (h *Hub) Dispatch(msg tea.KeyMsg) bool {
	h.mu.Lock()
	fns := make([]Handler, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		fns = append(fns, h.handlers[h.order[i]])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		if fn(msg) {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}
