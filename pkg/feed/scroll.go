package feed

import (
	"math"
	"sort"
	"sync"
)

// Viewport describes the scroll position of the rendered feed
type Viewport struct {
	ScrollTop    float64
	ClientHeight float64
	ScrollHeight float64
}

// AtBottom reports whether the visible area reached the end of the content
func (v Viewport) AtBottom() bool {
	return math.Ceil(v.ScrollTop+v.ClientHeight) >= v.ScrollHeight
}

// ScrollEvents dispatches scroll events to registered listeners
type ScrollEvents struct {
	mu        sync.Mutex
	listeners map[int]func(Viewport)
	nextID    int
}

// NewScrollEvents makes an empty scroll event source
func NewScrollEvents() *ScrollEvents {
	return &ScrollEvents{listeners: map[int]func(Viewport){}}
}

// Listen registers fn and returns the function removing it. Remove is idempotent.
func (s *ScrollEvents) Listen(fn func(Viewport)) (remove func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Dispatch delivers a scroll event to all listeners in registration order
func (s *ScrollEvents) Dispatch(v Viewport) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Viewport), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of registered listeners
func (s *ScrollEvents) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
