package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_AtBottom(t *testing.T) {
	tbl := []struct {
		name string
		v    Viewport
		want bool
	}{
		{"top of long page", Viewport{ScrollTop: 0, ClientHeight: 800, ScrollHeight: 3000}, false},
		{"exact bottom", Viewport{ScrollTop: 2200, ClientHeight: 800, ScrollHeight: 3000}, true},
		{"fractional bottom rounds up", Viewport{ScrollTop: 2199.4, ClientHeight: 800, ScrollHeight: 3000}, true},
		{"just above", Viewport{ScrollTop: 2198.9, ClientHeight: 800, ScrollHeight: 3000}, false},
		{"content shorter than screen", Viewport{ScrollTop: 0, ClientHeight: 800, ScrollHeight: 300}, true},
		{"overscroll", Viewport{ScrollTop: 2300, ClientHeight: 800, ScrollHeight: 3000}, true},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.AtBottom())
		})
	}
}

func TestScrollEvents(t *testing.T) {
	events := NewScrollEvents()
	var got []string

	removeA := events.Listen(func(v Viewport) { got = append(got, "a") })
	removeB := events.Listen(func(v Viewport) { got = append(got, "b") })
	assert.Equal(t, 2, events.Len())

	events.Dispatch(Viewport{})
	assert.Equal(t, []string{"a", "b"}, got)

	removeA()
	removeA() // idempotent
	assert.Equal(t, 1, events.Len())

	got = nil
	events.Dispatch(Viewport{})
	assert.Equal(t, []string{"b"}, got)

	removeB()
	got = nil
	events.Dispatch(Viewport{})
	assert.Empty(t, got)
	assert.Equal(t, 0, events.Len())
}
