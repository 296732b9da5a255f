package pagination

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(markers []Marker) string {
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "single page", current: 1, total: 1, want: "1"},
		{name: "middle of ten", current: 5, total: 10, want: "1 2 3 4 5 6 7 ... 10"},
		{name: "first of five", current: 1, total: 5, want: "1 2 3 4 5"},
		{name: "last of five", current: 5, total: 5, want: "1 2 3 4 5"},
		{name: "first of ten", current: 1, total: 10, want: "1 2 3 ... 10"},
		{name: "last of ten", current: 10, total: 10, want: "1 ... 8 9 10"},
		{name: "single gap filled at start", current: 5, total: 9, want: "1 2 3 4 5 6 7 8 9"},
		{name: "single gap filled at end", current: 4, total: 8, want: "1 2 3 4 5 6 7 8"},
		{name: "gap of two collapses", current: 6, total: 12, want: "1 ... 4 5 6 7 8 ... 12"},
		{name: "two pages", current: 2, total: 2, want: "1 2"},
		{name: "zero total treated as one", current: 1, total: 0, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(Markers(tt.current, tt.total)))
		})
	}
}

func TestMarkers_Invariants(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			markers := Markers(current, total)

			assert.Equal(t, 1, markers[0].Page, "first marker must be page 1")
			assert.Equal(t, total, markers[len(markers)-1].Page, "last marker must be the last page")

			prev := 0
			for i, m := range markers {
				if m.Ellipsis() {
					assert.False(t, markers[i-1].Ellipsis(), "consecutive ellipses")
					assert.GreaterOrEqual(t, markers[i+1].Page-markers[i-1].Page, 3, "ellipsis must hide at least two pages")
					continue
				}
				if prev > 0 && !markers[i-1].Ellipsis() {
					assert.Equal(t, prev+1, m.Page, "pages must be consecutive without ellipsis")
				}
				prev = m.Page
			}

			for p := current - Radius; p <= current+Radius; p++ {
				if p < 1 || p > total {
					continue
				}
				found := false
				for _, m := range markers {
					if m.Page == p {
						found = true
					}
				}
				assert.True(t, found, "page %d within radius of %d missing (total %d)", p, current, total)
			}
		}
	}
}

func TestMarker_String(t *testing.T) {
	assert.Equal(t, "...", Marker{}.String())
	assert.True(t, Marker{}.Ellipsis())
	assert.Equal(t, "7", Marker{Page: 7}.String())
	assert.False(t, Marker{Page: 7}.Ellipsis())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{count: 100, want: 5},
		{count: 96, want: 4},
		{count: 97, want: 5},
		{count: 24, want: 1},
		{count: 1, want: 1},
		{count: 0, want: 1},
		{count: 1302, want: 55},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count), "count=%d", tt.count)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 5))
	assert.Equal(t, 1, Clamp(-3, 5))
	assert.Equal(t, 3, Clamp(3, 5))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 1, Clamp(4, 0))
}

func TestWindow(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	first := Window(items, 1)
	assert.Len(t, first, 24)
	assert.Equal(t, 0, first[0])

	second := Window(items, 2)
	assert.Len(t, second, 24)
	assert.Equal(t, 24, second[0])

	last := Window(items, 3)
	assert.Equal(t, []int{48, 49}, last)

	assert.Empty(t, Window(items, 4))
	assert.Equal(t, 0, Offset(0))
	assert.Equal(t, 48, Offset(3))
}

func TestBoundaries(t *testing.T) {
	assert.False(t, HasPrev(1))
	assert.True(t, HasPrev(2))
	assert.True(t, HasNext(1, 5))
	assert.False(t, HasNext(5, 5))
	assert.False(t, HasNext(1, 1))
}
