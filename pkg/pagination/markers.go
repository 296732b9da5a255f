package pagination

import (
	"strconv"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
)

// Radius is the number of pages shown on each side of the current page.
const Radius = 2

// Marker is one entry of a page-number strip: a page number, or an
// ellipsis standing for a run of two or more hidden pages.
type Marker struct {
	// Page is the 1-based page number, 0 for an ellipsis.
	Page int `json:"page"`
}

// Ellipsis reports whether m stands for hidden pages.
func (m Marker) Ellipsis() bool {
	return m.Page == 0
}

// String renders the marker the way the UI shows it.
func (m Marker) String() string {
	if m.Ellipsis() {
		return "..."
	}
	return strconv.Itoa(m.Page)
}

// Markers builds the page-number strip for current out of total pages.
//
// The first and last page are always present, as is every page within
// Radius of current. A single hidden page is shown instead of being
// replaced by an ellipsis; longer gaps collapse into one ellipsis.
// current is expected to be clamped by the caller.
func Markers(current, total int) []Marker {
	if total < 1 {
		total = 1
	}

	pages := make([]int, 0, 2*Radius+3)
	for i := 1; i <= total; i++ {
		if i == 1 || i == total || (i >= current-Radius && i <= current+Radius) {
			pages = append(pages, i)
		}
	}

	out := make([]Marker, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if prev > 0 {
			switch gap := p - prev; {
			case gap == 2:
				out = append(out, Marker{Page: prev + 1})
			case gap > 2:
				out = append(out, Marker{})
			}
		}
		out = append(out, Marker{Page: p})
		prev = p
	}
	return out
}

// TotalPages returns the number of pages needed for count items. An empty
// listing still has one (empty) page.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + catalog.PageSize - 1) / catalog.PageSize
}

// Clamp forces page into [1, total].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Offset returns the index of the first item of page.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * catalog.PageSize
}

// Window returns the items of page out of the full list.
func Window[T any](items []T, page int) []T {
	start := Offset(page)
	if start >= len(items) {
		return []T{}
	}
	end := start + catalog.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasPrev reports whether a previous-page control is available.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a next-page control is available.
func HasNext(page, total int) bool {
	return page < total
}
