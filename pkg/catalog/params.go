package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared by every surface that reads or writes Params.
const (
	QueryType = "type"
	QueryPage = "page"
)

// Params is the navigable listing state: the selected categories and the
// 1-based page number.
type Params struct {
	// Categories is an ordered set; insertion order is kept for display.
	Categories []string
	Page       int
}

// ParseParams reads Params from URL query values. A missing or malformed
// page defaults to 1; category names are trimmed, empty names and
// duplicates are dropped.
func ParseParams(q url.Values) Params {
	p := Params{Page: 1}

	if raw := q.Get(QueryType); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" || p.Has(name) {
				continue
			}
			p.Categories = append(p.Categories, name)
		}
	}

	if raw := q.Get(QueryPage); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			p.Page = n
		}
	}

	return p
}

// Query encodes p back into URL query values. The type parameter is omitted
// for an unfiltered listing.
func (p Params) Query() url.Values {
	q := url.Values{}
	if len(p.Categories) > 0 {
		q.Set(QueryType, strings.Join(p.Categories, ","))
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set(QueryPage, strconv.Itoa(page))
	return q
}

// Filtered reports whether at least one category is selected.
func (p Params) Filtered() bool {
	return len(p.Categories) > 0
}

// Has reports whether name is selected.
func (p Params) Has(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Toggle selects name, or deselects it when already selected. The page is
// reset to 1 either way.
func (p Params) Toggle(name string) Params {
	out := Params{Page: 1}
	if p.Has(name) {
		for _, c := range p.Categories {
			if c != name {
				out.Categories = append(out.Categories, c)
			}
		}
		return out
	}
	out.Categories = append(append([]string(nil), p.Categories...), name)
	return out
}

// WithPage returns p pointing at page n.
func (p Params) WithPage(n int) Params {
	p.Categories = append([]string(nil), p.Categories...)
	p.Page = n
	return p
}

// Equal reports whether p and o describe the same listing.
func (p Params) Equal(o Params) bool {
	if p.Page != o.Page || len(p.Categories) != len(o.Categories) {
		return false
	}
	for i := range p.Categories {
		if p.Categories[i] != o.Categories[i] {
			return false
		}
	}
	return true
}
