// Package catalog holds the data model of the creature catalog and the
// category intersection filter.
package catalog

// PageSize is the fixed number of items on one listing page.
const PageSize = 24

// Category is one filterable category ("type") of the upstream API.
type Category struct {
	// ID is the ordinal position of the category in the upstream list.
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ItemStub is a list entry: the item name and the URL of its detail record.
// Name is unique within one listing page.
type ItemStub struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ItemDetail is an item enriched with its image and tags.
type ItemDetail struct {
	ItemStub
	ImageURL string   `json:"imageUrl,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// StubDetail returns the unresolved placeholder for stub.
func StubDetail(stub ItemStub) ItemDetail {
	return ItemDetail{ItemStub: stub}
}

// Resolved reports whether the detail record has been fetched.
// Tags may legitimately be empty on a resolved item.
func (d ItemDetail) Resolved() bool {
	return d.ImageURL != ""
}

// Clone returns a copy that shares no slices with d.
func (d ItemDetail) Clone() ItemDetail {
	if d.Tags != nil {
		d.Tags = append([]string(nil), d.Tags...)
	}
	return d
}

// ItemPage is one page of the unfiltered upstream listing.
type ItemPage struct {
	Items []ItemStub
	Count int
}

// ListingPage is the resolved listing for a set of Params.
type ListingPage struct {
	Params     Params
	Items      []ItemStub
	Total      int
	TotalPages int
}

// Details returns the page items as unresolved details, index for index.
func (p ListingPage) Details() []ItemDetail {
	out := make([]ItemDetail, len(p.Items))
	for i, stub := range p.Items {
		out[i] = StubDetail(stub)
	}
	return out
}
