package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{name: "empty", query: "", want: Params{Page: 1}},
		{name: "page only", query: "page=3", want: Params{Page: 3}},
		{name: "single type", query: "type=fire", want: Params{Categories: []string{"fire"}, Page: 1}},
		{name: "multiple types", query: "type=fire,flying&page=2", want: Params{Categories: []string{"fire", "flying"}, Page: 2}},
		{name: "empty type value", query: "type=&page=1", want: Params{Page: 1}},
		{name: "blank and duplicate names", query: "type=fire,,+fire,water", want: Params{Categories: []string{"fire", "water"}, Page: 1}},
		{name: "invalid page", query: "page=abc", want: Params{Page: 1}},
		{name: "zero page", query: "page=0", want: Params{Page: 1}},
		{name: "negative page", query: "page=-4", want: Params{Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseParams(q))
		})
	}
}

func TestParams_Query(t *testing.T) {
	assert.Equal(t, "page=1", Params{}.Query().Encode())
	assert.Equal(t, "page=4", Params{Page: 4}.Query().Encode())
	assert.Equal(t, "page=2&type=fire%2Cflying", Params{Categories: []string{"fire", "flying"}, Page: 2}.Query().Encode())
}

func TestParams_Toggle(t *testing.T) {
	p := Params{Page: 5}

	p = p.Toggle("fire")
	assert.Equal(t, Params{Categories: []string{"fire"}, Page: 1}, p)

	p = p.WithPage(3).Toggle("flying")
	assert.Equal(t, Params{Categories: []string{"fire", "flying"}, Page: 1}, p)

	p = p.WithPage(2).Toggle("fire")
	assert.Equal(t, Params{Categories: []string{"flying"}, Page: 1}, p)

	p = p.Toggle("flying")
	assert.False(t, p.Filtered())
	assert.Equal(t, 1, p.Page)
}

func TestParams_ToggleDoesNotAlias(t *testing.T) {
	base := Params{Categories: make([]string, 1, 4), Page: 1}
	base.Categories[0] = "fire"

	a := base.Toggle("water")
	b := base.Toggle("grass")

	assert.Equal(t, []string{"fire", "water"}, a.Categories)
	assert.Equal(t, []string{"fire", "grass"}, b.Categories)
}

func TestParams_Equal(t *testing.T) {
	a := Params{Categories: []string{"fire"}, Page: 2}
	assert.True(t, a.Equal(Params{Categories: []string{"fire"}, Page: 2}))
	assert.False(t, a.Equal(Params{Categories: []string{"fire"}, Page: 3}))
	assert.False(t, a.Equal(Params{Categories: []string{"water"}, Page: 2}))
	assert.False(t, a.Equal(Params{Page: 2}))
}

func TestItemDetail_Resolved(t *testing.T) {
	d := StubDetail(ItemStub{Name: "bulbasaur"})
	assert.False(t, d.Resolved())

	d.ImageURL = "https://img.test/1.png"
	assert.True(t, d.Resolved())

	page := ListingPage{Items: []ItemStub{{Name: "a"}, {Name: "b"}}}
	details := page.Details()
	assert.Len(t, details, 2)
	assert.Equal(t, "b", details[1].Name)
	assert.False(t, details[0].Resolved())
}
