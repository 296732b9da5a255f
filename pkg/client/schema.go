package client

import (
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
)

// Response schemas of the upstream endpoints. Pointer fields distinguish an
// absent field from a zero value; validate turns absence into an
// UpstreamSchemaError.

type namedResource struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

func (r *namedResource) stub(endpoint, path string) (catalog.ItemStub, error) {
	if r == nil {
		return catalog.ItemStub{}, schemaError(endpoint, path)
	}
	if r.Name == nil || *r.Name == "" {
		return catalog.ItemStub{}, schemaError(endpoint, path+".name")
	}
	if r.URL == nil || *r.URL == "" {
		return catalog.ItemStub{}, schemaError(endpoint, path+".url")
	}
	return catalog.ItemStub{Name: *r.Name, URL: *r.URL}, nil
}

// GET /type
type typeListResponse struct {
	Results []*namedResource `json:"results"`
}

func (r *typeListResponse) categories(endpoint string) ([]catalog.Category, error) {
	if r.Results == nil {
		return nil, schemaError(endpoint, "results")
	}
	out := make([]catalog.Category, 0, len(r.Results))
	for i, res := range r.Results {
		stub, err := res.stub(endpoint, fmt.Sprintf("results[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Category{ID: i, Name: stub.Name, URL: stub.URL})
	}
	return out, nil
}

// GET /type/{name}
type typeResponse struct {
	Pokemon []*struct {
		Pokemon *namedResource `json:"pokemon"`
	} `json:"pokemon"`
}

func (r *typeResponse) members(endpoint string) ([]catalog.ItemStub, error) {
	if r.Pokemon == nil {
		return nil, schemaError(endpoint, "pokemon")
	}
	out := make([]catalog.ItemStub, 0, len(r.Pokemon))
	for i, slot := range r.Pokemon {
		path := fmt.Sprintf("pokemon[%d]", i)
		if slot == nil {
			return nil, schemaError(endpoint, path)
		}
		stub, err := slot.Pokemon.stub(endpoint, path+".pokemon")
		if err != nil {
			return nil, err
		}
		out = append(out, stub)
	}
	return out, nil
}

// GET /pokemon?limit=&offset=
type pokemonListResponse struct {
	Results []*namedResource `json:"results"`
	Count   *int             `json:"count"`
}

func (r *pokemonListResponse) page(endpoint string) (catalog.ItemPage, error) {
	if r.Count == nil {
		return catalog.ItemPage{}, schemaError(endpoint, "count")
	}
	if r.Results == nil {
		return catalog.ItemPage{}, schemaError(endpoint, "results")
	}
	items := make([]catalog.ItemStub, 0, len(r.Results))
	for i, res := range r.Results {
		stub, err := res.stub(endpoint, fmt.Sprintf("results[%d]", i))
		if err != nil {
			return catalog.ItemPage{}, err
		}
		items = append(items, stub)
	}
	return catalog.ItemPage{Items: items, Count: *r.Count}, nil
}

// GET {detail-url}
type pokemonResponse struct {
	Sprites *struct {
		Other *struct {
			OfficialArtwork *struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []*struct {
		Type *struct {
			Name *string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

func (r *pokemonResponse) detail(endpoint string, stub catalog.ItemStub) (catalog.ItemDetail, error) {
	switch {
	case r.Sprites == nil:
		return catalog.ItemDetail{}, schemaError(endpoint, "sprites")
	case r.Sprites.Other == nil:
		return catalog.ItemDetail{}, schemaError(endpoint, "sprites.other")
	case r.Sprites.Other.OfficialArtwork == nil:
		return catalog.ItemDetail{}, schemaError(endpoint, "sprites.other.official-artwork")
	case r.Sprites.Other.OfficialArtwork.FrontDefault == nil || *r.Sprites.Other.OfficialArtwork.FrontDefault == "":
		return catalog.ItemDetail{}, schemaError(endpoint, "sprites.other.official-artwork.front_default")
	case r.Types == nil:
		return catalog.ItemDetail{}, schemaError(endpoint, "types")
	}

	tags := make([]string, 0, len(r.Types))
	for i, slot := range r.Types {
		if slot == nil || slot.Type == nil || slot.Type.Name == nil {
			return catalog.ItemDetail{}, schemaError(endpoint, fmt.Sprintf("types[%d].type.name", i))
		}
		tags = append(tags, *slot.Type.Name)
	}

	return catalog.ItemDetail{
		ItemStub: stub,
		ImageURL: *r.Sprites.Other.OfficialArtwork.FrontDefault,
		Tags:     tags,
	}, nil
}
