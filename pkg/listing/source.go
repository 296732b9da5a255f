// Package listing resolves catalog listings and drives navigation over
// them. Source is the shared list resolution; Controller is the
// client-driven variant that resolves details in batches after the list is
// shown, Prerenderer the server-side variant that resolves the list before
// responding.
package listing

import (
	"context"
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/metrics"
	"github.com/Sternrassler/pokedex-catalog/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for listing navigation.
var (
	navigationsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_listing_navigations_total",
		Help: "Listing navigations by variant (client, prerender)",
	}, []string{"variant"})

	staleDiscardsTotal = promauto.With(metrics.Registry).NewCounter(prometheus.CounterOpts{
		Name: "catalog_listing_stale_discards_total",
		Help: "Results discarded because a newer navigation had started",
	})
)

// Upstream is the part of the upstream API the listing relies on.
// Detail looks a stub without URL up by name.
type Upstream interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	Members(ctx context.Context, category string) ([]catalog.ItemStub, error)
	Items(ctx context.Context, limit, offset int) (catalog.ItemPage, error)
	Detail(ctx context.Context, stub catalog.ItemStub) (catalog.ItemDetail, error)
}

// Source resolves one listing page for a set of Params. Both listing
// variants go through Page, so equal Params yield equal pages.
type Source struct {
	upstream Upstream
}

// NewSource creates a Source over upstream.
func NewSource(upstream Upstream) *Source {
	return &Source{upstream: upstream}
}

// Page resolves the listing page described by params. A page past the end
// is clamped to the last page; the returned Params carry the clamped page.
func (s *Source) Page(ctx context.Context, params catalog.Params) (catalog.ListingPage, error) {
	params = params.WithPage(max(params.Page, 1))

	if params.Filtered() {
		return s.filteredPage(ctx, params)
	}
	return s.unfilteredPage(ctx, params)
}

func (s *Source) filteredPage(ctx context.Context, params catalog.Params) (catalog.ListingPage, error) {
	members, err := catalog.FilterByCategories(ctx, s.upstream, params.Categories)
	if err != nil {
		return catalog.ListingPage{}, fmt.Errorf("filter listing: %w", err)
	}

	totalPages := pagination.TotalPages(len(members))
	params.Page = pagination.Clamp(params.Page, totalPages)

	return catalog.ListingPage{
		Params:     params,
		Items:      append([]catalog.ItemStub(nil), pagination.Window(members, params.Page)...),
		Total:      len(members),
		TotalPages: totalPages,
	}, nil
}

func (s *Source) unfilteredPage(ctx context.Context, params catalog.Params) (catalog.ListingPage, error) {
	page, err := s.upstream.Items(ctx, catalog.PageSize, pagination.Offset(params.Page))
	if err != nil {
		return catalog.ListingPage{}, fmt.Errorf("list page %d: %w", params.Page, err)
	}

	totalPages := pagination.TotalPages(page.Count)
	if params.Page > totalPages {
		log.Debug().
			Int("page", params.Page).
			Int("total_pages", totalPages).
			Msg("Requested page past the end, clamping")

		params.Page = totalPages
		page, err = s.upstream.Items(ctx, catalog.PageSize, pagination.Offset(params.Page))
		if err != nil {
			return catalog.ListingPage{}, fmt.Errorf("list page %d: %w", params.Page, err)
		}
		totalPages = pagination.TotalPages(page.Count)
	}

	items := page.Items
	if len(items) > catalog.PageSize {
		items = items[:catalog.PageSize]
	}

	return catalog.ListingPage{
		Params:     params,
		Items:      items,
		Total:      page.Count,
		TotalPages: totalPages,
	}, nil
}
