package listing

import (
	"context"
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/pagination"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// View is a listing resolved ahead of rendering. Items are unresolved
// stubs; the page resolves them after the first paint.
type View struct {
	Params     catalog.Params
	Categories []catalog.Category
	Items      []catalog.ItemDetail
	Total      int
	TotalPages int
	Markers    []pagination.Marker
	HasPrev    bool
	HasNext    bool

	// CategoriesErr and ListingErr record degraded parts of the view.
	CategoriesErr error
	ListingErr    error
}

// Prerenderer is the server-side listing variant: categories and the list
// are resolved before the response is written.
type Prerenderer struct {
	upstream Upstream
	source   *Source
	details  *pagination.BatchFetcher
	logger   zerolog.Logger
}

// NewPrerenderer creates a prerenderer over upstream.
func NewPrerenderer(upstream Upstream, batch pagination.Config) *Prerenderer {
	return &Prerenderer{
		upstream: upstream,
		source:   NewSource(upstream),
		details:  pagination.NewBatchFetcher(upstream, batch),
		logger:   logging.NewLogger(logging.ComponentPrerender),
	}
}

// Render resolves the categories and the listing for params. Failures
// degrade to an empty category list or an empty listing and never fail
// the render.
func (p *Prerenderer) Render(ctx context.Context, params catalog.Params) View {
	navigationsTotal.WithLabelValues("prerender").Inc()

	var (
		categories []catalog.Category
		page       catalog.ListingPage
		catErr     error
		listErr    error
	)

	// A plain Group does not cancel the sibling, so either part survives
	// the failure of the other.
	var g errgroup.Group
	g.Go(func() error {
		categories, catErr = p.upstream.Categories(ctx)
		return catErr
	})
	g.Go(func() error {
		page, listErr = p.source.Page(ctx, params)
		return listErr
	})

	if err := g.Wait(); err != nil {
		if catErr != nil {
			p.logger.Warn().Err(catErr).Msg("Category list unavailable")
			categories = nil
		}
		if listErr != nil {
			p.logger.Error().
				Err(listErr).
				Strs("categories", params.Categories).
				Int("page", params.Page).
				Msg("Listing fetch failed")
			page = catalog.ListingPage{
				Params:     params.WithPage(1),
				TotalPages: 1,
			}
		}
	}

	cur := page.Params.Page
	return View{
		Params:        page.Params,
		Categories:    categories,
		Items:         page.Details(),
		Total:         page.Total,
		TotalPages:    page.TotalPages,
		Markers:       pagination.Markers(cur, page.TotalPages),
		HasPrev:       pagination.HasPrev(cur),
		HasNext:       pagination.HasNext(cur, page.TotalPages),
		CategoriesErr: catErr,
		ListingErr:    listErr,
	}
}

// Listing resolves only the listing page for params.
func (p *Prerenderer) Listing(ctx context.Context, params catalog.Params) (catalog.ListingPage, error) {
	navigationsTotal.WithLabelValues("prerender").Inc()
	return p.source.Page(ctx, params)
}

// ResolveAll resolves every stub at once, without batching. Failed items
// keep their stub.
func (p *Prerenderer) ResolveAll(ctx context.Context, stubs []catalog.ItemStub) []catalog.ItemDetail {
	return p.details.FetchAll(ctx, stubs)
}

// Detail resolves the item called name.
func (p *Prerenderer) Detail(ctx context.Context, name string) (catalog.ItemDetail, error) {
	detail, err := p.upstream.Detail(ctx, catalog.ItemStub{Name: name})
	if err != nil {
		p.logger.Warn().Err(err).Str("item", name).Msg("Detail fetch failed")
		return catalog.ItemDetail{}, fmt.Errorf("detail of %q: %w", name, err)
	}
	return detail, nil
}
