package listing

import (
	"context"
	"sync"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/pagination"
	"github.com/rs/zerolog"
)

// State is the phase of the current navigation cycle.
type State int

const (
	StateIdle State = iota
	StateFetchingList
	StateFetchingDetails
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingList:
		return "fetching-list"
	case StateFetchingDetails:
		return "fetching-details"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the controller state. It shares no
// memory with the controller.
type Snapshot struct {
	Params     catalog.Params
	State      State
	Categories []catalog.Category
	Items      []catalog.ItemDetail
	Total      int
	TotalPages int
	Markers    []pagination.Marker

	HasPrev       bool
	HasNext       bool
	LoadingImages bool

	// Epoch identifies the navigation cycle the snapshot belongs to.
	Epoch uint64

	// Err is the listing error of the current cycle, if any.
	Err error
}

// Observer is notified after every state change. Snapshots are delivered
// one at a time in the order they were taken; one that lost the race to a
// newer snapshot is dropped. Observers run synchronously and must not call
// back into the Controller.
type Observer func(Snapshot)

// Controller is the client-driven listing variant. Each Navigate starts a
// cycle: resolve the list, publish it with placeholders, then resolve
// details batch by batch. Only the newest cycle may write state; older
// cycles are cancelled and their late results dropped.
type Controller struct {
	upstream Upstream
	source   *Source
	details  *pagination.BatchFetcher
	logger   zerolog.Logger

	mu         sync.Mutex
	baseCtx    context.Context
	cancel     context.CancelFunc
	epoch      uint64
	started    bool
	params     catalog.Params
	state      State
	categories []catalog.Category
	items      []catalog.ItemDetail
	total      int
	totalPages int
	loading    bool
	err        error
	observers  []Observer
	seq        uint64

	// notifyMu serializes delivery; delivered is the seq of the last
	// snapshot handed to observers.
	notifyMu  sync.Mutex
	delivered uint64

	wg sync.WaitGroup
}

// NewController creates a controller over upstream.
func NewController(upstream Upstream, batch pagination.Config) *Controller {
	return &Controller{
		source:     NewSource(upstream),
		details:    pagination.NewBatchFetcher(upstream, batch),
		logger:     logging.NewLogger(logging.ComponentController),
		baseCtx:    context.Background(),
		upstream:   upstream,
		params:     catalog.Params{Page: 1},
		totalPages: 1,
	}
}

// Subscribe registers an observer.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Start loads the category list once and navigates to initial. ctx bounds
// every cycle the controller starts. A failed category load leaves the
// category list empty.
func (c *Controller) Start(ctx context.Context, initial catalog.Params) uint64 {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return c.Navigate(initial)
	}
	c.started = true
	c.baseCtx = ctx
	c.mu.Unlock()

	categories, err := c.upstream.Categories(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Category list unavailable")
		categories = nil
	} else {
		c.logger.Info().Int("categories", len(categories)).Msg("Category list loaded")
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()

	return c.Navigate(initial)
}

// Navigate starts a cycle for params and returns its epoch. Any cycle in
// flight is superseded.
func (c *Controller) Navigate(params catalog.Params) uint64 {
	params = params.WithPage(max(params.Page, 1))

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.epoch++
	epoch := c.epoch
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel

	c.params = params
	c.state = StateFetchingList
	c.items = nil
	c.loading = false
	c.err = nil
	c.wg.Add(1)
	c.seq++
	seq := c.seq
	snap := c.snapshotLocked()
	c.mu.Unlock()

	navigationsTotal.WithLabelValues("client").Inc()
	c.logger.Debug().
		Uint64("epoch", epoch).
		Strs("categories", params.Categories).
		Int("page", params.Page).
		Msg("Navigation started")

	c.notify(seq, snap)
	go c.run(ctx, epoch, params)

	return epoch
}

// Next navigates to the following page. It reports false when there is no
// following page or the list is still loading.
func (c *Controller) Next() bool {
	c.mu.Lock()
	ok := c.listKnownLocked() && pagination.HasNext(c.params.Page, c.totalPages)
	target := c.params.WithPage(c.params.Page + 1)
	c.mu.Unlock()

	if ok {
		c.Navigate(target)
	}
	return ok
}

// Prev navigates to the preceding page. It reports false on the first page
// or while the list is loading.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	ok := c.listKnownLocked() && pagination.HasPrev(c.params.Page)
	target := c.params.WithPage(c.params.Page - 1)
	c.mu.Unlock()

	if ok {
		c.Navigate(target)
	}
	return ok
}

// GoTo navigates to page n of the current listing. Pages outside
// [1, TotalPages] are refused.
func (c *Controller) GoTo(n int) bool {
	c.mu.Lock()
	ok := c.listKnownLocked() && n >= 1 && n <= c.totalPages
	target := c.params.WithPage(n)
	c.mu.Unlock()

	if ok {
		c.Navigate(target)
	}
	return ok
}

// Toggle selects or deselects category and navigates to page 1 of the
// resulting listing.
func (c *Controller) Toggle(category string) uint64 {
	c.mu.Lock()
	target := c.params.Toggle(category)
	c.mu.Unlock()

	return c.Navigate(target)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until every started cycle has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Stop cancels the cycle in flight.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) run(ctx context.Context, epoch uint64, params catalog.Params) {
	defer c.wg.Done()

	page, err := c.source.Page(ctx, params)
	if err != nil {
		c.commit(epoch, func() {
			c.logger.Error().
				Err(err).
				Uint64("epoch", epoch).
				Strs("categories", params.Categories).
				Int("page", params.Page).
				Msg("Listing fetch failed")
			c.params = params.WithPage(1)
			c.state = StateReady
			c.items = nil
			c.total = 0
			c.totalPages = 1
			c.err = err
		})
		return
	}

	published := c.commit(epoch, func() {
		c.params = page.Params
		c.state = StateFetchingDetails
		c.items = page.Details()
		c.total = page.Total
		c.totalPages = page.TotalPages
		c.loading = len(page.Items) > 0
	})
	if !published {
		return
	}

	c.details.FetchDetails(ctx, page.Items, func(b pagination.Batch) {
		c.commit(epoch, func() {
			copy(c.items[b.Offset:], b.Details)
		})
	})

	c.commit(epoch, func() {
		c.state = StateReady
		c.loading = false
		c.logger.Info().
			Uint64("epoch", epoch).
			Int("items", len(c.items)).
			Int("total", c.total).
			Int("page", c.params.Page).
			Int("total_pages", c.totalPages).
			Msg("Listing ready")
	})
}

// commit applies fn if epoch is still current and notifies observers. It
// reports whether fn ran.
func (c *Controller) commit(epoch uint64, fn func()) bool {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		staleDiscardsTotal.Inc()
		c.logger.Debug().
			Uint64("epoch", epoch).
			Msg("Discarding result of superseded navigation")
		return false
	}
	fn()
	c.seq++
	seq := c.seq
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(seq, snap)
	return true
}

func (c *Controller) notify(seq uint64, snap Snapshot) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if seq <= c.delivered {
		return
	}
	c.delivered = seq

	c.mu.Lock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (c *Controller) listKnownLocked() bool {
	return c.state == StateFetchingDetails || c.state == StateReady
}

func (c *Controller) snapshotLocked() Snapshot {
	items := make([]catalog.ItemDetail, len(c.items))
	for i, item := range c.items {
		items[i] = item.Clone()
	}

	known := c.listKnownLocked()
	var markers []pagination.Marker
	if known {
		markers = pagination.Markers(pagination.Clamp(c.params.Page, c.totalPages), c.totalPages)
	}
	return Snapshot{
		Params:        c.params.WithPage(c.params.Page),
		State:         c.state,
		Categories:    append([]catalog.Category(nil), c.categories...),
		Items:         items,
		Total:         c.total,
		TotalPages:    c.totalPages,
		Markers:       markers,
		HasPrev:       known && pagination.HasPrev(c.params.Page),
		HasNext:       known && pagination.HasNext(c.params.Page, c.totalPages),
		LoadingImages: c.loading,
		Epoch:         c.epoch,
		Err:           c.err,
	}
}
