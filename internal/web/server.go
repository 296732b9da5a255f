// Package web serves the server-prerendered catalog: the HTML listing, a
// JSON API for listings and single items, health and metrics.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Service is the listing backend of the HTTP surface.
type Service interface {
	Render(ctx context.Context, params catalog.Params) listing.View
	Listing(ctx context.Context, params catalog.Params) (catalog.ListingPage, error)
	Detail(ctx context.Context, name string) (catalog.ItemDetail, error)
}

// Config holds runtime options for the HTTP server.
type Config struct {
	Addr string
}

// New constructs the HTTP server.
func New(cfg Config, svc Service) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(svc),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter builds the route table with its middleware stack.
func NewRouter(svc Service) http.Handler {
	h := &handlers{
		svc:    svc,
		pages:  mustParseTemplates(),
		logger: logging.NewLogger(logging.ComponentHTTP),
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(AccessLog)
	router.Use(chimw.Recoverer)

	router.Get("/", h.index)
	router.Route("/api", func(r chi.Router) {
		r.Get("/listing", h.listing)
		r.Get("/items/{name}", h.item)
	})
	router.Get("/healthz", healthHandler)
	router.Handle("/metrics", metrics.Handler())

	return router
}
