package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/client"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// itemName matches upstream item names. The detail URL is built from the
// name, so nothing else is accepted.
var itemName = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type handlers struct {
	svc    Service
	pages  *pageTemplates
	logger zerolog.Logger
}

type listingResponse struct {
	Categories []string           `json:"categories"`
	Page       int                `json:"page"`
	Items      []catalog.ItemStub `json:"items"`
	Total      int                `json:"total"`
	TotalPages int                `json:"totalPages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	params := catalog.ParseParams(r.URL.Query())
	view := h.svc.Render(r.Context(), params)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.renderIndex(w, view); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render listing page")
	}
}

func (h *handlers) listing(w http.ResponseWriter, r *http.Request) {
	params := catalog.ParseParams(r.URL.Query())
	page, err := h.svc.Listing(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Strs("categories", params.Categories).Int("page", params.Page).Msg("Listing fetch failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "listing unavailable"})
		return
	}

	items := page.Items
	if items == nil {
		items = []catalog.ItemStub{}
	}
	categories := page.Params.Categories
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, listingResponse{
		Categories: categories,
		Page:       page.Params.Page,
		Items:      items,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *handlers) item(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !itemName.MatchString(name) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item name"})
		return
	}

	detail, err := h.svc.Detail(r.Context(), name)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found"})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "item unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
