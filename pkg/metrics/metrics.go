// Package metrics exposes the Prometheus registry shared by the catalog
// packages. Metrics are defined in their owning packages (client,
// pagination, listing) and registered via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the catalog.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the counterpart of Registry used for exposition.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Upstream Metrics (pkg/client):
//   - catalog_upstream_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - catalog_upstream_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - catalog_upstream_errors_total{class} (Counter): Errors by class (client, server, network, decode, schema)
//
// Batch Metrics (pkg/pagination):
//   - catalog_batch_rounds_total (Counter): Detail fetch rounds started
//   - catalog_batch_items_total{outcome} (Counter): Items by outcome (resolved, failed, skipped)
//   - catalog_batch_round_duration_seconds (Histogram): Duration of one round
//
// Listing Metrics (pkg/listing):
//   - catalog_listing_navigations_total{variant} (Counter): Navigations by variant (client, prerender)
//   - catalog_listing_stale_discards_total (Counter): Results dropped because a newer navigation started
//
// Example Prometheus Queries:
//
//   # Detail failure ratio
//   sum(rate(catalog_batch_items_total{outcome="failed"}[5m])) /
//   sum(rate(catalog_batch_items_total[5m]))
//
//   # P95 upstream latency
//   histogram_quantile(0.95, rate(catalog_upstream_request_duration_seconds_bucket[5m]))
//
//   # Schema drift
//   rate(catalog_upstream_errors_total{class="schema"}[5m]) > 0
