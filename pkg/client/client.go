// Package client provides the HTTP client for the upstream creature-data
// API, with response schema validation, error classification and metrics.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// Prometheus metrics for upstream client operations.
var (
	upstreamRequestsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.With(metrics.Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// Endpoint labels. Detail URLs are collapsed into one label so metric
// cardinality stays bounded.
const (
	endpointTypes   = "/type"
	endpointType    = "/type/{name}"
	endpointItems   = "/pokemon"
	endpointDetail  = "/pokemon/{name}"
	defaultBaseURL  = "https://pokeapi.co/api/v2"
	defaultAgent    = "pokedex-catalog/0.1"
	acceptJSONValue = "application/json"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the upstream API, without trailing slash.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout per request. Zero means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration for the public API.
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultAgent,
	}
}

// Client is the upstream API client. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL string
	config  Config
	logger  zerolog.Logger
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", acceptJSONValue)
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		config:  cfg,
		logger:  logging.NewLogger(logging.ComponentUpstream),
	}, nil
}

// BaseURL returns the upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Categories fetches the category list. IDs are ordinal positions.
func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var body typeListResponse
	if err := c.getJSON(ctx, endpointTypes, "/type", &body); err != nil {
		return nil, err
	}
	categories, err := body.categories(endpointTypes)
	return categories, c.schemaChecked(err)
}

// Members fetches every item carrying category.
func (c *Client) Members(ctx context.Context, category string) ([]catalog.ItemStub, error) {
	var body typeResponse
	if err := c.getJSON(ctx, endpointType, "/type/"+url.PathEscape(category), &body); err != nil {
		return nil, err
	}
	members, err := body.members(endpointType)
	return members, c.schemaChecked(err)
}

// Items fetches one page of the unfiltered listing.
func (c *Client) Items(ctx context.Context, limit, offset int) (catalog.ItemPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var body pokemonListResponse
	if err := c.getJSON(ctx, endpointItems, "/pokemon?"+q.Encode(), &body); err != nil {
		return catalog.ItemPage{}, err
	}
	page, err := body.page(endpointItems)
	return page, c.schemaChecked(err)
}

// Detail fetches the detail record behind stub.URL. A stub without URL is
// looked up by name.
func (c *Client) Detail(ctx context.Context, stub catalog.ItemStub) (catalog.ItemDetail, error) {
	target := stub.URL
	if target == "" {
		target = c.detailURL(stub.Name)
	}

	var body pokemonResponse
	if err := c.getJSON(ctx, endpointDetail, target, &body); err != nil {
		return catalog.ItemDetail{}, err
	}
	detail, err := body.detail(endpointDetail, stub)
	return detail, c.schemaChecked(err)
}

// DetailByName fetches the detail record of the item called name.
func (c *Client) DetailByName(ctx context.Context, name string) (catalog.ItemDetail, error) {
	stub := catalog.ItemStub{Name: name, URL: c.detailURL(name)}
	return c.Detail(ctx, stub)
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) detailURL(name string) string {
	return c.baseURL + "/pokemon/" + url.PathEscape(name) + "/"
}

// getJSON performs a GET and decodes the JSON body into out. target is
// either a path relative to the base URL or an absolute URL.
func (c *Client) getJSON(ctx context.Context, endpoint, target string, out any) error {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("target", target).
		Msg("Executing upstream request")

	resp, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return &APIError{
			Endpoint:   endpoint,
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        err,
		}
	}

	status := resp.StatusCode()
	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()

	if resp.IsError() || status >= 300 {
		class := classifyStatus(status)
		upstreamErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", status).
			Str("error_class", string(class)).
			Msg("Upstream request error")
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: status,
			ErrorClass: class,
			Message:    resp.Status(),
		}
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Upstream body is not valid JSON")
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: status,
			ErrorClass: ErrorClassDecode,
			Message:    "invalid json body",
			Err:        err,
		}
	}

	return nil
}

// schemaChecked records and logs a schema violation, if any.
func (c *Client) schemaChecked(err error) error {
	if err == nil {
		return nil
	}
	upstreamErrorsTotal.WithLabelValues(string(ErrorClassSchema)).Inc()
	c.logger.Warn().Err(err).Str("error_class", string(ErrorClassSchema)).Msg("Upstream response rejected")
	return err
}

// classifyStatus categorizes an HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}
