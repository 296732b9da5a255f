// Package testutil provides testing utilities for the catalog.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockAPIResponse defines the behavior for a mock endpoint response.
type MockAPIResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable in-memory stand-in for the upstream
// creature-data API. It serves /type, /type/{name}, /pokemon and
// /pokemon/{name}/ from its dataset.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	categories  []string
	members     map[string][]string
	items       []string
	types       map[string][]string
	detailDelay time.Duration

	// Tracking
	requestCounts map[string]int
	inflight      int
	maxInflight   int
}

// NewMockAPI creates a new mock API server with an empty dataset.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers:      make(map[string]func(w http.ResponseWriter, r *http.Request)),
		members:       make(map[string][]string),
		types:         make(map[string][]string),
		requestCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCounts[r.URL.Path]++
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// NewSampleAPI returns a mock API preloaded with the Sample dataset.
func NewSampleAPI() *MockAPI {
	m := NewMockAPI()
	m.LoadSample()
	return m
}

// URL returns the mock server URL, usable as the client base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// AddItems appends items to the unfiltered listing. Each item is tagged with
// the categories it was added to via AddCategory.
func (m *MockAPI) AddItems(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, names...)
}

// AddCategory registers a category and its members.
func (m *MockAPI) AddCategory(name string, members ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[name]; !ok {
		m.categories = append(m.categories, name)
	}
	m.members[name] = append(m.members[name], members...)
	for _, item := range members {
		m.types[item] = append(m.types[item], name)
	}
}

// SetDetailDelay delays every detail response.
func (m *MockAPI) SetDetailDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailDelay = d
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockAPI) SetResponse(path string, resp MockAPIResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// FailDetail makes the detail endpoint of item answer with a server error.
func (m *MockAPI) FailDetail(item string) {
	m.SetResponse(DetailPath(item), NewServerErrorResponse())
}

// FailPath makes path answer with a server error.
func (m *MockAPI) FailPath(path string) {
	m.SetResponse(path, NewServerErrorResponse())
}

// DetailPath returns the request path of an item's detail record.
func DetailPath(item string) string {
	return "/pokemon/" + item + "/"
}

// DetailURL returns the absolute URL of an item's detail record.
func (m *MockAPI) DetailURL(item string) string {
	return m.server.URL + DetailPath(item)
}

// ImageURL returns the artwork URL the mock reports for item.
func ImageURL(item string) string {
	return "https://img.test/artwork/" + item + ".png"
}

// GetRequestCount returns the number of requests made to path.
func (m *MockAPI) GetRequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCounts[path]
}

// GetDetailRequestCount returns the number of detail requests served.
func (m *MockAPI) GetDetailRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for path, c := range m.requestCounts {
		if strings.HasPrefix(path, "/pokemon/") {
			n += c
		}
	}
	return n
}

// MaxInflightDetails returns the highest number of detail requests that
// were in progress at the same time.
func (m *MockAPI) MaxInflightDetails() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxInflight
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCounts = make(map[string]int)
	m.maxInflight = 0
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// defaultHandler serves the dataset in the upstream wire format.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/type" || path == "/type/":
		m.serveTypes(w)
	case strings.HasPrefix(path, "/type/"):
		m.serveType(w, strings.Trim(strings.TrimPrefix(path, "/type/"), "/"))
	case path == "/pokemon" || path == "/pokemon/":
		m.serveItems(w, r)
	case strings.HasPrefix(path, "/pokemon/"):
		m.serveDetail(w, strings.Trim(strings.TrimPrefix(path, "/pokemon/"), "/"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}
}

func (m *MockAPI) serveTypes(w http.ResponseWriter) {
	m.mu.RLock()
	results := make([]namedResource, 0, len(m.categories))
	for i, name := range m.categories {
		results = append(results, namedResource{
			Name: name,
			URL:  fmt.Sprintf("%s/type/%d/", m.server.URL, i+1),
		})
	}
	m.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

func (m *MockAPI) serveType(w http.ResponseWriter, name string) {
	m.mu.RLock()
	members, ok := m.members[name]
	slots := make([]map[string]any, 0, len(members))
	for i, item := range members {
		slots = append(slots, map[string]any{
			"pokemon": namedResource{Name: item, URL: m.server.URL + DetailPath(item)},
			"slot":    i%2 + 1,
		})
	}
	m.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    name,
		"pokemon": slots,
	})
}

func (m *MockAPI) serveItems(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	m.mu.RLock()
	total := len(m.items)
	results := make([]namedResource, 0, limit)
	for i := offset; i < total && i < offset+limit; i++ {
		results = append(results, namedResource{Name: m.items[i], URL: m.server.URL + DetailPath(m.items[i])})
	}
	m.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   total,
		"results": results,
	})
}

func (m *MockAPI) serveDetail(w http.ResponseWriter, name string) {
	m.mu.Lock()
	m.inflight++
	if m.inflight > m.maxInflight {
		m.maxInflight = m.inflight
	}
	delay := m.detailDelay
	tags := append([]string(nil), m.types[name]...)
	known := m.knownLocked(name)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inflight--
		m.mu.Unlock()
	}()

	if delay > 0 {
		time.Sleep(delay)
	}

	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	types := make([]map[string]any, 0, len(tags))
	for i, tag := range tags {
		types = append(types, map[string]any{
			"slot": i + 1,
			"type": namedResource{Name: tag, URL: m.server.URL + "/type/" + tag + "/"},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name": name,
		"sprites": map[string]any{
			"front_default": "https://img.test/sprite/" + name + ".png",
			"other": map[string]any{
				"official-artwork": map[string]any{
					"front_default": ImageURL(name),
				},
			},
		},
		"types": types,
	})
}

func (m *MockAPI) knownLocked(name string) bool {
	if _, ok := m.types[name]; ok {
		return true
	}
	for _, item := range m.items {
		if item == name {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// NewHealthyResponse creates a standard 200 OK JSON response.
func NewHealthyResponse(data string) MockAPIResponse {
	return MockAPIResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockAPIResponse {
	return MockAPIResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockAPIResponse {
	return MockAPIResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"detail": "Not found."}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}
