package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Sternrassler/pokedex-catalog/internal/testutil"
	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid config",
			config: DefaultConfig(),
		},
		{
			name:        "empty base url",
			config:      Config{UserAgent: "test/1.0"},
			expectError: true,
			errorMsg:    "base url is required",
		},
		{
			name:        "relative base url",
			config:      Config{BaseURL: "/api/v2", UserAgent: "test/1.0"},
			expectError: true,
			errorMsg:    `base url must be absolute (got "/api/v2")`,
		},
		{
			name:        "empty user agent",
			config:      Config{BaseURL: "https://pokeapi.co/api/v2"},
			expectError: true,
			errorMsg:    "user-agent is required",
		},
		{
			name:        "negative timeout",
			config:      Config{BaseURL: "https://pokeapi.co/api/v2", UserAgent: "test/1.0", Timeout: -time.Second},
			expectError: true,
			errorMsg:    "timeout must be >= 0 (got -1s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
			c.Close()
		})
	}
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c, err := New(Config{BaseURL: "https://pokeapi.co/api/v2/", UserAgent: "test/1.0"})
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "https://pokeapi.co/api/v2", c.BaseURL())
}

func TestClient_Categories(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	c := newTestClient(t, mock.URL())

	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, len(testutil.SampleCategories))
	for i, cat := range categories {
		assert.Equal(t, i, cat.ID)
		assert.Equal(t, testutil.SampleCategories[i], cat.Name)
		assert.NotEmpty(t, cat.URL)
	}
}

func TestClient_Members(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	c := newTestClient(t, mock.URL())

	members, err := c.Members(context.Background(), "fire")
	require.NoError(t, err)
	assert.Equal(t, []catalog.ItemStub{
		{Name: "charmander", URL: mock.DetailURL("charmander")},
		{Name: "charmeleon", URL: mock.DetailURL("charmeleon")},
		{Name: "charizard", URL: mock.DetailURL("charizard")},
		{Name: "vulpix", URL: mock.DetailURL("vulpix")},
		{Name: "ninetales", URL: mock.DetailURL("ninetales")},
	}, members)

	_, err = c.Members(context.Background(), "shadow")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, ErrorClassClient, apiErr.ErrorClass)
}

func TestClient_Items(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	c := newTestClient(t, mock.URL())

	page, err := c.Items(context.Background(), 24, 48)
	require.NoError(t, err)
	assert.Equal(t, 54, page.Count)
	require.Len(t, page.Items, 6)
	assert.Equal(t, "venomoth", page.Items[0].Name)
	assert.Equal(t, "psyduck", page.Items[5].Name)
}

func TestClient_Detail(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	c := newTestClient(t, mock.URL())

	stub := catalog.ItemStub{Name: "charizard", URL: mock.DetailURL("charizard")}
	detail, err := c.Detail(context.Background(), stub)
	require.NoError(t, err)
	assert.Equal(t, stub, detail.ItemStub)
	assert.Equal(t, testutil.ImageURL("charizard"), detail.ImageURL)
	assert.ElementsMatch(t, []string{"fire", "flying"}, detail.Tags)
	assert.True(t, detail.Resolved())

	byName, err := c.DetailByName(context.Background(), "charizard")
	require.NoError(t, err)
	assert.Equal(t, detail.ImageURL, byName.ImageURL)
	assert.Equal(t, mock.DetailURL("charizard"), byName.URL)
}

func TestClient_UserAgentSet(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var userAgentReceived, acceptReceived string
	mock.SetHandler("/type", func(w http.ResponseWriter, r *http.Request) {
		userAgentReceived = r.Header.Get("User-Agent")
		acceptReceived = r.Header.Get("Accept")
		w.Write([]byte(`{"results": []}`))
	})

	cfg := Config{BaseURL: mock.URL(), UserAgent: "TestApp/1.0.0 (test@example.com)"}
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.UserAgent, userAgentReceived)
	assert.Equal(t, "application/json", acceptReceived)
}

func TestClient_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  string
		call  func(c *Client) error
		field string
	}{
		{
			name:  "type list without results",
			path:  "/type",
			body:  `{"count": 3}`,
			call:  func(c *Client) error { _, err := c.Categories(context.Background()); return err },
			field: "results",
		},
		{
			name:  "type list entry without url",
			path:  "/type",
			body:  `{"results": [{"name": "fire"}]}`,
			call:  func(c *Client) error { _, err := c.Categories(context.Background()); return err },
			field: "results[0].url",
		},
		{
			name:  "membership without pokemon",
			path:  "/type/fire",
			body:  `{"name": "fire"}`,
			call:  func(c *Client) error { _, err := c.Members(context.Background(), "fire"); return err },
			field: "pokemon",
		},
		{
			name:  "membership slot without pokemon",
			path:  "/type/fire",
			body:  `{"pokemon": [{"slot": 1}]}`,
			call:  func(c *Client) error { _, err := c.Members(context.Background(), "fire"); return err },
			field: "pokemon[0].pokemon",
		},
		{
			name:  "listing without count",
			path:  "/pokemon",
			body:  `{"results": []}`,
			call:  func(c *Client) error { _, err := c.Items(context.Background(), 24, 0); return err },
			field: "count",
		},
		{
			name:  "detail without artwork",
			path:  "/pokemon/missingno/",
			body:  `{"sprites": {"other": {}}, "types": []}`,
			call:  func(c *Client) error { _, err := c.DetailByName(context.Background(), "missingno"); return err },
			field: "sprites.other.official-artwork",
		},
		{
			name:  "detail with null artwork url",
			path:  "/pokemon/missingno/",
			body:  `{"sprites": {"other": {"official-artwork": {"front_default": null}}}, "types": []}`,
			call:  func(c *Client) error { _, err := c.DetailByName(context.Background(), "missingno"); return err },
			field: "sprites.other.official-artwork.front_default",
		},
		{
			name:  "detail without types",
			path:  "/pokemon/missingno/",
			body:  `{"sprites": {"other": {"official-artwork": {"front_default": "x.png"}}}}`,
			call:  func(c *Client) error { _, err := c.DetailByName(context.Background(), "missingno"); return err },
			field: "types",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockAPI()
			defer mock.Close()
			mock.SetResponse(tt.path, testutil.NewHealthyResponse(tt.body))
			c := newTestClient(t, mock.URL())

			err := tt.call(c)
			var schemaErr *UpstreamSchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.field, schemaErr.Field)
		})
	}
}

func TestClient_DetailWithEmptyTags(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/pokemon/missingno/", testutil.NewHealthyResponse(
		`{"sprites": {"other": {"official-artwork": {"front_default": "x.png"}}}, "types": []}`))
	c := newTestClient(t, mock.URL())

	detail, err := c.DetailByName(context.Background(), "missingno")
	require.NoError(t, err)
	assert.True(t, detail.Resolved())
	assert.Empty(t, detail.Tags)
}

func TestClient_ErrorClasses(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.FailPath("/type")
	mock.SetResponse("/pokemon", testutil.NewHealthyResponse(`not json`))
	c := newTestClient(t, mock.URL())

	_, err := c.Categories(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorClassServer, apiErr.ErrorClass)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	_, err = c.Items(context.Background(), 24, 0)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorClassDecode, apiErr.ErrorClass)
}

func TestClient_NetworkError(t *testing.T) {
	mock := testutil.NewMockAPI()
	baseURL := mock.URL()
	mock.Close()

	c := newTestClient(t, baseURL)
	_, err := c.Categories(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorClassNetwork, apiErr.ErrorClass)
	assert.Error(t, errors.Unwrap(apiErr))
}

func TestClient_ContextCancelled(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	mock.SetDetailDelay(500 * time.Millisecond)
	c := newTestClient(t, mock.URL())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.DetailByName(ctx, "pikachu")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorClassNetwork, apiErr.ErrorClass)
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, ErrorClassClient, classifyStatus(404))
	assert.Equal(t, ErrorClassClient, classifyStatus(403))
	assert.Equal(t, ErrorClassServer, classifyStatus(500))
	assert.Equal(t, ErrorClassServer, classifyStatus(503))
}
