package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Sternrassler/pokedex-catalog/internal/testutil"
	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCatalog(t *testing.T, mock *testutil.MockAPI, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_UPSTREAM_BASE_URL", mock.URL())
	t.Setenv("CATALOG_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()

	out, err := runCatalog(t, mock, "list", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Page 2 of 3 · 54 total · [1 2 3]")
	assert.Contains(t, out, "pikachu")
	assert.NotContains(t, out, "bulbasaur")
	assert.Equal(t, 0, mock.GetDetailRequestCount())
}

func TestList_Resolve(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()

	out, err := runCatalog(t, mock, "list", "--type", "poison,flying", "--resolve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "zubat")
	assert.Contains(t, lines[3], "flying, poison")
	assert.Contains(t, lines[3], testutil.ImageURL("zubat"))
	assert.Contains(t, lines[4], "golbat")
}

func TestList_JSON(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()

	out, err := runCatalog(t, mock, "list", "--type", "fire", "--page", "4", "--json")
	require.NoError(t, err)

	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 5, got.Total)
	require.Len(t, got.Items, 5)
	assert.False(t, got.Items[0].Resolved())
}

func TestList_Empty(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()

	out, err := runCatalog(t, mock, "list", "--type", "fighting")
	require.NoError(t, err)
	assert.Contains(t, out, "No creatures match the selected types.")
}

func TestList_UpstreamFailure(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	mock.FailPath("/pokemon")

	_, err := runCatalog(t, mock, "list")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	mock := testutil.NewSampleAPI()
	defer mock.Close()
	t.Setenv("CATALOG_BATCH_SIZE", "0")

	_, err := runCatalog(t, mock, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.size")
}

func TestInitialParams(t *testing.T) {
	assert.Equal(t, catalog.Params{Categories: []string{"fire", "flying"}, Page: 2},
		initialParams([]string{" fire", "flying", "fire"}, 2))
	assert.Equal(t, catalog.Params{Page: 1}, initialParams(nil, -3))
}
