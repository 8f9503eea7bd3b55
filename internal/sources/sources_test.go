package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem-kaynak/formstore/internal/entity"
	"github.com/kerem-kaynak/formstore/internal/sources"
	"github.com/kerem-kaynak/formstore/internal/utils"
)

func TestPokemonTCGFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/sets", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"name": "Base Set", "printedTotal": 102, "releaseDate": "1999/01/09"}]}`))
	}))
	defer server.Close()

	src := sources.NewPokemonTCG(server.URL, "test-key", server.Client())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Base Set", records[0]["name"])
}

func TestPokemonTCGFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src := sources.NewPokemonTCG(server.URL, "", server.Client())

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
}

func TestMarvelFetchSignsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/public/comics", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "pub", query.Get("apikey"))
		assert.Equal(t, "20", query.Get("limit"))

		ts := query.Get("ts")
		require.NotEmpty(t, ts)
		assert.Equal(t, utils.RequestSignature(ts, "priv", "pub"), query.Get("hash"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"results": [{"title": "Issue #1", "pageCount": 32}]}}`))
	}))
	defer server.Close()

	src := sources.NewMarvel(server.URL, "pub", "priv", 20, server.Client())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Issue #1", records[0]["title"])
}

func TestMappingsDeclareClosedFormTypes(t *testing.T) {
	known := map[entity.FormType]bool{
		entity.FormTypeChar:    true,
		entity.FormTypeText:    true,
		entity.FormTypeInteger: true,
		entity.FormTypeFloat:   true,
		entity.FormTypeBoolean: true,
		entity.FormTypeDate:    true,
		entity.FormTypeURL:     true,
	}

	pokemon := sources.NewPokemonTCG("", "", nil)
	marvel := sources.NewMarvel("", "", "", 0, nil)

	for _, mapping := range append(pokemon.Mappings(), marvel.Mappings()...) {
		assert.True(t, known[mapping.FormType], "mapping %q declares %q", mapping.Name, mapping.FormType)
		assert.NotNil(t, mapping.Extract, "mapping %q has no extractor", mapping.Name)
	}
}
