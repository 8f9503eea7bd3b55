// Package sources implements the external data providers the pipeline can
// ingest from. Each source carries its own credentials, fetch logic and
// declarative field mappings; the pipeline treats all of them uniformly.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kerem-kaynak/formstore/internal/entity"
	"github.com/kerem-kaynak/formstore/internal/ingest"
)

// PokemonTCG fetches the trading-card set catalog from the Pokémon TCG API.
// Authentication is a single X-Api-Key header; an empty key is sent as-is
// and surfaces as a fetch failure if the provider rejects it.
type PokemonTCG struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewPokemonTCG(baseURL, apiKey string, client *http.Client) *PokemonTCG {
	return &PokemonTCG{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  client,
	}
}

func (s *PokemonTCG) Name() string { return "pokemon" }

func (s *PokemonTCG) ServiceName() string { return "pokemonSetCollection" }

func (s *PokemonTCG) ServiceDescription() string { return "Collection of pokemon Card Sets" }

func (s *PokemonTCG) Mappings() []ingest.FieldMapping {
	return []ingest.FieldMapping{
		{
			Name:        "SetName",
			Description: "Name of the pokemon set",
			FormType:    entity.FormTypeText,
			Extract:     ingest.StringKey("name"),
		},
		{
			Name:        "Series",
			Description: "Series of the pokemon set",
			FormType:    entity.FormTypeText,
			Extract:     ingest.StringKey("series"),
		},
		{
			Name:        "TotalCards",
			Description: "Total number of cards in the set",
			FormType:    entity.FormTypeInteger,
			Extract:     ingest.IntKey("printedTotal"),
		},
		{
			Name:        "ReleaseDate",
			Description: "Release date of the pokemon set",
			FormType:    entity.FormTypeDate,
			Extract:     ingest.DateKey("releaseDate"),
		},
		{
			Name:        "symbol",
			Description: "Pokemon set symbol URL",
			FormType:    entity.FormTypeURL,
			Extract:     ingest.NestedStringKey("images", "symbol"),
		},
	}
}

func (s *PokemonTCG) Fetch(ctx context.Context) ([]ingest.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/v2/sets", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL)
	}

	var payload struct {
		Data []ingest.Record `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Data, nil
}
