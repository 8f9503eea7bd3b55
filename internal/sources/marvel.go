package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kerem-kaynak/formstore/internal/entity"
	"github.com/kerem-kaynak/formstore/internal/ingest"
	"github.com/kerem-kaynak/formstore/internal/utils"
)

// Marvel fetches the comic catalog from the Marvel API. Every request is
// signed with apikey/ts/hash query parameters, where hash is
// md5(ts + privateKey + publicKey).
type Marvel struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
	PageSize   int
	Client     *http.Client
}

func NewMarvel(baseURL, publicKey, privateKey string, pageSize int, client *http.Client) *Marvel {
	return &Marvel{
		BaseURL:    baseURL,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		PageSize:   pageSize,
		Client:     client,
	}
}

func (s *Marvel) Name() string { return "marvel" }

func (s *Marvel) ServiceName() string { return "MarvelComicCollection" }

func (s *Marvel) ServiceDescription() string { return "Collection of Marvel Comics books" }

func (s *Marvel) Mappings() []ingest.FieldMapping {
	return []ingest.FieldMapping{
		{
			Name:        "title",
			Description: "Name of the Marvel comic book",
			FormType:    entity.FormTypeText,
			Extract:     ingest.StringKey("title"),
		},
		{
			Name:        "pageCount",
			Description: "The number of pages of the Marvel comic book",
			FormType:    entity.FormTypeInteger,
			Extract:     ingest.IntKey("pageCount"),
		},
		{
			Name:        "resourceURI",
			Description: "The resource URI of the Marvel comic book",
			FormType:    entity.FormTypeURL,
			Extract:     ingest.StringKey("resourceURI"),
		},
		{
			Name:        "price",
			Description: "The print price of the Marvel comic book",
			FormType:    entity.FormTypeFloat,
			Extract:     ingest.PriceOfType("prices", "printPrice"),
		},
	}
}

func (s *Marvel) Fetch(ctx context.Context) ([]ingest.Record, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	params := url.Values{}
	params.Set("apikey", s.PublicKey)
	params.Set("ts", ts)
	params.Set("hash", utils.RequestSignature(ts, s.PrivateKey, s.PublicKey))
	if s.PageSize > 0 {
		params.Set("limit", strconv.Itoa(s.PageSize))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/v1/public/comics?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}

	var payload struct {
		Data struct {
			Results []ingest.Record `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Data.Results, nil
}
