package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/logging"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      Cache
	logger     logging.Logger
}

type listResponse struct {
	Results []models.CatalogTitle `json:"results"`
}

// NewClient builds a TMDB client. A nil cache disables caching.
func NewClient(apiKey, baseURL string, cache Cache, logger logging.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache == nil {
		cache = NopCache{}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
		logger:     logger,
	}
}

// get fetches path with params and decodes the JSON body into dst. The
// cache is keyed without the API key.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	key := cacheKey(path, params)

	if body, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(body, dst); err == nil {
			return nil
		}
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.cache.Set(ctx, key, body)
	return nil
}

// List fetches one shelf. Items without a media type get the shelf's kind.
func (c *Client) List(ctx context.Context, s Shelf) ([]models.CatalogTitle, error) {
	var resp listResponse
	if err := c.get(ctx, s.Path, s.Params, &resp); err != nil {
		return nil, err
	}
	if s.Kind != "" {
		for i := range resp.Results {
			if resp.Results[i].MediaType == "" {
				resp.Results[i].MediaType = s.Kind
			}
		}
	}
	if resp.Results == nil {
		resp.Results = []models.CatalogTitle{}
	}
	return resp.Results, nil
}

// Search runs a multi search and keeps only movies and series.
func (c *Client) Search(ctx context.Context, query string) ([]models.CatalogTitle, error) {
	var resp listResponse
	if err := c.get(ctx, "/search/multi", url.Values{"query": {query}}, &resp); err != nil {
		return nil, err
	}

	out := make([]models.CatalogTitle, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.MediaType == models.Movie || r.MediaType == models.TV {
			out = append(out, r)
		}
	}
	return out, nil
}

// Details returns a title with its external ids.
func (c *Client) Details(ctx context.Context, id int64, kind models.MediaKind) (*models.TitleDetails, error) {
	if kind != models.Movie && kind != models.TV {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	var d models.TitleDetails
	path := "/" + string(kind) + "/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, path, url.Values{"append_to_response": {"external_ids"}}, &d); err != nil {
		return nil, err
	}
	if d.MediaType == "" {
		d.MediaType = kind
	}
	return &d, nil
}
