// Package wikidata wraps the public WikiData entity search endpoint
// used to tag posts with knowledge-base labels.
package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Buzzy89/client/models"
)

// DefaultBaseURL is the public WikiData API endpoint.
const DefaultBaseURL = "https://www.wikidata.org"

// Client searches WikiData entities. Requests are unauthenticated and
// read-only.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds construction options for Client.
type Config struct {
	// BaseURL overrides the WikiData endpoint, mainly for tests.
	BaseURL string
	// HTTPClient is used for all requests. If nil a client with a
	// 10 second timeout is used.
	HTTPClient *http.Client
	// Logger is used for request logging. If nil logging is disabled.
	Logger *zap.Logger
}

// New creates a WikiData search client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type searchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

// Search queries wbsearchentities and maps the results to WikiData
// labels. A blank query returns no results without a network call.
func (c *Client) Search(ctx context.Context, query string) ([]models.WikiDataLabel, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("format", "json")
	params.Set("origin", "*")

	endpoint := c.baseURL + "/w/api.php?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wikidata: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("wikidata search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("wikidata: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("wikidata: search %q: %w", query, errors.New(resp.Status))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("wikidata: decode search response: %w", err)
	}

	labels := make([]models.WikiDataLabel, 0, len(payload.Search))
	for _, item := range payload.Search {
		labels = append(labels, models.WikiDataLabel{
			QID:         item.ID,
			Title:       item.Label,
			Description: item.Description,
		})
	}
	c.logger.Debug("wikidata search",
		zap.String("query", query),
		zap.Int("results", len(labels)))
	return labels, nil
}
