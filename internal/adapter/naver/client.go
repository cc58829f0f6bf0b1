// Package naver searches news articles through the Naver search API.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/observability"
)

// DefaultBaseURL is the news search endpoint.
const DefaultBaseURL = "https://openapi.naver.com/v1/search/news.json"

const adapterName = "naver"

// Client calls the news search API with application credentials.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates a news search client. An empty baseURL selects the
// public endpoint.
func NewClient(clientID, clientSecret, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		metrics:      metrics,
		logger:       logger,
	}
}

// Search returns up to display articles ranked by similarity. Titles and
// descriptions are returned as sent, including highlight markup.
func (c *Client) Search(ctx context.Context, query string, display int) ([]domain.NewsItem, error) {
	params := url.Values{
		"query":   {query},
		"display": {strconv.Itoa(display)},
		"sort":    {"sim"},
	}

	start := time.Now()
	items, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.AdapterDuration.WithLabelValues(adapterName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdapterRequests.WithLabelValues(adapterName, "error").Inc()
		return nil, err
	}
	c.metrics.AdapterRequests.WithLabelValues(adapterName, "success").Inc()
	c.logger.Debug("news search completed", "query", query, "items", len(items))
	return items, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("naver API error: status %d: %s", resp.StatusCode, body)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, domain.NewsItem{
			Title:       it.Title,
			Link:        it.Link,
			PubDate:     it.PubDate,
			Description: it.Description,
		})
	}
	return items, nil
}

type searchResponse struct {
	Total   int          `json:"total"`
	Display int          `json:"display"`
	Items   []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}
