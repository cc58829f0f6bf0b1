// Package bizinfo queries support-programme announcements from the
// Bizinfo (기업마당) open API.
package bizinfo

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

	"github.com/couchcryptid/green-check-collector/internal/observability"
)

// DefaultBaseURL is the announcement search endpoint.
const DefaultBaseURL = "https://www.bizinfo.go.kr/uss/rss/bizinfoApi.do"

const adapterName = "bizinfo"

// Search types accepted by the searchTy parameter.
const (
	SearchTitle   = "S"
	SearchContent = "I"
	SearchAll     = "A"
)

// Announcement is one programme announcement as returned by the API.
type Announcement struct {
	ID       string `json:"pblancId"`
	Title    string `json:"pblancNm"`
	Area     string `json:"reqstAreaNm"`
	Period   string `json:"reqstBeginEndDe"` // YYYYMMDD~YYYYMMDD
	URL      string `json:"pblancUrl"`
	Summary  string `json:"bsnsSumryCn"` // may contain HTML
	Abstract string `json:"pblancAle"`
}

// Client calls the announcement API with a certification key.
type Client struct {
	certKey    string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an announcement client. An empty baseURL selects the
// public endpoint.
func NewClient(certKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		certKey:    certKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Search returns the newest count announcements matching keyword in both
// title and content.
func (c *Client) Search(ctx context.Context, keyword string, count int) ([]Announcement, error) {
	params := url.Values{
		"crtfcKey":  {c.certKey},
		"dataType":  {"json"},
		"searchCnt": {strconv.Itoa(count)},
		"searchTy":  {SearchAll},
		"keyword":   {keyword},
	}

	start := time.Now()
	items, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.AdapterDuration.WithLabelValues(adapterName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdapterRequests.WithLabelValues(adapterName, "error").Inc()
		return nil, err
	}
	c.metrics.AdapterRequests.WithLabelValues(adapterName, "success").Inc()
	c.logger.Debug("announcements fetched", "keyword", keyword, "items", len(items))
	return items, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]Announcement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("announcement request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bizinfo API error: status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Items []Announcement `json:"jsonArray"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Items, nil
}
