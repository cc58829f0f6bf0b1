// Package kepco probes the KEPCO big-data open API for distribution-line
// capacity and renewable installation records.
package kepco

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/observability"
)

// DefaultBaseURL is the KEPCO open API root.
const DefaultBaseURL = "https://bigdata.kepco.co.kr/openapi/v1"

const (
	adapterName       = "kepco"
	lineCapacityPath  = "/EVcarChargStationInfo/getEvCarChargStationInfo"
	installationsPath = "/renewable/installation"
)

// Client implements estimator.GridSource.
type Client struct {
	serviceKey string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a KEPCO client. An empty baseURL selects the public API.
func NewClient(serviceKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// LineCapacity fetches the first page of the line capacity listing. The
// endpoint is not filtered by province.
func (c *Client) LineCapacity(ctx context.Context, _ string) (json.RawMessage, error) {
	params := url.Values{
		"serviceKey": {c.serviceKey},
		"pageNo":     {"1"},
		"numOfRows":  {"10"},
		"returnType": {"json"},
	}
	return c.get(ctx, lineCapacityPath, params)
}

// Installations fetches renewable installation records for a province.
func (c *Client) Installations(ctx context.Context, province string) (json.RawMessage, error) {
	params := url.Values{
		"serviceKey": {c.serviceKey},
		"region":     {province},
		"returnType": {"json"},
	}
	return c.get(ctx, installationsPath, params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	start := time.Now()
	payload, err := c.doRequest(ctx, c.baseURL+path+"?"+params.Encode())
	c.metrics.AdapterDuration.WithLabelValues(adapterName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdapterRequests.WithLabelValues(adapterName, "error").Inc()
		return nil, fmt.Errorf("kepco %s: %w", path, err)
	}
	c.metrics.AdapterRequests.WithLabelValues(adapterName, "success").Inc()
	return payload, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}
