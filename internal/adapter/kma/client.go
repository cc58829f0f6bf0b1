// Package kma adapts the Korea Meteorological Administration village
// forecast API (data.go.kr VilageFcstInfoService 2.0).
package kma

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

// DefaultBaseURL is the public village forecast endpoint.
const DefaultBaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getVilageFcst"

const (
	adapterName = "kma"
	resultOK    = "00"
	// One issuance hour spans twelve categories; sixty rows cover the next
	// five forecast hours.
	defaultRows = 60
)

// Client implements estimator.WeatherSource using the village forecast API.
type Client struct {
	serviceKey string
	httpClient *http.Client
	baseURL    string
	rows       int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a village forecast client. An empty baseURL selects the
// public endpoint.
func NewClient(serviceKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		rows:    defaultRows,
		metrics: metrics,
		logger:  logger,
	}
}

// Forecast fetches the forecast items issued at bucket for a grid cell.
func (c *Client) Forecast(ctx context.Context, point domain.GridPoint, bucket domain.ForecastBucket) ([]domain.ForecastItem, error) {
	params := url.Values{
		"serviceKey": {c.serviceKey},
		"pageNo":     {"1"},
		"numOfRows":  {strconv.Itoa(c.rows)},
		"dataType":   {"JSON"},
		"base_date":  {bucket.BaseDate},
		"base_time":  {bucket.BaseTime},
		"nx":         {strconv.Itoa(point.NX)},
		"ny":         {strconv.Itoa(point.NY)},
	}

	start := time.Now()
	items, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.AdapterDuration.WithLabelValues(adapterName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdapterRequests.WithLabelValues(adapterName, "error").Inc()
		return nil, err
	}
	c.metrics.AdapterRequests.WithLabelValues(adapterName, "success").Inc()
	c.logger.Debug("forecast fetched", "nx", point.NX, "ny", point.NY, "base", bucket.String(), "items", len(items))
	return items, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.ForecastItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kma API error: status %d: %s", resp.StatusCode, body)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	h := envelope.Response.Header
	if h.ResultCode != resultOK {
		return nil, fmt.Errorf("kma API error: result %s: %s", h.ResultCode, h.ResultMsg)
	}

	raw := envelope.Response.Body.Items.Item
	items := make([]domain.ForecastItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, domain.ForecastItem{
			Category: it.Category,
			Date:     it.FcstDate,
			Time:     it.FcstTime,
			Value:    it.FcstValue,
		})
	}
	return items, nil
}

// Village forecast response types.

type response struct {
	Response struct {
		Header header `json:"header"`
		Body   body   `json:"body"`
	} `json:"response"`
}

type header struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

type body struct {
	DataType   string `json:"dataType"`
	PageNo     int    `json:"pageNo"`
	NumOfRows  int    `json:"numOfRows"`
	TotalCount int    `json:"totalCount"`
	Items      struct {
		Item []item `json:"item"`
	} `json:"items"`
}

type item struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
	NX        int    `json:"nx"`
	NY        int    `json:"ny"`
}
