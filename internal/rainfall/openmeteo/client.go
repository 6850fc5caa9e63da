package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rainharvest-cloud/internal/observability/metrics"
	"rainharvest-cloud/internal/rainfall"
)

const (
	defaultBaseURL = "https://archive-api.open-meteo.com"

	// Fixed archive window: 2000..2020 inclusive.
	windowStart = "2000-01-01"
	windowEnd   = "2020-12-31"
	windowYears = 21

	defaultTimeout = 20 * time.Second
)

// Client queries the Open-Meteo historical archive for daily precipitation
// and reduces the series to a mean yearly total.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the archive endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// NewClient constructs an archive client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type archiveResponse struct {
	Daily struct {
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// AnnualAverageMM fetches the daily precipitation archive for the window and
// returns the rounded mean of yearly totals. An empty or missing series maps
// to rainfall.ErrUnavailable; the request is bounded by the client timeout
// and the caller context, with no retry.
func (c *Client) AnnualAverageMM(ctx context.Context, lat, lng float64) (float64, error) {
	start := time.Now()
	annual, err := c.annualAverageMM(ctx, lat, lng)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveRainfallLookup("openmeteo", result, time.Since(start))
	return annual, err
}

func (c *Client) annualAverageMM(ctx context.Context, lat, lng float64) (float64, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.6f", lat))
	query.Set("longitude", fmt.Sprintf("%.6f", lng))
	query.Set("start_date", windowStart)
	query.Set("end_date", windowEnd)
	query.Set("daily", "precipitation_sum")
	query.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/archive?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, rainfall.ErrUnavailable
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return 0, rainfall.ErrUnavailable
		}
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, rainfall.ErrUnavailable
	}
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("openmeteo: http %d", resp.StatusCode)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, rainfall.ErrUnavailable
	}
	series := payload.Daily.PrecipitationSum
	if len(series) == 0 {
		return 0, rainfall.ErrUnavailable
	}

	totalMM := 0.0
	for _, v := range series {
		if v != nil {
			totalMM += *v
		}
	}
	annual := math.Round(totalMM / windowYears)
	if annual <= 0 {
		return 0, rainfall.ErrUnavailable
	}
	return annual, nil
}
