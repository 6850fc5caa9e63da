package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://overpass-api.de/api/interpreter"
	defaultTimeout = 25 * time.Second
)

// ErrUnavailable reports that the boundary service could not answer.
var ErrUnavailable = errors.New("geocode: boundary data not available")

// Region is one administrative area covering a point.
type Region struct {
	Name       string `json:"name"`
	AdminLevel string `json:"admin_level"`
	State      string `json:"state,omitempty"`
}

// Client is a minimal Overpass API client for administrative boundaries.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the Overpass endpoint.
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

// NewClient constructs an Overpass client.
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

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// RegionsAt resolves the administrative areas (district and taluka levels)
// that cover a point.
func (c *Client) RegionsAt(ctx context.Context, lat, lng float64) ([]Region, error) {
	query := fmt.Sprintf(`[out:json][timeout:20];
is_in(%f,%f)->.a;
area.a[boundary=administrative][admin_level~"^[456]$"];
out tags;`, lat, lng)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, ErrUnavailable
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, ErrUnavailable
	}

	regions := make([]Region, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		regions = append(regions, Region{
			Name:       name,
			AdminLevel: el.Tags["admin_level"],
			State:      el.Tags["is_in:state"],
		})
	}
	return regions, nil
}
