package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"resty.dev/v3"
)

// Fetcher retrieves the full item list of a feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]RemoteItem, error)
}

// Client fetches the feed over HTTP.
type Client struct {
	http *resty.Client
}

// NewClient creates a feed client.
func NewClient(cfg Config) *Client {
	http := resty.New().
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	return &Client{http: http}
}

// Fetch downloads and decodes the feed at url.
func (c *Client) Fetch(ctx context.Context, url string) ([]RemoteItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &FetchError{URL: url, StatusCode: code}
	}

	var doc Document
	if err := json.Unmarshal([]byte(resp.String()), &doc); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("decode feed: %w", err)}
	}

	return doc.Items, nil
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	return c.http.Close()
}
