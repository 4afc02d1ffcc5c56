// Package feedclient reads the news and deals feeds from the backend JSON API
package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/gamegraf/pkg/domain"
)

const (
	newsPath  = "/api/news"
	dealsPath = "/api/deals"
)

// ErrFetch is the single failure kind of the client. Network errors, non-2xx
// statuses and malformed bodies all wrap it, callers are not expected to tell them apart.
var ErrFetch = errors.New("feed fetch failed")

// Client makes read-only requests to the feed backend
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// Option customizes Client
type Option func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "GameGraf/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetNews fetches the news feed. A null body is an empty feed.
func (c *Client) GetNews(ctx context.Context) ([]domain.NewsItem, error) {
	var items []domain.NewsItem
	if err := c.getJSON(ctx, newsPath, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.NewsItem{}
	}
	return items, nil
}

// GetDeals fetches deals and freebies in one request
func (c *Client) GetDeals(ctx context.Context) (domain.FeedResponse, error) {
	var resp domain.FeedResponse
	if err := c.getJSON(ctx, dealsPath, &resp); err != nil {
		return domain.FeedResponse{}, err
	}
	return resp.Normalize(), nil
}

// getJSON issues a single GET and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: create request %s: %v", ErrFetch, url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: unexpected status code %d for %s", ErrFetch, resp.StatusCode, url)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrFetch, url, err)
	}
	// the body must hold exactly one json value, trailing whitespace only
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s: unexpected data after json value", ErrFetch, url)
	}
	return nil
}
