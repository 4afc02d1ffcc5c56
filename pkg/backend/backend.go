// Package backend serves the feed data itself: news aggregated from RSS/Atom feeds,
// deals from Steam specials and freebies from Epic promotions. It backs /api/news and
// /api/deals when the embedded backend is enabled. Upstream failures never surface,
// a failing source contributes an empty list.
package backend

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/gamegraf/pkg/domain"
)

// Config holds backend parameters
type Config struct {
	Feeds      []string
	SteamURL   string
	EpicURL    string
	DealsLimit int
	Timeout    time.Duration
	RateLimit  time.Duration // minimal interval between upstream requests, 0 disables limiting
	MaxWorkers int
	UserAgent  string
}

// Backend aggregates upstream sources into feed payloads
type Backend struct {
	news  *NewsAggregator
	store *StoreDeals
}

// New makes a backend sharing one http client and one rate limiter across all upstream calls
func New(cfg Config) *Backend {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(cfg.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)
	client := &http.Client{Timeout: cfg.Timeout}

	return &Backend{
		news: NewNewsAggregator(NewsParams{
			Feeds:      cfg.Feeds,
			Timeout:    cfg.Timeout,
			MaxWorkers: cfg.MaxWorkers,
			UserAgent:  cfg.UserAgent,
			Client:     client,
			Limiter:    limiter,
		}),
		store: NewStoreDeals(StoreParams{
			SteamURL:  cfg.SteamURL,
			EpicURL:   cfg.EpicURL,
			Limit:     cfg.DealsLimit,
			UserAgent: cfg.UserAgent,
			Client:    client,
			Limiter:   limiter,
		}),
	}
}

// News returns aggregated news, newest first
func (b *Backend) News(ctx context.Context) []domain.NewsItem {
	return b.news.News(ctx)
}

// Deals returns deals and freebies, fetched concurrently
func (b *Backend) Deals(ctx context.Context) domain.FeedResponse {
	var resp domain.FeedResponse
	var g errgroup.Group
	g.Go(func() error {
		resp.Deals = b.store.Deals(ctx)
		return nil
	})
	g.Go(func() error {
		resp.Freebies = b.store.Freebies(ctx)
		return nil
	})
	_ = g.Wait() // sources never fail, errors are logged and replaced by empty lists
	return resp.Normalize()
}
