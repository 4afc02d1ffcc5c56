package backend

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/gamegraf/pkg/domain"
)

// PublishedLayout is the display format of news publication time, always UTC
const PublishedLayout = "Mon, 02 Jan 2006 15:04"

// readMoreRe matches in-feed "read more" anchors, the card has its own read button
var readMoreRe = regexp.MustCompile(`(?i)<a[^>]*>(?:\s*Читать(?:\s+(?:дальше|далее))?[^<]*)</a>`)

// NewsParams configures NewsAggregator
type NewsParams struct {
	Feeds      []string
	Timeout    time.Duration
	MaxWorkers int
	UserAgent  string
	Client     *http.Client
	Limiter    *rate.Limiter
}

// NewsAggregator merges entries of several RSS/Atom feeds
type NewsAggregator struct {
	NewsParams
}

// datedItem keeps parsed time next to the display item for ordering
type datedItem struct {
	item      domain.NewsItem
	published time.Time
}

// NewNewsAggregator makes an aggregator
func NewNewsAggregator(params NewsParams) *NewsAggregator {
	if params.MaxWorkers < 1 {
		params.MaxWorkers = 1
	}
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	if params.Client == nil {
		params.Client = &http.Client{Timeout: params.Timeout}
	}
	if params.Limiter == nil {
		params.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &NewsAggregator{NewsParams: params}
}

// News fetches all feeds and returns their entries newest first, undated entries last.
// A feed that fails to load contributes nothing.
func (a *NewsAggregator) News(ctx context.Context) []domain.NewsItem {
	perFeed := make([][]datedItem, len(a.Feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.MaxWorkers)
	for i, feedURL := range a.Feeds {
		g.Go(func() error {
			items, err := a.fetch(gctx, feedURL)
			if err != nil {
				log.Printf("[WARN] failed to load feed %s: %v", feedURL, err)
				return nil
			}
			perFeed[i] = items
			return nil
		})
	}
	_ = g.Wait() // per-feed errors are logged, not propagated

	var all []datedItem
	for _, items := range perFeed {
		all = append(all, items...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].published.After(all[j].published)
	})

	res := make([]domain.NewsItem, 0, len(all))
	for _, it := range all {
		res = append(res, it.item)
	}
	return res
}

// fetch retrieves and converts one feed
func (a *NewsAggregator) fetch(ctx context.Context, feedURL string) ([]datedItem, error) {
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = a.Client
	parser.UserAgent = a.UserAgent
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]datedItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		it := datedItem{item: domain.NewsItem{
			Title:   entry.Title,
			Link:    entry.Link,
			Summary: StripReadMore(entry.Description),
		}}

		// parse publish time
		switch {
		case entry.PublishedParsed != nil:
			it.published = *entry.PublishedParsed
		case entry.UpdatedParsed != nil:
			it.published = *entry.UpdatedParsed
		}
		raw := entry.Published
		if raw == "" {
			raw = entry.Updated
		}
		it.item.Published = FormatPublished(it.published, raw)

		items = append(items, it)
	}
	return items, nil
}

// FormatPublished renders publication time without zone. Unparsed times fall back
// to the raw value cut before the zone offset.
func FormatPublished(t time.Time, raw string) string {
	if !t.IsZero() {
		return t.UTC().Format(PublishedLayout)
	}
	if idx := strings.Index(raw, " +"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// StripReadMore removes "read more" anchors from summary markup
func StripReadMore(html string) string {
	return readMoreRe.ReplaceAllLiteralString(html, "")
}
