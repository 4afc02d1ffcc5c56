package view

import (
	"context"
	"fmt"
	"html/template"

	"github.com/samber/lo"

	"github.com/umputun/gamegraf/pkg/domain"
	"github.com/umputun/gamegraf/pkg/summary"
)

// NewsCard is the display form of a news item
type NewsCard struct {
	Key       string // position based, news items carry no id
	Title     string
	Published string
	Link      string
	ImageURL  string
	HasImage  bool
	Body      template.HTML // trusted summary markup, see package summary
}

// NewsFeedView drives the news feed lifecycle
type NewsFeedView struct {
	loader    *loader[[]domain.NewsItem]
	sanitizer summary.Sanitizer
}

// NewNewsFeedView makes an unmounted news view
func NewNewsFeedView(src FeedSource, opts Options) *NewsFeedView {
	opts = opts.withDefaults()
	return &NewsFeedView{
		loader:    newLoader("news", src.GetNews, func() []domain.NewsItem { return []domain.NewsItem{} }),
		sanitizer: opts.Sanitizer,
	}
}

// Tab returns TabNews
func (v *NewsFeedView) Tab() Tab { return TabNews }

// Mount starts the fetch
func (v *NewsFeedView) Mount(ctx context.Context) { v.loader.mount(ctx) }

// Unmount cancels a pending fetch and drops its result
func (v *NewsFeedView) Unmount() { v.loader.unmount() }

// Phase returns the current fetch phase
func (v *NewsFeedView) Phase() Phase { return v.loader.current().Phase() }

// State returns the fetch state snapshot
func (v *NewsFeedView) State() FetchState[[]domain.NewsItem] { return v.loader.current() }

// Wait blocks until the feed settles
func (v *NewsFeedView) Wait(ctx context.Context) error {
	_, err := v.loader.wait(ctx)
	return err
}

// Cards returns display cards in the order received, nil while loading.
// Summaries are parsed on every call.
func (v *NewsFeedView) Cards() []NewsCard {
	items, ok := v.loader.current().Value()
	if !ok {
		return nil
	}
	return lo.Map(items, func(item domain.NewsItem, idx int) NewsCard {
		parsed := summary.Parse(item.Summary)
		return NewsCard{
			Key:       fmt.Sprintf("news-%d", idx),
			Title:     item.Title,
			Published: item.Published,
			Link:      item.Link,
			ImageURL:  parsed.ImageURL,
			HasImage:  parsed.HasImage,
			Body:      template.HTML(v.sanitizer.Sanitize(parsed.BodyHTML)), //nolint:gosec // summary source is trusted
		}
	})
}
