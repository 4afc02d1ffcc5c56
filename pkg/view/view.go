// Package view holds the client view state: the shell with its tab and theme mode,
// and the feed views driving the fetch-and-render lifecycle of each feed.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/gamegraf/pkg/domain"
	"github.com/umputun/gamegraf/pkg/summary"
	"github.com/umputun/gamegraf/pkg/theme"
)

//go:generate moq -out mocks/feed_source.go -pkg mocks -skip-ensure -fmt goimports . FeedSource

// ErrUnknownTab is returned for a tab index outside the tab list
var ErrUnknownTab = errors.New("unknown tab")

// FeedSource reads both feeds, implemented by feedclient.Client
type FeedSource interface {
	GetNews(ctx context.Context) ([]domain.NewsItem, error)
	GetDeals(ctx context.Context) (domain.FeedResponse, error)
}

// FeedView is a mounted feed, exactly one is active in the shell
type FeedView interface {
	Tab() Tab
	Mount(ctx context.Context)
	Unmount()
	Phase() Phase
	Wait(ctx context.Context) error
}

// Tab is a navigation tab
type Tab int

// tabs in display order
const (
	TabNews Tab = iota
	TabDeals
)

// Tabs lists all tabs in display order
var Tabs = []Tab{TabNews, TabDeals}

// ParseTab converts a tab index
func ParseTab(idx int) (Tab, error) {
	if idx < int(TabNews) || idx > int(TabDeals) {
		return TabNews, fmt.Errorf("%w: %d", ErrUnknownTab, idx)
	}
	return Tab(idx), nil
}

// Index returns tab position
func (t Tab) Index() int { return int(t) }

// String returns tab label
func (t Tab) String() string {
	switch t {
	case TabNews:
		return "News"
	case TabDeals:
		return "Deals"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// ViewState is the client's own navigation and display state
type ViewState struct {
	Tab  Tab
	Mode theme.Mode
}

// Options configure feed views
type Options struct {
	Palette   theme.Palette
	Sanitizer summary.Sanitizer
}

func (o Options) withDefaults() Options {
	if o.Palette == (theme.Palette{}) {
		o.Palette = theme.DefaultPalette()
	}
	if o.Sanitizer == nil {
		o.Sanitizer = summary.Trusted{}
	}
	return o
}
