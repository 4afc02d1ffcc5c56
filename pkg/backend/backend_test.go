package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend(t *testing.T) {
	feeds := feedServer(t)
	store := storeServer(t, nil, nil)

	b := New(Config{
		Feeds:      []string{feeds.URL + "/rss", feeds.URL + "/atom"},
		SteamURL:   store.URL + "/steam",
		EpicURL:    store.URL + "/epic",
		DealsLimit: 2,
		Timeout:    5 * time.Second,
		RateLimit:  time.Millisecond,
		MaxWorkers: 2,
		UserAgent:  "test",
	})

	t.Run("news", func(t *testing.T) {
		news := b.News(context.Background())
		require.Len(t, news, 3)
		assert.Equal(t, "Newest", news[0].Title)
	})

	t.Run("deals", func(t *testing.T) {
		resp := b.Deals(context.Background())
		require.Len(t, resp.Deals, 2)
		assert.Equal(t, "Big", resp.Deals[0].Title)
		require.Len(t, resp.Freebies, 2)
		assert.Equal(t, "Free One", resp.Freebies[0].Title)
	})
}

func TestBackend_DealsAllSourcesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := New(Config{SteamURL: srv.URL, EpicURL: srv.URL, Timeout: time.Second})
	resp := b.Deals(context.Background())
	assert.NotNil(t, resp.Deals)
	assert.NotNil(t, resp.Freebies)
	assert.Empty(t, resp.Deals)
	assert.Empty(t, resp.Freebies)
}
