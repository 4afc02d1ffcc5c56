package feedclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/gamegraf/pkg/domain"
)

func TestClient_GetNews(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/news", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"title":"First","link":"https://example.com/1","published":"Mon, 01 Jan 2024 10:00","summary":"<p>a</p>"},
				{"title":"Second","link":"https://example.com/2","published":"","summary":""}]`))
		}))
		defer ts.Close()

		items, err := New(ts.URL + "/").GetNews(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, domain.NewsItem{Title: "First", Link: "https://example.com/1",
			Published: "Mon, 01 Jan 2024 10:00", Summary: "<p>a</p>"}, items[0])
		assert.Equal(t, "Second", items[1].Title)
	})

	t.Run("null body is empty", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}))
		defer ts.Close()

		items, err := New(ts.URL).GetNews(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer ts.Close()

		items, err := New(ts.URL).GetNews(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), "500")
		assert.Nil(t, items)
	})

	t.Run("malformed json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"title":`))
		}))
		defer ts.Close()

		_, err := New(ts.URL).GetNews(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"title":"a","link":"l","published":"p","summary":"s"}] <html>oops`))
		}))
		defer ts.Close()

		items, err := New(ts.URL).GetNews(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), "unexpected data after json value")
		assert.Nil(t, items)
	})

	t.Run("second json value", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[] []`))
		}))
		defer ts.Close()

		_, err := New(ts.URL).GetNews(context.Background())
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("[{\"title\":\"a\"}]\n\t \n"))
		}))
		defer ts.Close()

		items, err := New(ts.URL).GetNews(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("wrong shape", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"deals":[]}`))
		}))
		defer ts.Close()

		_, err := New(ts.URL).GetNews(context.Background())
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("network failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := ts.URL
		ts.Close()

		_, err := New(url).GetNews(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("canceled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		}))
		defer ts.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := New(ts.URL).GetNews(ctx)
		assert.ErrorIs(t, err, ErrFetch)
	})
}

func TestClient_GetDeals(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/deals", r.URL.Path)
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"deals":[{"dealID":"1","title":"X","salePrice":"9.99","normalPrice":"19.99","savings":"50.025","link":"https://example.com/x"}],
				"freebies":[{"dealID":"f","title":"Free","link":"https://example.com/f"}]}`))
		}))
		defer ts.Close()

		resp, err := New(ts.URL, WithUserAgent("test-agent")).GetDeals(context.Background())
		require.NoError(t, err)
		require.Len(t, resp.Deals, 1)
		require.Len(t, resp.Freebies, 1)
		assert.Equal(t, domain.Decimal("50.025"), resp.Deals[0].Savings)
		assert.Equal(t, "Free", resp.Freebies[0].Title)
	})

	t.Run("missing lists are empty", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		resp, err := New(ts.URL).GetDeals(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, resp.Deals)
		assert.NotNil(t, resp.Freebies)
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		resp, err := New(ts.URL).GetDeals(context.Background())
		assert.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, domain.FeedResponse{}, resp)
	})

	t.Run("one attempt per call", func(t *testing.T) {
		var hits atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer ts.Close()

		_, err := New(ts.URL, WithHTTPClient(ts.Client())).GetDeals(context.Background())
		assert.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, int32(1), hits.Load())
	})
}
