package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/gamegraf/pkg/domain"
	"github.com/umputun/gamegraf/pkg/feedclient"
	"github.com/umputun/gamegraf/pkg/summary"
	"github.com/umputun/gamegraf/pkg/view/mocks"
)

func TestNewsFeedView_Loaded(t *testing.T) {
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(context.Context) ([]domain.NewsItem, error) {
			return []domain.NewsItem{
				{Title: "B first", Link: "https://example.com/b", Published: "Tue, 02 Jan 2024 10:00",
					Summary: `<img src="https://example.com/b.jpg"><p>body b</p>`},
				{Title: "A second", Link: "https://example.com/a", Published: "Mon, 01 Jan 2024 10:00",
					Summary: `<p>body a</p>`},
			}, nil
		},
	}

	v := NewNewsFeedView(src, Options{})
	assert.Equal(t, TabNews, v.Tab())
	assert.Equal(t, PhaseIdle, v.Phase())
	assert.Nil(t, v.Cards())

	v.Mount(context.Background())
	require.NoError(t, v.Wait(context.Background()))
	assert.Equal(t, PhaseLoaded, v.Phase())

	cards := v.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "news-0", cards[0].Key)
	assert.Equal(t, "B first", cards[0].Title, "order as received")
	assert.True(t, cards[0].HasImage)
	assert.Equal(t, "https://example.com/b.jpg", cards[0].ImageURL)
	assert.Equal(t, "<p>body b</p>", string(cards[0].Body))
	assert.Equal(t, "https://example.com/b", cards[0].Link)

	assert.Equal(t, "news-1", cards[1].Key)
	assert.False(t, cards[1].HasImage)
	assert.Equal(t, "<p>body a</p>", string(cards[1].Body))

	assert.Equal(t, cards, v.Cards(), "cards derivation is repeatable")
	assert.Len(t, src.GetNewsCalls(), 1)
}

func TestNewsFeedView_FailedIsEmpty(t *testing.T) {
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(context.Context) ([]domain.NewsItem, error) {
			return nil, feedclient.ErrFetch
		},
	}

	v := NewNewsFeedView(src, Options{})
	v.Mount(context.Background())
	require.NoError(t, v.Wait(context.Background()))

	assert.Equal(t, PhaseFailed, v.Phase())
	assert.ErrorIs(t, v.State().Err(), feedclient.ErrFetch)
	cards := v.Cards()
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestNewsFeedView_MountOnce(t *testing.T) {
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(context.Context) ([]domain.NewsItem, error) { return []domain.NewsItem{}, nil },
	}

	v := NewNewsFeedView(src, Options{})
	v.Mount(context.Background())
	v.Mount(context.Background())
	require.NoError(t, v.Wait(context.Background()))
	v.Mount(context.Background())

	assert.Len(t, src.GetNewsCalls(), 1)
}

func TestNewsFeedView_UnmountDiscardsLateResult(t *testing.T) {
	release := make(chan struct{})
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(context.Context) ([]domain.NewsItem, error) {
			<-release // ignores cancellation on purpose, the result arrives late
			return []domain.NewsItem{{Title: "late"}}, nil
		},
	}

	v := NewNewsFeedView(src, Options{})
	v.Mount(context.Background())
	assert.Equal(t, PhaseLoading, v.Phase())

	v.Unmount()
	close(release)

	assert.Never(t, func() bool { return v.Phase() != PhaseLoading }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Nil(t, v.Cards())
	assert.ErrorIs(t, v.Wait(context.Background()), ErrUnmounted)

	v.Mount(context.Background())
	assert.Len(t, src.GetNewsCalls(), 1, "unmounted view never fetches again")
}

func TestNewsFeedView_UnmountCancelsFetch(t *testing.T) {
	canceled := make(chan struct{})
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
			<-ctx.Done()
			close(canceled)
			return nil, ctx.Err()
		},
	}

	v := NewNewsFeedView(src, Options{})
	v.Mount(context.Background())
	v.Unmount()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("fetch context was not canceled")
	}
	assert.Equal(t, PhaseLoading, v.Phase())
}

func TestNewsFeedView_WaitContext(t *testing.T) {
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	v := NewNewsFeedView(src, Options{})
	v.Mount(context.Background())
	defer v.Unmount()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := v.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, PhaseLoading, v.Phase())
}

func TestNewsFeedView_Sanitizer(t *testing.T) {
	src := &mocks.FeedSourceMock{
		GetNewsFunc: func(context.Context) ([]domain.NewsItem, error) {
			return []domain.NewsItem{{Title: "x", Summary: `<img src="a.jpg"><p>ok</p><script>bad()</script>`}}, nil
		},
	}

	t.Run("trusted by default", func(t *testing.T) {
		v := NewNewsFeedView(src, Options{})
		v.Mount(context.Background())
		require.NoError(t, v.Wait(context.Background()))
		assert.Equal(t, "<p>ok</p><script>bad()</script>", string(v.Cards()[0].Body))
	})

	t.Run("policy sanitizer", func(t *testing.T) {
		v := NewNewsFeedView(src, Options{Sanitizer: summary.NewPolicySanitizer()})
		v.Mount(context.Background())
		require.NoError(t, v.Wait(context.Background()))
		card := v.Cards()[0]
		assert.Equal(t, "a.jpg", card.ImageURL)
		assert.Equal(t, "<p>ok</p>", string(card.Body))
	})
}
