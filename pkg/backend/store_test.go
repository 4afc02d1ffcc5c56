package backend

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

const steamFixture = `{"specials": {"items": [
	{"id": 10, "name": "Small", "discount_percent": 10, "original_price": 1000, "final_price": 900},
	{"id": 20, "name": "Big", "discount_percent": 75, "original_price": 1999, "final_price": 499},
	{"id": 30, "name": "Free weekend", "discount_percent": 50, "original_price": 0, "final_price": 0},
	{"id": 40, "name": "No original", "discount_percent": 40, "final_price": 1250}
]}}`

const epicFixture = `{"data": {"Catalog": {"searchStore": {"elements": [
	{"id": "e1", "title": "Free One", "productSlug": "free-one",
	 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"discountSetting": {"discountPercentage": 0}}]}]}},
	{"id": "e2", "title": "Discounted", "productSlug": "disc",
	 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"discountSetting": {"discountPercentage": 50}}]}]}},
	{"id": "e3", "title": "Upcoming", "productSlug": "up",
	 "promotions": {"promotionalOffers": [], "upcomingPromotionalOffers": []}},
	{"id": "e4", "title": "No promotions", "promotions": null},
	{"id": "e5", "title": "Empty offer", "promotions": {"promotionalOffers": [{"promotionalOffers": []}]}},
	{"id": "e6", "title": "Free no slug",
	 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"discountSetting": {"discountPercentage": 0}}]}]}}
]}}}}`

func storeServer(t *testing.T, steamFails, epicFails *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/steam", func(w http.ResponseWriter, r *http.Request) {
		if steamFails != nil && steamFails.Add(-1) >= 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(steamFixture))
	})
	mux.HandleFunc("/epic", func(w http.ResponseWriter, r *http.Request) {
		if epicFails != nil && epicFails.Add(-1) >= 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(epicFixture))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestStore(srvURL string, limit int) *StoreDeals {
	return NewStoreDeals(StoreParams{
		SteamURL:  srvURL + "/steam",
		EpicURL:   srvURL + "/epic",
		Limit:     limit,
		UserAgent: "test",
		RetryWait: time.Millisecond,
	})
}

func TestStoreDeals_Deals(t *testing.T) {
	srv := storeServer(t, nil, nil)
	deals := newTestStore(srv.URL, 3).Deals(context.Background())
	require.Len(t, deals, 3)

	assert.Equal(t, domain.Deal{
		DealID:      "20",
		Title:       "Big",
		SalePrice:   "4.99",
		NormalPrice: "19.99",
		Savings:     "75",
		Link:        "https://store.steampowered.com/app/20/",
	}, deals[0])

	assert.Equal(t, "Free weekend", deals[1].Title)
	assert.Equal(t, domain.Decimal("0.00"), deals[1].SalePrice)
	assert.Empty(t, deals[1].NormalPrice, "zero original price omitted")

	assert.Equal(t, "No original", deals[2].Title)
	assert.Empty(t, deals[2].NormalPrice)
	assert.Equal(t, domain.Decimal("12.50"), deals[2].SalePrice)
}

func TestStoreDeals_DealsNoLimit(t *testing.T) {
	srv := storeServer(t, nil, nil)
	deals := newTestStore(srv.URL, 0).Deals(context.Background())
	require.Len(t, deals, 4)
	assert.Equal(t, "Small", deals[3].Title)
}

func TestStoreDeals_Freebies(t *testing.T) {
	srv := storeServer(t, nil, nil)
	freebies := newTestStore(srv.URL, 0).Freebies(context.Background())
	assert.Equal(t, []domain.Freebie{
		{DealID: "e1", Title: "Free One", Link: "https://store.epicgames.com/p/free-one"},
		{DealID: "e6", Title: "Free no slug", Link: "https://store.epicgames.com/"},
	}, freebies)
}

func TestStoreDeals_RetriesTransientFailure(t *testing.T) {
	var steamFails atomic.Int32
	steamFails.Store(2)
	srv := storeServer(t, &steamFails, nil)

	deals := newTestStore(srv.URL, 1).Deals(context.Background())
	require.Len(t, deals, 1)
	assert.Equal(t, "Big", deals[0].Title)
}

func TestStoreDeals_FailureYieldsEmpty(t *testing.T) {
	var steamFails, epicFails atomic.Int32
	steamFails.Store(100)
	epicFails.Store(100)
	srv := storeServer(t, &steamFails, &epicFails)
	store := newTestStore(srv.URL, 5)

	deals := store.Deals(context.Background())
	assert.NotNil(t, deals)
	assert.Empty(t, deals)

	freebies := store.Freebies(context.Background())
	assert.NotNil(t, freebies)
	assert.Empty(t, freebies)
}

func TestStoreDeals_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	store := NewStoreDeals(StoreParams{SteamURL: srv.URL, EpicURL: srv.URL, RetryWait: time.Millisecond})
	assert.Empty(t, store.Deals(context.Background()))
	assert.Empty(t, store.Freebies(context.Background()))
}

func TestStoreDeals_Headers(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua, accept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"specials": {"items": []}}`))
	}))
	defer srv.Close()

	store := NewStoreDeals(StoreParams{SteamURL: srv.URL, UserAgent: "GameGraf/1.0"})
	assert.Empty(t, store.Deals(context.Background()))
	assert.Equal(t, "GameGraf/1.0", ua)
	assert.Contains(t, accept, "application/json")
}

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, domain.Decimal("0.00"), centsToDecimal(0))
	assert.Equal(t, domain.Decimal("0.05"), centsToDecimal(5))
	assert.Equal(t, domain.Decimal("19.99"), centsToDecimal(1999))
	assert.Equal(t, domain.Decimal("-1.50"), centsToDecimal(-150))
}
