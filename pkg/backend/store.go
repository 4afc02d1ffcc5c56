package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/time/rate"

	"github.com/umputun/gamegraf/pkg/domain"
)

const (
	steamAppURL    = "https://store.steampowered.com/app/%d/"
	epicStoreURL   = "https://store.epicgames.com/"
	epicProductURL = "https://store.epicgames.com/p/%s"
)

// StoreParams configures StoreDeals
type StoreParams struct {
	SteamURL  string
	EpicURL   string
	Limit     int
	UserAgent string
	Client    *http.Client
	Limiter   *rate.Limiter
	Retries   int
	RetryWait time.Duration
}

// StoreDeals reads discounts from Steam and giveaways from Epic
type StoreDeals struct {
	StoreParams
}

// steamSpecials is the part of the Steam featured categories response we use
type steamSpecials struct {
	Specials struct {
		Items []struct {
			ID              int64  `json:"id"`
			Name            string `json:"name"`
			DiscountPercent int    `json:"discount_percent"`
			OriginalPrice   *int64 `json:"original_price"` // cents
			FinalPrice      int64  `json:"final_price"`    // cents
		} `json:"items"`
	} `json:"specials"`
}

// epicPromotions is the part of the Epic free games response we use
type epicPromotions struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []struct {
					ID          string `json:"id"`
					Title       string `json:"title"`
					ProductSlug string `json:"productSlug"`
					Promotions  *struct {
						PromotionalOffers []struct {
							PromotionalOffers []struct {
								DiscountSetting struct {
									DiscountPercentage int `json:"discountPercentage"`
								} `json:"discountSetting"`
							} `json:"promotionalOffers"`
						} `json:"promotionalOffers"`
					} `json:"promotions"`
				} `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
}

// NewStoreDeals makes a store reader
func NewStoreDeals(params StoreParams) *StoreDeals {
	if params.Client == nil {
		params.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if params.Limiter == nil {
		params.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if params.Retries < 1 {
		params.Retries = 3
	}
	if params.RetryWait == 0 {
		params.RetryWait = 250 * time.Millisecond
	}
	return &StoreDeals{StoreParams: params}
}

// Deals returns Steam specials with the highest discount first, up to Limit entries
func (s *StoreDeals) Deals(ctx context.Context) []domain.Deal {
	var resp steamSpecials
	if err := s.getJSON(ctx, s.SteamURL, &resp); err != nil {
		log.Printf("[WARN] failed to load steam specials: %v", err)
		return []domain.Deal{}
	}

	items := resp.Specials.Items
	sort.SliceStable(items, func(i, j int) bool { return items[i].DiscountPercent > items[j].DiscountPercent })
	if s.Limit > 0 && len(items) > s.Limit {
		items = items[:s.Limit]
	}

	deals := make([]domain.Deal, 0, len(items))
	for _, it := range items {
		d := domain.Deal{
			DealID:    strconv.FormatInt(it.ID, 10),
			Title:     it.Name,
			SalePrice: centsToDecimal(it.FinalPrice),
			Savings:   domain.Decimal(strconv.Itoa(it.DiscountPercent)),
			Link:      fmt.Sprintf(steamAppURL, it.ID),
		}
		if it.OriginalPrice != nil && *it.OriginalPrice != 0 {
			d.NormalPrice = centsToDecimal(*it.OriginalPrice)
		}
		deals = append(deals, d)
	}
	return deals
}

// Freebies returns Epic titles currently given away, those with an active promotion at zero discount setting
func (s *StoreDeals) Freebies(ctx context.Context) []domain.Freebie {
	var resp epicPromotions
	if err := s.getJSON(ctx, s.EpicURL, &resp); err != nil {
		log.Printf("[WARN] failed to load epic promotions: %v", err)
		return []domain.Freebie{}
	}

	freebies := []domain.Freebie{}
	for _, el := range resp.Data.Catalog.SearchStore.Elements {
		if el.Promotions == nil || len(el.Promotions.PromotionalOffers) == 0 {
			continue
		}
		offers := el.Promotions.PromotionalOffers[0].PromotionalOffers
		if len(offers) == 0 || offers[0].DiscountSetting.DiscountPercentage != 0 {
			continue
		}
		link := epicStoreURL
		if el.ProductSlug != "" {
			link = fmt.Sprintf(epicProductURL, el.ProductSlug)
		}
		freebies = append(freebies, domain.Freebie{DealID: el.ID, Title: el.Title, Link: link})
	}
	return freebies
}

// getJSON fetches url with backoff on failures and decodes the body into dest
func (s *StoreDeals) getJSON(ctx context.Context, url string, dest any) error {
	retrier := repeater.NewBackoff(s.Retries, s.RetryWait, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		if err := s.Limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		addUpstreamHeaders(req, s.UserAgent)

		resp, err := s.Client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("decode %s: %w", url, err)
		}
		return nil
	})
}

// centsToDecimal formats cents as a two-place decimal string
func centsToDecimal(cents int64) domain.Decimal {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return domain.Decimal(fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100))
}
