package view

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/umputun/gamegraf/pkg/domain"
	"github.com/umputun/gamegraf/pkg/theme"
)

// DealCard is the display form of a deal
type DealCard struct {
	Key             string
	Title           string
	SalePrice       string // "$9.99"
	NormalPrice     string // "$19.99", empty if absent
	NormalPriceNote string // "(usually $19.99)", empty if absent
	Savings         string // "50.0%"
	Link            string
}

// FreebieCard is the display form of a freebie
type FreebieCard struct {
	Key   string
	Title string
	Link  string
}

// DealsModel is everything the deals feed renders for a theme mode
type DealsModel struct {
	Deals        []DealCard
	Freebies     []FreebieCard
	FreebieStyle theme.Colors
}

// DealsFeedView drives the deals and freebies lifecycle, both lists come from one fetch
type DealsFeedView struct {
	loader  *loader[domain.FeedResponse]
	palette theme.Palette
}

// NewDealsFeedView makes an unmounted deals view
func NewDealsFeedView(src FeedSource, opts Options) *DealsFeedView {
	opts = opts.withDefaults()
	return &DealsFeedView{
		loader: newLoader("deals", src.GetDeals, func() domain.FeedResponse {
			return domain.FeedResponse{}.Normalize()
		}),
		palette: opts.Palette,
	}
}

// Tab returns TabDeals
func (v *DealsFeedView) Tab() Tab { return TabDeals }

// Mount starts the fetch
func (v *DealsFeedView) Mount(ctx context.Context) { v.loader.mount(ctx) }

// Unmount cancels a pending fetch and drops its result
func (v *DealsFeedView) Unmount() { v.loader.unmount() }

// Phase returns the current fetch phase
func (v *DealsFeedView) Phase() Phase { return v.loader.current().Phase() }

// State returns the fetch state snapshot
func (v *DealsFeedView) State() FetchState[domain.FeedResponse] { return v.loader.current() }

// Wait blocks until the feed settles
func (v *DealsFeedView) Wait(ctx context.Context) error {
	_, err := v.loader.wait(ctx)
	return err
}

// Model returns cards for the current data and freebie colors for mode.
// Colors are derived here, at render time, so a theme change never needs a refetch.
func (v *DealsFeedView) Model(mode theme.Mode) DealsModel {
	res := DealsModel{FreebieStyle: v.palette.Freebie(mode)}
	data, ok := v.loader.current().Value()
	if !ok {
		return res
	}

	res.Deals = lo.Map(data.Deals, func(d domain.Deal, _ int) DealCard {
		card := DealCard{
			Key:       d.DealID,
			Title:     d.Title,
			SalePrice: FormatPrice(d.SalePrice),
			Savings:   FormatPercent(d.Savings),
			Link:      d.Link,
		}
		if !d.NormalPrice.IsZero() {
			card.NormalPrice = FormatPrice(d.NormalPrice)
			card.NormalPriceNote = "(usually " + card.NormalPrice + ")"
		}
		return card
	})
	res.Freebies = lo.Map(data.Freebies, func(f domain.Freebie, _ int) FreebieCard {
		return FreebieCard{Key: f.DealID, Title: f.Title, Link: f.Link}
	})
	return res
}

// FormatPrice formats a decimal as dollars with two places, non-numeric values are shown as is
func FormatPrice(d domain.Decimal) string {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return "$" + d.String()
	}
	return "$" + v.StringFixed(2)
}

// FormatPercent formats a percentage with exactly one place. The leading number of the
// value is used ("50%" is 50) and rounded from its float64 value, so "1.45" gives 1.4%.
// Values without a leading number show as 0.0%.
func FormatPercent(d domain.Decimal) string {
	f, ok := leadingFloat(d.String())
	if !ok {
		return "0.0%"
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity%"
	case math.IsInf(f, -1):
		return "-Infinity%"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64) + "%"
	}

	// exact decimal expansion of the float, rounded half away from zero
	exact := decimal.RequireFromString(strconv.FormatFloat(f, 'f', exactFloatDigits, 64))
	return exact.StringFixed(1) + "%"
}

// exactFloatDigits is enough fraction digits to print any float64 without rounding
const exactFloatDigits = 1074

var leadingFloatRe = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// leadingFloat parses the longest numeric prefix after leading whitespace
func leadingFloat(s string) (float64, bool) {
	prefix := leadingFloatRe.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if prefix == "" {
		return 0, false
	}
	if strings.HasSuffix(prefix, "Infinity") {
		return math.Inf(lo.Ternary(strings.HasPrefix(prefix, "-"), -1, 1)), true
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil { // out of range values come back as +-Inf with ErrRange
		return f, math.IsInf(f, 0)
	}
	return f, true
}
