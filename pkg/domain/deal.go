package domain

// Deal represents a discounted store entry
type Deal struct {
	DealID      string  `json:"dealID"`
	Title       string  `json:"title"`
	SalePrice   Decimal `json:"salePrice"`
	NormalPrice Decimal `json:"normalPrice,omitempty"`
	Savings     Decimal `json:"savings"` // percentage
	Link        string  `json:"link"`
}

// Freebie represents a store entry given away for free.
// It shares the identity domain with Deal but carries no price fields.
type Freebie struct {
	DealID string `json:"dealID"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// FeedResponse is the deals feed payload, both lists come from one request
type FeedResponse struct {
	Deals    []Deal    `json:"deals"`
	Freebies []Freebie `json:"freebies"`
}

// Normalize replaces nil lists with empty ones
func (r FeedResponse) Normalize() FeedResponse {
	if r.Deals == nil {
		r.Deals = []Deal{}
	}
	if r.Freebies == nil {
		r.Freebies = []Freebie{}
	}
	return r
}
