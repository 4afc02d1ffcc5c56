package domain

// NewsItem represents a single news entry as served by the backend
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"` // display-formatted, opaque to the client
	Summary   string `json:"summary"`   // raw HTML fragment
}

// ParsedSummary is the display form of NewsItem.Summary with the lead image split out
type ParsedSummary struct {
	ImageURL string
	HasImage bool
	BodyHTML string
}
