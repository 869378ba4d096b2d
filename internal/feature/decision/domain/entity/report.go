package entity

// MarketReport is a market document fragment returned by report search.
type MarketReport struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
