package entity

import "time"

// MarketMoverItem is one row of the movers snapshot.
type MarketMoverItem struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Volume    string  `json:"volume"`
}

// MarketMovers groups the day's gainers, losers and most active symbols.
type MarketMovers struct {
	Gainers   []MarketMoverItem `json:"gainers"`
	Losers    []MarketMoverItem `json:"losers"`
	Active    []MarketMoverItem `json:"active"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Quote is a live price snapshot for one symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceHistory is a daily close series. Pending is set when the backend
// answered with its "not enough history yet" sentinel, which is distinct
// from an empty series.
type PriceHistory struct {
	Symbol  string       `json:"symbol"`
	Points  []PricePoint `json:"points"`
	Pending bool         `json:"pending"`
	Message string       `json:"message,omitempty"`
}

// OptionsFlow summarises options activity for a symbol.
type OptionsFlow struct {
	PutCallRatio float64 `json:"put_call_ratio"`
	CallVolume   float64 `json:"call_volume"`
	PutVolume    float64 `json:"put_volume"`
	Sentiment    string  `json:"sentiment"`
}

// InstitutionalHolder is one institutional owner.
type InstitutionalHolder struct {
	Holder   string  `json:"holder"`
	Shares   float64 `json:"shares"`
	PctHeld  float64 `json:"pct_held"`
	ValueUSD float64 `json:"value"`
}

// MarketDepth is the options flow and institutional ownership of a symbol.
type MarketDepth struct {
	Symbol                 string                `json:"symbol"`
	OptionsFlow            *OptionsFlow          `json:"options_flow,omitempty"`
	InstitutionalOwnership []InstitutionalHolder `json:"institutional_ownership"`
}
