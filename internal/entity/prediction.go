package entity

import (
	"math"
	"time"
)

// PriceMovement is the direction of a forecast relative to the current price.
type PriceMovement string

const (
	MovementBullish PriceMovement = "BULLISH"
	MovementBearish PriceMovement = "BEARISH"
	MovementNeutral PriceMovement = "NEUTRAL"
)

// DetailLevel says how much of the optional analysis a prediction carries.
type DetailLevel string

const (
	DetailSummary DetailLevel = "summary"
	DetailFull    DetailLevel = "full"
)

// Technicals is the technical-analysis block of a full prediction.
type Technicals struct {
	TrendSignal string  `json:"trend_signal"`
	RSI         float64 `json:"rsi"`
}

// Liquidity is the liquidity block of a full prediction.
type Liquidity struct {
	LiquidityRating string `json:"liquidity_rating"`
	SlippageRisk    string `json:"slippage_risk"`
}

// SentimentHeadline is a classified headline attached to a full prediction.
type SentimentHeadline struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Sentiment string `json:"sentiment"`
}

// SentimentSummary is the sentiment block of a full prediction.
type SentimentSummary struct {
	News []SentimentHeadline `json:"news"`
}

// PredictionDetail replaces ad hoc presence checks on the optional analysis
// blocks. Level is DetailFull when at least one block is present.
type PredictionDetail struct {
	Level      DetailLevel       `json:"level"`
	Technicals *Technicals       `json:"technicals,omitempty"`
	Liquidity  *Liquidity        `json:"liquidity,omitempty"`
	Sentiment  *SentimentSummary `json:"sentiment,omitempty"`
}

// NewPredictionDetail derives the detail level from the blocks present.
func NewPredictionDetail(t *Technicals, l *Liquidity, s *SentimentSummary) PredictionDetail {
	d := PredictionDetail{Level: DetailSummary, Technicals: t, Liquidity: l, Sentiment: s}
	if t != nil || l != nil || s != nil {
		d.Level = DetailFull
	}
	return d
}

// MarketStats are the optional quote statistics shown in the stats grid.
type MarketStats struct {
	MarketCap        *float64 `json:"market_cap,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low,omitempty"`
	OpenPrice        *float64 `json:"open_price,omitempty"`
	HighPrice        *float64 `json:"high_price,omitempty"`
	LowPrice         *float64 `json:"low_price,omitempty"`
	Volume           *float64 `json:"volume,omitempty"`
}

// PredictionResult is the canonical forecast shape, independent of the
// backend version that produced it. Prices are NaN when the backend omitted
// them so that validation can tell "missing" from a real value.
type PredictionResult struct {
	Symbol          string           `json:"symbol"`
	CompanyName     string           `json:"company_name,omitempty"`
	CurrentPrice    float64          `json:"current_price"`
	PredictedPrice  float64          `json:"predicted_price"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
	ForecastDate    time.Time        `json:"forecast_date"`
	Explanation     string           `json:"explanation"`
	Stats           MarketStats      `json:"stats"`
	Detail          PredictionDetail `json:"detail"`
}

// HasValidPrices reports whether both prices are finite and non-zero.
func (p PredictionResult) HasValidPrices() bool {
	return validPrice(p.CurrentPrice) && validPrice(p.PredictedPrice)
}

// Movement compares the forecast to the current price.
func (p PredictionResult) Movement() PriceMovement {
	switch {
	case p.PredictedPrice > p.CurrentPrice:
		return MovementBullish
	case p.PredictedPrice < p.CurrentPrice:
		return MovementBearish
	default:
		return MovementNeutral
	}
}

// GrowthPercentage is the implied move in percent, rounded to two decimals.
// Callers must check HasValidPrices first.
func (p PredictionResult) GrowthPercentage() float64 {
	pct := (p.PredictedPrice - p.CurrentPrice) / p.CurrentPrice * 100
	return math.Round(pct*100) / 100
}

func validPrice(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
