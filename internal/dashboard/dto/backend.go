package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat decodes a number that the backend may send as a JSON number, a
// numeric string, "NaN", or null. Missing and unparsable values become NaN.
type FlexFloat struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexFloat{Value: math.NaN()}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			v = math.NaN()
		}
		*f = FlexFloat{Value: v, Set: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat{Value: v, Set: true}
	return nil
}

// Float returns the value, or NaN when the field was absent or null.
func (f *FlexFloat) Float() float64 {
	if f == nil || !f.Set {
		return math.NaN()
	}
	return f.Value
}

// Ptr returns a pointer to the value, or nil when absent, null or NaN.
func (f *FlexFloat) Ptr() *float64 {
	if f == nil || !f.Set || math.IsNaN(f.Value) {
		return nil
	}
	v := f.Value
	return &v
}

// FlexString decodes a value the backend may send as a string or a number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Symbol string `json:"symbol"`
	Days   int    `json:"days"`
}

// PredictionPayload covers every field name the predict endpoint has used
// across backend versions.
type PredictionPayload struct {
	Symbol           string                 `json:"symbol"`
	CompanyName      string                 `json:"company_name"`
	CurrentPrice     *FlexFloat             `json:"current_price"`
	PredictedPrice   *FlexFloat             `json:"predicted_price"`
	PredictedPrice7D *FlexFloat             `json:"predicted_price_7d"`
	TargetPrice      *FlexFloat             `json:"target_price"`
	ConfidenceScore  *FlexFloat             `json:"confidence_score"`
	ForecastDate     string                 `json:"forecast_date"`
	TargetDate       string                 `json:"target_date"`
	Explanation      string                 `json:"explanation"`
	MarketCap        *FlexFloat             `json:"market_cap"`
	PERatio          *FlexFloat             `json:"pe_ratio"`
	DividendYield    *FlexFloat             `json:"dividend_yield"`
	FiftyTwoWeekHigh *FlexFloat             `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *FlexFloat             `json:"fifty_two_week_low"`
	OpenPrice        *FlexFloat             `json:"open_price"`
	HighPrice        *FlexFloat             `json:"high_price"`
	LowPrice         *FlexFloat             `json:"low_price"`
	Volume           *FlexFloat             `json:"volume"`
	Technicals       *TechnicalsPayload     `json:"technicals"`
	Liquidity        *LiquidityPayload      `json:"liquidity"`
	Sentiment        *SentimentBlockPayload `json:"sentiment"`
}

// TechnicalsPayload is the optional technicals block.
type TechnicalsPayload struct {
	TrendSignal string    `json:"trend_signal"`
	RSI         FlexFloat `json:"rsi"`
}

// LiquidityPayload is the optional liquidity block.
type LiquidityPayload struct {
	LiquidityRating string `json:"liquidity_rating"`
	SlippageRisk    string `json:"slippage_risk"`
}

// SentimentBlockPayload is the optional sentiment block of a prediction.
type SentimentBlockPayload struct {
	News []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Sentiment string `json:"sentiment"`
	} `json:"news"`
}

// WatchlistAddRequest is the body of POST /watchlist.
type WatchlistAddRequest struct {
	Symbol       string  `json:"symbol"`
	InitialPrice float64 `json:"initial_price"`
	TargetPrice  float64 `json:"target_price"`
	EndDate      string  `json:"end_date"`
}

// WatchlistPerformancePayload is one row of GET /watchlist/performance.
type WatchlistPerformancePayload struct {
	ID            int        `json:"id"`
	Symbol        string     `json:"symbol"`
	InitialPrice  FlexFloat  `json:"initial_price"`
	TargetPrice   FlexFloat  `json:"target_price"`
	CurrentPrice  FlexFloat  `json:"current_price"`
	FinalPrice    *FlexFloat `json:"final_price"`
	CreatedAt     string     `json:"created_at"`
	EndDate       string     `json:"end_date"`
	FinalizedDate *string    `json:"finalized_date"`
	AccuracyScore FlexFloat  `json:"accuracy_score"`
	Status        string     `json:"status"`
}

// PricePointPayload is one element of GET /history/{symbol}.
type PricePointPayload struct {
	Date    string    `json:"date"`
	Price   FlexFloat `json:"price"`
	Message string    `json:"message"`
}

// MoverPayload is one element of the movers lists.
type MoverPayload struct {
	Symbol    string     `json:"symbol"`
	Price     FlexFloat  `json:"price"`
	ChangePct FlexFloat  `json:"change_pct"`
	Volume    FlexString `json:"volume"`
}

// MarketMoversPayload is the body of GET /market/movers.
type MarketMoversPayload struct {
	Gainers []MoverPayload `json:"gainers"`
	Losers  []MoverPayload `json:"losers"`
	Active  []MoverPayload `json:"active"`
}

// QuotePayload is one value of the GET /quotes map.
type QuotePayload struct {
	Price         FlexFloat `json:"price"`
	ChangePercent FlexFloat `json:"change_percent"`
}

// NewsPayload is one element of GET /news/{symbolOrMARKET}. Older backends
// used "title"/"link" instead of "headline"/"url".
type NewsPayload struct {
	Headline  string `json:"headline"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Datetime  *int64 `json:"datetime"`
	Published string `json:"published"`
}

// SentimentMessagePayload is one element of GET /sentiment/{symbol}.
type SentimentMessagePayload struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Sentiment string `json:"sentiment"`
	Type      string `json:"type"`
	IsLawsuit bool   `json:"is_lawsuit"`
}

// SentimentEnvelope is the object form of GET /sentiment/{symbol}.
type SentimentEnvelope struct {
	Messages []SentimentMessagePayload `json:"messages"`
}

// MarketDepthPayload is the body of GET /market/data/{symbol}.
type MarketDepthPayload struct {
	Symbol      string `json:"symbol"`
	OptionsFlow *struct {
		PutCallRatio FlexFloat `json:"put_call_ratio"`
		CallVolume   FlexFloat `json:"call_volume"`
		PutVolume    FlexFloat `json:"put_volume"`
		Sentiment    string    `json:"sentiment"`
	} `json:"options_flow"`
	InstitutionalOwnership []struct {
		Holder   string    `json:"holder"`
		Shares   FlexFloat `json:"shares"`
		PctHeld  FlexFloat `json:"pct_held"`
		ValueUSD FlexFloat `json:"value"`
	} `json:"institutional_ownership"`
}

// ErrorPayload is the error body of the backend. Detail is a string or a
// list of validation errors.
type ErrorPayload struct {
	Detail json.RawMessage `json:"detail"`
}
