package view

import (
	"fmt"
	"math"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"
)

// Prediction panel states.
const (
	PanelReady     = "ready"
	PanelDataError = "data_error"
)

const dataErrorMessage = "Prediction data unavailable or malformed."

// Stat is one cell of the stats grid.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Headline is a classified news headline of a detailed prediction.
type Headline struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Sentiment string `json:"sentiment"`
}

// DetailSection holds the optional analysis blocks of a full prediction.
type DetailSection struct {
	TrendSignal     string     `json:"trend_signal,omitempty"`
	RSI             string     `json:"rsi,omitempty"`
	LiquidityRating string     `json:"liquidity_rating,omitempty"`
	SlippageRisk    string     `json:"slippage_risk,omitempty"`
	Headlines       []Headline `json:"headlines,omitempty"`
	HasTechnicals   bool       `json:"has_technicals"`
	HasLiquidity    bool       `json:"has_liquidity"`
	HasSentiment    bool       `json:"has_sentiment"`
}

// PredictionPanel is the rendered forecast of one symbol. In the data error
// state only Symbol and ErrorMessage are set.
type PredictionPanel struct {
	State        string               `json:"state"`
	Symbol       string               `json:"symbol"`
	CompanyName  string               `json:"company_name,omitempty"`
	CurrentPrice string               `json:"current_price,omitempty"`
	TargetPrice  string               `json:"target_price,omitempty"`
	Movement     entity.PriceMovement `json:"movement,omitempty"`
	Bullish      bool                 `json:"bullish"`
	GrowthText   string               `json:"growth_text,omitempty"`
	Confidence   string               `json:"confidence,omitempty"`
	ForecastDate string               `json:"forecast_date,omitempty"`
	Explanation  string               `json:"explanation,omitempty"`
	Stats        []Stat               `json:"stats,omitempty"`
	Detail       *DetailSection       `json:"detail,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// NewPredictionPanel renders p. A missing, zero or non-numeric price
// yields the data error state instead of a computed percentage. The detail
// blocks are included only when detailed is set and p carries them.
func NewPredictionPanel(p entity.PredictionResult, detailed bool) PredictionPanel {
	if !p.HasValidPrices() {
		return PredictionPanel{State: PanelDataError, Symbol: p.Symbol, ErrorMessage: dataErrorMessage}
	}

	panel := PredictionPanel{
		State:        PanelReady,
		Symbol:       p.Symbol,
		CompanyName:  p.CompanyName,
		CurrentPrice: Money(p.CurrentPrice),
		TargetPrice:  Money(p.PredictedPrice),
		Movement:     p.Movement(),
		Bullish:      p.Movement() == entity.MovementBullish,
		GrowthText:   GrowthText(p.GrowthPercentage()),
		Explanation:  p.Explanation,
		Stats:        NewStatsGrid(p.Stats),
	}
	if !p.ForecastDate.IsZero() {
		panel.ForecastDate = utils.FormatDate(p.ForecastDate)
	}
	if p.ConfidenceScore != nil && !math.IsNaN(*p.ConfidenceScore) {
		panel.Confidence = fmt.Sprintf("%.0f%%", confidencePercent(*p.ConfidenceScore))
	}
	if detailed && p.Detail.Level == entity.DetailFull {
		panel.Detail = newDetailSection(p.Detail)
	}
	return panel
}

// GrowthText renders an implied move as "+5.00% Upside" or "-3.10% Downside".
func GrowthText(pct float64) string {
	if pct < 0 {
		return fmt.Sprintf("%.2f%% Downside", pct)
	}
	return fmt.Sprintf("+%.2f%% Upside", pct)
}

// The backend reports confidence either as a fraction or as a percentage.
func confidencePercent(v float64) float64 {
	if v <= 1 {
		return v * 100
	}
	return v
}

// NewStatsGrid renders the quote statistics with "N/A" for missing values.
func NewStatsGrid(s entity.MarketStats) []Stat {
	marketCap := notAvailable
	if s.MarketCap != nil && *s.MarketCap != 0 {
		marketCap = fmt.Sprintf("$%.2fB", *s.MarketCap/1e9)
	}
	pe := notAvailable
	if s.PERatio != nil && *s.PERatio != 0 {
		pe = fmt.Sprintf("%.2f", *s.PERatio)
	}
	volume := notAvailable
	if s.Volume != nil && *s.Volume != 0 {
		volume = printer.Sprintf("%d", int64(*s.Volume))
	}
	return []Stat{
		{Label: "Market Cap", Value: marketCap},
		{Label: "P/E Ratio", Value: pe},
		{Label: "Volume", Value: volume},
		{Label: "52W High", Value: moneyOrNA(s.FiftyTwoWeekHigh)},
		{Label: "52W Low", Value: moneyOrNA(s.FiftyTwoWeekLow)},
		{Label: "Open", Value: moneyOrNA(s.OpenPrice)},
	}
}

func newDetailSection(d entity.PredictionDetail) *DetailSection {
	section := &DetailSection{}
	if d.Technicals != nil {
		section.HasTechnicals = true
		section.TrendSignal = d.Technicals.TrendSignal
		if !math.IsNaN(d.Technicals.RSI) {
			section.RSI = fmt.Sprintf("%.2f", d.Technicals.RSI)
		}
	}
	if d.Liquidity != nil {
		section.HasLiquidity = true
		section.LiquidityRating = d.Liquidity.LiquidityRating
		section.SlippageRisk = d.Liquidity.SlippageRisk
	}
	if d.Sentiment != nil {
		section.HasSentiment = true
		for _, n := range d.Sentiment.News {
			section.Headlines = append(section.Headlines, Headline{Title: n.Title, Link: n.Link, Sentiment: n.Sentiment})
		}
	}
	return section
}
