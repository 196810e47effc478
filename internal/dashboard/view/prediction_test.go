package view

import (
	"math"
	"testing"
	"time"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionPanelUpside(t *testing.T) {
	p := entity.PredictionResult{
		Symbol:          "AAPL",
		CompanyName:     "Apple Inc.",
		CurrentPrice:    150.00,
		PredictedPrice:  157.50,
		ConfidenceScore: utils.ToPointer(0.82),
		ForecastDate:    time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		Explanation:     "Momentum remains positive.",
	}

	panel := NewPredictionPanel(p, false)
	assert.Equal(t, PanelReady, panel.State)
	assert.Equal(t, "+5.00% Upside", panel.GrowthText)
	assert.Equal(t, "$150.00", panel.CurrentPrice)
	assert.Equal(t, "$157.50", panel.TargetPrice)
	assert.True(t, panel.Bullish)
	assert.Equal(t, entity.MovementBullish, panel.Movement)
	assert.Equal(t, "82%", panel.Confidence)
	assert.Equal(t, "2024-06-07", panel.ForecastDate)
	assert.Nil(t, panel.Detail)
}

func TestPredictionPanelDownside(t *testing.T) {
	panel := NewPredictionPanel(entity.PredictionResult{Symbol: "TSLA", CurrentPrice: 200, PredictedPrice: 193.8}, false)
	assert.Equal(t, "-3.10% Downside", panel.GrowthText)
	assert.False(t, panel.Bullish)
}

func TestPredictionPanelDataError(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		predicted float64
	}{
		{"zero current price", 0, 157.5},
		{"missing predicted price", 150, math.NaN()},
		{"missing current price", math.NaN(), 157.5},
		{"infinite predicted price", 150, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewPredictionPanel(entity.PredictionResult{Symbol: "AAPL", CurrentPrice: tt.current, PredictedPrice: tt.predicted}, true)
			assert.Equal(t, PanelDataError, panel.State)
			assert.Empty(t, panel.GrowthText)
			assert.NotEmpty(t, panel.ErrorMessage)
		})
	}
}

func TestPredictionPanelDetail(t *testing.T) {
	p := entity.PredictionResult{
		Symbol:         "AAPL",
		CurrentPrice:   150,
		PredictedPrice: 157.5,
		Detail: entity.NewPredictionDetail(
			&entity.Technicals{TrendSignal: "UP", RSI: 61.234},
			nil,
			&entity.SentimentSummary{News: []entity.SentimentHeadline{{Title: "Beats", Link: "https://x", Sentiment: "Positive"}}},
		),
	}

	assert.Nil(t, NewPredictionPanel(p, false).Detail)

	panel := NewPredictionPanel(p, true)
	require.NotNil(t, panel.Detail)
	assert.True(t, panel.Detail.HasTechnicals)
	assert.False(t, panel.Detail.HasLiquidity)
	assert.True(t, panel.Detail.HasSentiment)
	assert.Equal(t, "61.23", panel.Detail.RSI)
	assert.Len(t, panel.Detail.Headlines, 1)

	summary := p
	summary.Detail = entity.NewPredictionDetail(nil, nil, nil)
	assert.Nil(t, NewPredictionPanel(summary, true).Detail)
}

func TestStatsGrid(t *testing.T) {
	stats := NewStatsGrid(entity.MarketStats{
		MarketCap:        utils.ToPointer(2950000000000.0),
		Volume:           utils.ToPointer(45231000.0),
		FiftyTwoWeekHigh: utils.ToPointer(199.62),
	})

	byLabel := map[string]string{}
	for _, s := range stats {
		byLabel[s.Label] = s.Value
	}
	assert.Len(t, stats, 6)
	assert.Equal(t, "$2950.00B", byLabel["Market Cap"])
	assert.Equal(t, "N/A", byLabel["P/E Ratio"])
	assert.Equal(t, "45,231,000", byLabel["Volume"])
	assert.Equal(t, "$199.62", byLabel["52W High"])
	assert.Equal(t, "N/A", byLabel["52W Low"])
	assert.Equal(t, "N/A", byLabel["Open"])
}

func TestGrowthText(t *testing.T) {
	assert.Equal(t, "+0.00% Upside", GrowthText(0))
	assert.Equal(t, "+12.34% Upside", GrowthText(12.34))
	assert.Equal(t, "-0.50% Downside", GrowthText(-0.5))
}
