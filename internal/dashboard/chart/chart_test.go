package chart

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func trackedItem() entity.WatchlistItem {
	return entity.WatchlistItem{
		ID:           7,
		Symbol:       "AAPL",
		InitialPrice: 150,
		TargetPrice:  157.5,
		CurrentPrice: 155,
		CreatedAt:    day("2024-06-01"),
		EndDate:      day("2024-06-08"),
	}
}

func history(points ...entity.PricePoint) *entity.PriceHistory {
	return &entity.PriceHistory{Symbol: "AAPL", Points: points}
}

func TestAccuracyChartReady(t *testing.T) {
	cfg := NewAccuracyChart(history(
		entity.PricePoint{Date: day("2024-06-03"), Price: 151},
		entity.PricePoint{Date: day("2024-06-04"), Price: 153},
	), trackedItem())

	require.True(t, cfg.Ready())
	require.Len(t, cfg.Series, 1)
	assert.Equal(t, []Point{{X: "2024-06-03", Y: 151}, {X: "2024-06-04", Y: 153}}, cfg.Series[0].Points)

	require.Len(t, cfg.ReferenceLines, 2)
	assert.Equal(t, "y", cfg.ReferenceLines[0].Axis)
	assert.Equal(t, 157.5, cfg.ReferenceLines[0].Y)
	assert.Equal(t, "x", cfg.ReferenceLines[1].Axis)
	assert.Equal(t, "2024-06-08", cfg.ReferenceLines[1].X)

	assert.Empty(t, cfg.ReferenceDots)
	assert.Less(t, cfg.YMin, 151.0)
	assert.Greater(t, cfg.YMax, 157.5)
}

func TestAccuracyChartPlotsWeekendAdjustment(t *testing.T) {
	item := trackedItem()
	item.FinalPrice = utils.ToPointer(156.2)
	item.FinalizedDate = utils.ToPointer(day("2024-06-10"))

	cfg := NewAccuracyChart(history(entity.PricePoint{Date: day("2024-06-10"), Price: 156.2}), item)

	require.Len(t, cfg.ReferenceDots, 1)
	assert.Equal(t, ReferenceDot{X: "2024-06-10", Y: 156.2, Label: "Adj. Result", Color: colorAdjusted}, cfg.ReferenceDots[0])
}

func TestAccuracyChartNoDotWhenFinalizedOnEndDate(t *testing.T) {
	item := trackedItem()
	item.FinalPrice = utils.ToPointer(156.2)
	item.FinalizedDate = utils.ToPointer(day("2024-06-08"))

	cfg := NewAccuracyChart(history(entity.PricePoint{Date: day("2024-06-08"), Price: 156.2}), item)
	assert.Empty(t, cfg.ReferenceDots)
}

func TestAccuracyChartPlaceholders(t *testing.T) {
	empty := NewAccuracyChart(history(), trackedItem())
	assert.Equal(t, StateEmpty, empty.State)
	assert.Equal(t, noPriceData, empty.Placeholder)
	assert.Empty(t, empty.Series)

	assert.Equal(t, StateEmpty, NewAccuracyChart(nil, trackedItem()).State)

	pending := NewAccuracyChart(&entity.PriceHistory{Pending: true, Message: "New prediction: Chart data updates after market close."}, trackedItem())
	assert.Equal(t, StatePending, pending.State)
	assert.Equal(t, "New prediction: Chart data updates after market close.", pending.Placeholder)
	assert.Empty(t, pending.ReferenceLines)
}

func TestForecastChart(t *testing.T) {
	bull := NewForecastChart(entity.PredictionResult{CurrentPrice: 150, PredictedPrice: 157.5})
	require.True(t, bull.Ready())
	assert.Equal(t, colorBullish, bull.Series[0].Color)
	assert.Equal(t, "7-Day Forecast", bull.Series[0].Points[1].X)

	bear := NewForecastChart(entity.PredictionResult{CurrentPrice: 150, PredictedPrice: 140})
	assert.Equal(t, colorBearish, bear.Series[0].Color)

	bad := NewForecastChart(entity.PredictionResult{CurrentPrice: 0, PredictedPrice: math.NaN()})
	assert.Equal(t, StateEmpty, bad.State)
}

func TestResolveSymbol(t *testing.T) {
	assert.Equal(t, "NYSE:JPM", ResolveSymbol("jpm"))
	assert.Equal(t, "NASDAQ:AAPL", ResolveSymbol("AAPL"))
	assert.Equal(t, "AMEX:SPY", ResolveSymbol("AMEX:SPY"))
	assert.Equal(t, "", ResolveSymbol(" "))
}

func TestNewTradingViewWidget(t *testing.T) {
	w, err := NewTradingViewWidget(WidgetSymbolOverview, "msft", "")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.tradingview.com/external-embedding/embed-widget-symbol-overview.js", w.ScriptURL)
	assert.Equal(t, "NASDAQ:MSFT", w.Symbol)
	assert.Equal(t, "dark", w.Config["colorTheme"])

	body, err := w.ConfigJSON()
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, []interface{}{[]interface{}{"NASDAQ:MSFT", "NASDAQ:MSFT|1D"}}, decoded["symbols"])

	tl, err := NewTradingViewWidget(WidgetTimeline, "", "light")
	require.NoError(t, err)
	assert.Equal(t, "market", tl.Config["feedMode"])
	assert.Equal(t, "light", tl.Config["colorTheme"])

	tape, err := NewTradingViewWidget(WidgetTickerTape, "", "dark")
	require.NoError(t, err)
	assert.Equal(t, DefaultTickerTape, tape.Config["symbols"])

	_, err = NewTradingViewWidget("hotlists", "", "dark")
	assert.Error(t, err)
}
