package chart

import (
	"math"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"
)

// Chart states. A chart that is not ready carries a placeholder text and
// nothing to plot.
const (
	StateReady   = "ready"
	StateEmpty   = "empty"
	StatePending = "pending"
)

const (
	colorPrice    = "#3b82f6"
	colorTarget   = "#ef4444"
	colorDate     = "#6b7280"
	colorAdjusted = "#fb923c"
	colorBullish  = "#22c55e"
	colorBearish  = "#ef4444"

	noPriceData       = "No price data available"
	noPredictionPrice = "Prediction data unavailable"
)

// Point is one plotted value. X is a category or an ISO date.
type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Series is one line or area.
type Series struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// ReferenceLine is a dashed horizontal (Axis "y") or vertical (Axis "x") line.
type ReferenceLine struct {
	Axis  string  `json:"axis"`
	X     string  `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// ReferenceDot marks a single labelled point.
type ReferenceDot struct {
	X     string  `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Config is the rendering configuration of a chart.
type Config struct {
	State          string          `json:"state"`
	Placeholder    string          `json:"placeholder,omitempty"`
	Series         []Series        `json:"series,omitempty"`
	ReferenceLines []ReferenceLine `json:"reference_lines,omitempty"`
	ReferenceDots  []ReferenceDot  `json:"reference_dots,omitempty"`
	YMin           float64         `json:"y_min,omitempty"`
	YMax           float64         `json:"y_max,omitempty"`
}

// Ready reports whether the chart has something to plot.
func (c Config) Ready() bool { return c.State == StateReady }

// NewAccuracyChart plots the realized closes of a tracked prediction
// against its target price and target date. The result taken on a later
// trading day is marked when the market was closed on the end date.
func NewAccuracyChart(history *entity.PriceHistory, item entity.WatchlistItem) Config {
	if history != nil && history.Pending {
		msg := history.Message
		if msg == "" {
			msg = "Chart data updates after market close."
		}
		return Config{State: StatePending, Placeholder: msg}
	}
	if history == nil || len(history.Points) == 0 {
		return Config{State: StateEmpty, Placeholder: noPriceData}
	}

	series := Series{Name: "Price", Kind: "line", Color: colorPrice, Points: make([]Point, 0, len(history.Points))}
	values := make([]float64, 0, len(history.Points)+2)
	for _, p := range history.Points {
		series.Points = append(series.Points, Point{X: utils.FormatDate(p.Date), Y: p.Price})
		values = append(values, p.Price)
	}

	cfg := Config{
		State:  StateReady,
		Series: []Series{series},
		ReferenceLines: []ReferenceLine{
			{Axis: "y", Y: item.TargetPrice, Label: "Target", Color: colorTarget},
			{Axis: "x", X: utils.FormatDate(item.EndDate), Label: "Target Date", Color: colorDate},
		},
	}
	values = append(values, item.TargetPrice)

	if item.IsWeekendAdjusted() {
		y := item.CurrentPrice
		if item.FinalPrice != nil {
			y = *item.FinalPrice
		}
		cfg.ReferenceDots = append(cfg.ReferenceDots, ReferenceDot{
			X:     utils.FormatDate(*item.FinalizedDate),
			Y:     y,
			Label: "Adj. Result",
			Color: colorAdjusted,
		})
		values = append(values, y)
	}

	cfg.YMin, cfg.YMax = domain(values)
	return cfg
}

// NewForecastChart is the two-point area chart of current price versus the
// seven day forecast.
func NewForecastChart(p entity.PredictionResult) Config {
	if !p.HasValidPrices() {
		return Config{State: StateEmpty, Placeholder: noPredictionPrice}
	}
	color := colorBullish
	if p.Movement() == entity.MovementBearish {
		color = colorBearish
	}
	cfg := Config{
		State: StateReady,
		Series: []Series{{
			Name:  "Price",
			Kind:  "area",
			Color: color,
			Points: []Point{
				{X: "Current", Y: p.CurrentPrice},
				{X: "7-Day Forecast", Y: p.PredictedPrice},
			},
		}},
	}
	cfg.YMin, cfg.YMax = domain([]float64{p.CurrentPrice, p.PredictedPrice})
	return cfg
}

// domain pads the value range by 2% on each side, rounded to cents.
func domain(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	pad := (hi - lo) * 0.02
	if pad == 0 {
		pad = math.Abs(hi) * 0.02
	}
	return math.Floor((lo-pad)*100) / 100, math.Ceil((hi+pad)*100) / 100
}
