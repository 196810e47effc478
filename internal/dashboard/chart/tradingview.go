package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WidgetKind selects a TradingView embed.
type WidgetKind string

const (
	WidgetSymbolOverview WidgetKind = "symbol-overview"
	WidgetTickerTape     WidgetKind = "ticker-tape"
	WidgetTimeline       WidgetKind = "timeline"
	WidgetAdvancedChart  WidgetKind = "advanced-chart"
)

const embedBaseURL = "https://s3.tradingview.com/external-embedding/embed-widget-%s.js"

// TickerSymbol is one entry of the ticker tape.
type TickerSymbol struct {
	ProName string `json:"proName"`
	Title   string `json:"title"`
}

// DefaultTickerTape is the index and large cap strip shown on every page.
var DefaultTickerTape = []TickerSymbol{
	{ProName: "FOREXCOM:SPXUSD", Title: "S&P 500 Index"},
	{ProName: "AMEX:SPY", Title: "SPDR S&P 500 ETF"},
	{ProName: "AMEX:VXX", Title: "VIX PROXY (VXX)"},
	{ProName: "NASDAQ:AAPL", Title: "Apple"},
	{ProName: "NASDAQ:MSFT", Title: "Microsoft"},
	{ProName: "NASDAQ:NVDA", Title: "Nvidia"},
	{ProName: "NASDAQ:AMZN", Title: "Amazon"},
	{ProName: "NASDAQ:GOOGL", Title: "Alphabet"},
	{ProName: "NASDAQ:META", Title: "Meta"},
	{ProName: "NYSE:BRK.B", Title: "Berkshire Hathaway"},
	{ProName: "NYSE:JPM", Title: "JPMorgan Chase"},
}

// Widget is an embeddable TradingView script and its JSON configuration.
type Widget struct {
	Kind      WidgetKind             `json:"kind"`
	Symbol    string                 `json:"symbol,omitempty"`
	ScriptURL string                 `json:"script_url"`
	Config    map[string]interface{} `json:"config"`
}

// ConfigJSON is the body placed inside the embed script tag.
func (w Widget) ConfigJSON() (string, error) {
	b, err := json.Marshal(w.Config)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ResolveSymbol qualifies a bare ticker with an exchange. Tickers of up to
// three letters are assumed to list on NYSE, longer ones on NASDAQ.
func ResolveSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || strings.Contains(symbol, ":") {
		return symbol
	}
	if len(symbol) <= 3 {
		return "NYSE:" + symbol
	}
	return "NASDAQ:" + symbol
}

// NewTradingViewWidget builds the configuration of a widget. symbol is
// ignored by widgets that are not tied to one instrument. theme defaults
// to "dark".
func NewTradingViewWidget(kind WidgetKind, symbol, theme string) (Widget, error) {
	if theme != "light" {
		theme = "dark"
	}
	cfg := map[string]interface{}{
		"colorTheme":    theme,
		"dateRange":     "12M",
		"locale":        "en",
		"width":         "100%",
		"height":        "100%",
		"isTransparent": true,
		"autosize":      true,
	}
	w := Widget{Kind: kind, ScriptURL: fmt.Sprintf(embedBaseURL, kind), Config: cfg}

	switch kind {
	case WidgetSymbolOverview:
		if symbol == "" {
			symbol = "AAPL"
		}
		w.Symbol = ResolveSymbol(symbol)
		cfg["symbols"] = [][]string{{w.Symbol, w.Symbol + "|1D"}}
		cfg["chartType"] = "area"
		cfg["showVolume"] = true
	case WidgetAdvancedChart:
		if symbol == "" {
			symbol = "AAPL"
		}
		w.Symbol = ResolveSymbol(symbol)
		cfg["symbol"] = w.Symbol
		cfg["interval"] = "D"
		cfg["theme"] = theme
		cfg["style"] = "1"
		cfg["hide_side_toolbar"] = false
		delete(cfg, "dateRange")
	case WidgetTickerTape:
		cfg["displayMode"] = "adaptive"
		cfg["symbols"] = DefaultTickerTape
	case WidgetTimeline:
		cfg["feedMode"] = "market"
		cfg["market"] = "stock"
		if symbol != "" {
			w.Symbol = ResolveSymbol(symbol)
			cfg["feedMode"] = "symbol"
			cfg["symbol"] = w.Symbol
			delete(cfg, "market")
		}
	default:
		return Widget{}, fmt.Errorf("unknown widget kind %q", kind)
	}
	return w, nil
}
