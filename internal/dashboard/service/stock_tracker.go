package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"
)

// StockTracker remembers the forecast last rendered on the stock page of one
// browser session so that exact forecast can be added to the watchlist.
type StockTracker struct {
	repo repository.ForecastAPIRepository
	log  *logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	shown   *entity.PredictionResult
	tracked string
}

// NewStockTracker creates a tracker with nothing shown.
func NewStockTracker(repo repository.ForecastAPIRepository, log *logger.Logger) *StockTracker {
	return &StockTracker{repo: repo, log: log, now: time.Now}
}

// Show records the forecast displayed for symbol. A nil result forgets the
// previous one.
func (t *StockTracker) Show(symbol string, p *entity.PredictionResult) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shown == nil || strings.ToUpper(t.shown.Symbol) != symbol {
		t.tracked = ""
	}
	if p == nil {
		t.shown = nil
		return
	}
	shown := *p
	if shown.Symbol == "" {
		shown.Symbol = symbol
	}
	t.shown = &shown
}

// Tracked reports whether the forecast shown for symbol was saved.
func (t *StockTracker) Tracked(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	t.mu.Lock()
	defer t.mu.Unlock()
	return symbol != "" && t.tracked == symbol
}

// Track saves the forecast shown for symbol, with the same conflict and
// force flow as the dashboard search.
func (t *StockTracker) Track(ctx context.Context, token, symbol string, force bool) TrackResult {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	t.mu.Lock()
	var shown *entity.PredictionResult
	if t.shown != nil && strings.ToUpper(t.shown.Symbol) == symbol {
		p := *t.shown
		shown = &p
	}
	t.mu.Unlock()

	if shown == nil {
		failure := fetch.NewFailure(fetch.KindInput, "Open the stock page before tracking its forecast.")
		return TrackResult{Outcome: TrackFailed, Symbol: symbol, Message: failure.Message, Error: failure}
	}

	result := trackPrediction(ctx, t.repo, t.log, token, *shown, force, t.now())
	if result.Outcome == TrackCreated {
		t.mu.Lock()
		t.tracked = symbol
		t.mu.Unlock()
	}
	return result
}

// Close always returns nil. The tracker holds no fetches.
func (t *StockTracker) Close() error {
	return nil
}
