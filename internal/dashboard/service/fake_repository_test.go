package service

import (
	"context"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/entity"
)

type trackCall struct {
	token string
	req   entity.TrackRequest
	force bool
}

type historyCall struct {
	symbol     string
	start, end time.Time
}

// fakeForecastRepo is a ForecastAPIRepository whose methods are stubbed per test.
type fakeForecastRepo struct {
	mu sync.Mutex

	predict     func(ctx context.Context, symbol string) (*entity.PredictionResult, error)
	performance func(ctx context.Context, token string) ([]entity.WatchlistItem, error)
	add         func(ctx context.Context, call trackCall) error
	history     func(ctx context.Context, call historyCall) (*entity.PriceHistory, error)
	movers      func(ctx context.Context) (*entity.MarketMovers, error)
	sentiment   func(ctx context.Context, symbol string) ([]entity.SentimentMessage, error)
	depth       func(ctx context.Context, symbol string) (*entity.MarketDepth, error)
	quotes      func(ctx context.Context, symbols []string) ([]entity.Quote, error)
	news        func(ctx context.Context, key string) ([]entity.NewsItem, error)

	trackCalls   []trackCall
	historyCalls []historyCall
	moversCalls  int
}

func (f *fakeForecastRepo) Predict(ctx context.Context, symbol string, _ int) (*entity.PredictionResult, error) {
	return f.predict(ctx, symbol)
}

func (f *fakeForecastRepo) GetWatchlistPerformance(ctx context.Context, token string) ([]entity.WatchlistItem, error) {
	return f.performance(ctx, token)
}

func (f *fakeForecastRepo) AddWatchlistItem(ctx context.Context, token string, req entity.TrackRequest, force bool) error {
	call := trackCall{token: token, req: req, force: force}
	f.mu.Lock()
	f.trackCalls = append(f.trackCalls, call)
	f.mu.Unlock()
	return f.add(ctx, call)
}

func (f *fakeForecastRepo) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) (*entity.PriceHistory, error) {
	call := historyCall{symbol: symbol, start: start, end: end}
	f.mu.Lock()
	f.historyCalls = append(f.historyCalls, call)
	f.mu.Unlock()
	return f.history(ctx, call)
}

func (f *fakeForecastRepo) GetMarketMovers(ctx context.Context) (*entity.MarketMovers, error) {
	f.mu.Lock()
	f.moversCalls++
	f.mu.Unlock()
	return f.movers(ctx)
}

func (f *fakeForecastRepo) GetSentiment(ctx context.Context, symbol string) ([]entity.SentimentMessage, error) {
	return f.sentiment(ctx, symbol)
}

func (f *fakeForecastRepo) GetMarketDepth(ctx context.Context, symbol string) (*entity.MarketDepth, error) {
	return f.depth(ctx, symbol)
}

func (f *fakeForecastRepo) GetQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	return f.quotes(ctx, symbols)
}

func (f *fakeForecastRepo) GetNews(ctx context.Context, key string) ([]entity.NewsItem, error) {
	return f.news(ctx, key)
}

func (f *fakeForecastRepo) moversCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.moversCalls
}

func prediction(symbol string, current, predicted float64) *entity.PredictionResult {
	return &entity.PredictionResult{
		Symbol:         symbol,
		CurrentPrice:   current,
		PredictedPrice: predicted,
		ForecastDate:   time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		Detail:         entity.NewPredictionDetail(nil, nil, nil),
	}
}
