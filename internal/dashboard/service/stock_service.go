package service

import (
	"context"
	"strings"
	"sync"

	"stock-forecast-dashboard/internal/dashboard/chart"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"
)

const stockNewsLimit = 10

// SentimentSection is the sentiment panel or the reason it is unavailable.
type SentimentSection struct {
	Panel view.SentimentPanel `json:"panel"`
	Error *fetch.Failure      `json:"error,omitempty"`
}

// DepthSection is the market depth panel or the reason it is unavailable.
type DepthSection struct {
	Panel view.DepthPanel `json:"panel"`
	Error *fetch.Failure  `json:"error,omitempty"`
}

// StockDetail is the stock page. Each section fails on its own.
type StockDetail struct {
	Symbol     string                `json:"symbol"`
	Prediction *view.PredictionPanel `json:"prediction,omitempty"`
	Forecast   *chart.Config         `json:"forecast,omitempty"`
	Error      *fetch.Failure        `json:"error,omitempty"`
	Sentiment  SentimentSection      `json:"sentiment"`
	Depth      DepthSection          `json:"depth"`
	News       NewsSection           `json:"news"`
	Widget     chart.Widget          `json:"widget"`

	Result *entity.PredictionResult `json:"-"`
}

// StockService builds the stock detail page.
type StockService interface {
	Detail(ctx context.Context, symbol string) StockDetail
}

// NewStockService creates a stock service.
func NewStockService(repo repository.ForecastAPIRepository, market MarketService, logger *logger.Logger) StockService {
	return &stockService{repo: repo, market: market, logger: logger}
}

type stockService struct {
	repo   repository.ForecastAPIRepository
	market MarketService
	logger *logger.Logger
}

// Detail loads the detailed forecast, sentiment, market depth and news of
// symbol concurrently.
func (s *stockService) Detail(ctx context.Context, symbol string) StockDetail {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	detail := StockDetail{Symbol: symbol}
	detail.Widget, _ = chart.NewTradingViewWidget(chart.WidgetAdvancedChart, symbol, "dark")

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		p, err := s.repo.Predict(ctx, symbol, common.ForecastDays)
		if err != nil {
			s.logFailure(ctx, "predict", symbol, err)
			detail.Error = fetch.Classify(err)
			return
		}
		panel := view.NewPredictionPanel(*p, true)
		forecast := chart.NewForecastChart(*p)
		detail.Result = p
		detail.Prediction = &panel
		detail.Forecast = &forecast
		if p.Symbol != "" {
			detail.Widget, _ = chart.NewTradingViewWidget(chart.WidgetAdvancedChart, p.Symbol, "dark")
		}
	}()

	go func() {
		defer wg.Done()
		msgs, err := s.repo.GetSentiment(ctx, symbol)
		if err != nil {
			s.logFailure(ctx, "sentiment", symbol, err)
			detail.Sentiment = SentimentSection{Panel: view.NewSentimentPanel(nil), Error: fetch.Classify(err)}
			return
		}
		detail.Sentiment = SentimentSection{Panel: view.NewSentimentPanel(msgs)}
	}()

	go func() {
		defer wg.Done()
		depth, err := s.repo.GetMarketDepth(ctx, symbol)
		if err != nil {
			s.logFailure(ctx, "market depth", symbol, err)
			detail.Depth = DepthSection{Panel: view.NewDepthPanel(nil), Error: fetch.Classify(err)}
			return
		}
		detail.Depth = DepthSection{Panel: view.NewDepthPanel(depth)}
	}()

	go func() {
		defer wg.Done()
		detail.News = s.market.News(ctx, symbol, stockNewsLimit)
	}()

	wg.Wait()
	return detail
}

func (s *stockService) logFailure(ctx context.Context, section, symbol string, err error) {
	if repository.IsCanceled(err) {
		return
	}
	s.logger.WarnContext(ctx, "Failed to load stock section",
		logger.StringField("section", section),
		logger.StringField("symbol", symbol),
		logger.ErrorField(err),
	)
}
