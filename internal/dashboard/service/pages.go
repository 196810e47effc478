package service

import (
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/pkg/logger"
)

// Pages bundles the stateful page controllers of one browser session. It is
// created lazily and closed together with the session.
type Pages struct {
	Prediction *PredictionController
	Accuracy   *AccuracyController
	Stock      *StockTracker
}

// NewPages creates the controllers of a new browser session.
func NewPages(repo repository.ForecastAPIRepository, log *logger.Logger) *Pages {
	return &Pages{
		Prediction: NewPredictionController(repo, log),
		Accuracy:   NewAccuracyController(repo, log),
		Stock:      NewStockTracker(repo, log),
	}
}

// Close tears down every controller. It always returns nil.
func (p *Pages) Close() error {
	_ = p.Prediction.Close()
	_ = p.Stock.Close()
	return p.Accuracy.Close()
}
