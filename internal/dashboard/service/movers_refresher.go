package service

import (
	"context"
	"fmt"

	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/robfig/cron/v3"
)

// MoversRefresher keeps the shared movers snapshot warm on a cron schedule
// so that viewers read from the cache instead of calling the backend.
type MoversRefresher struct {
	market MarketService
	spec   string
	logger *logger.Logger
	cron   *cron.Cron
}

// NewMoversRefresher validates spec (standard five field cron or a
// descriptor such as "@every 1m") and returns a stopped refresher.
func NewMoversRefresher(market MarketService, spec string, logger *logger.Logger) (*MoversRefresher, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("invalid movers refresh spec %q: %w", spec, err)
	}
	return &MoversRefresher{
		market: market,
		spec:   spec,
		logger: logger,
		cron:   cron.New(cron.WithParser(parser)),
	}, nil
}

// Start refreshes once, then on every scheduled tick until ctx is done.
func (r *MoversRefresher) Start(ctx context.Context) {
	if _, err := r.cron.AddFunc(r.spec, func() { r.refresh(ctx) }); err != nil {
		r.logger.Error("Failed to schedule movers refresh", logger.ErrorField(err))
		return
	}
	utils.GoSafe(func() { r.refresh(ctx) })
	r.cron.Start()
	r.logger.Info("Movers refresher started", logger.StringField("spec", r.spec))

	<-ctx.Done()
	<-r.cron.Stop().Done()
	r.logger.Info("Movers refresher stopping")
}

func (r *MoversRefresher) refresh(ctx context.Context) {
	if err := r.market.RefreshMovers(ctx); err != nil {
		if repository.IsCanceled(err) {
			return
		}
		r.logger.Warn("Failed to refresh market movers", logger.ErrorField(err))
		return
	}
	r.logger.Debug("Market movers refreshed")
}
