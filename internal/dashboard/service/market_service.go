package service

import (
	"context"
	"time"

	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// MoversSection is the movers panel or the reason it is unavailable.
type MoversSection struct {
	Panel view.MoversPanel `json:"panel"`
	Error *fetch.Failure   `json:"error,omitempty"`
}

// NewsSection is a news list or the reason it is unavailable.
type NewsSection struct {
	Rows  []view.NewsRow `json:"rows"`
	Error *fetch.Failure `json:"error,omitempty"`
}

// MarketService serves the market-wide sections shared by every viewer.
type MarketService interface {
	RefreshMovers(ctx context.Context) error
	Movers(ctx context.Context, limit int) MoversSection
	Status() view.MarketStatus
	News(ctx context.Context, key string, limit int) NewsSection
}

// NewMarketService creates a market service that keeps the movers snapshot
// in memory for cacheTTL.
func NewMarketService(repo repository.ForecastAPIRepository, cacheTTL time.Duration, logger *logger.Logger) MarketService {
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Minute
	}
	return &marketService{
		repo:     repo,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      utils.TimeNowET,
	}
}

type marketService struct {
	repo     repository.ForecastAPIRepository
	cache    *gocache.Cache
	cacheTTL time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

// RefreshMovers fetches a fresh movers snapshot into the cache.
func (s *marketService) RefreshMovers(ctx context.Context) error {
	movers, err := s.repo.GetMarketMovers(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(common.CacheKeyMarketMovers, movers, s.cacheTTL)
	return nil
}

// Movers serves the cached snapshot, fetching it when the cache is cold.
func (s *marketService) Movers(ctx context.Context, limit int) MoversSection {
	if cached, ok := s.cache.Get(common.CacheKeyMarketMovers); ok {
		return MoversSection{Panel: view.NewMoversPanel(cached.(*entity.MarketMovers), limit)}
	}
	if err := s.RefreshMovers(ctx); err != nil {
		if !repository.IsCanceled(err) {
			s.logger.WarnContext(ctx, "Failed to load market movers", logger.ErrorField(err))
		}
		return MoversSection{Panel: view.NewMoversPanel(nil, limit), Error: fetch.Classify(err)}
	}
	cached, _ := s.cache.Get(common.CacheKeyMarketMovers)
	movers, _ := cached.(*entity.MarketMovers)
	return MoversSection{Panel: view.NewMoversPanel(movers, limit)}
}

func (s *marketService) Status() view.MarketStatus {
	return view.NewMarketStatus(s.now())
}

// News loads the feed of a symbol, or the general market feed for
// common.MarketNewsKey.
func (s *marketService) News(ctx context.Context, key string, limit int) NewsSection {
	items, err := s.repo.GetNews(ctx, key)
	if err != nil {
		if !repository.IsCanceled(err) {
			s.logger.WarnContext(ctx, "Failed to load news", logger.StringField("key", key), logger.ErrorField(err))
		}
		return NewsSection{Rows: []view.NewsRow{}, Error: fetch.Classify(err)}
	}
	return NewsSection{Rows: view.NewNewsList(items, s.now(), limit)}
}
