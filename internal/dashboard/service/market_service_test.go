package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moversFixture() *entity.MarketMovers {
	return &entity.MarketMovers{
		Gainers: []entity.MarketMoverItem{{Symbol: "NVDA", Price: 120, ChangePct: 4.2}, {Symbol: "AMD", Price: 160, ChangePct: 3.1}},
		Losers:  []entity.MarketMoverItem{{Symbol: "INTC", Price: 30, ChangePct: -2.5}},
		Active:  []entity.MarketMoverItem{{Symbol: "TSLA", Price: 180.5, ChangePct: 1.1}},
	}
}

func TestMoversAreCached(t *testing.T) {
	repo := &fakeForecastRepo{movers: func(context.Context) (*entity.MarketMovers, error) { return moversFixture(), nil }}
	svc := NewMarketService(repo, time.Minute, logger.NewNop())

	first := svc.Movers(context.Background(), 1)
	second := svc.Movers(context.Background(), 5)

	assert.Nil(t, first.Error)
	assert.Len(t, first.Panel.Gainers, 1)
	assert.Equal(t, "+4.20%", first.Panel.Gainers[0].Value)
	assert.Len(t, second.Panel.Gainers, 2)
	assert.Equal(t, "180.50", second.Panel.Active[0].Value)
	assert.Equal(t, 1, repo.moversCallCount())
}

func TestMoversColdCacheFailure(t *testing.T) {
	repo := &fakeForecastRepo{movers: func(context.Context) (*entity.MarketMovers, error) {
		return nil, &repository.APIError{Op: "market movers", Err: fmt.Errorf("%w: refused", repository.ErrConnectionFailed)}
	}}
	svc := NewMarketService(repo, time.Minute, logger.NewNop())

	section := svc.Movers(context.Background(), 5)
	require.NotNil(t, section.Error)
	assert.Equal(t, fetch.KindConnection, section.Error.Kind)
	assert.Empty(t, section.Panel.Gainers)
	assert.NotNil(t, section.Panel.Gainers)
}

func TestRefreshMoversReplacesSnapshot(t *testing.T) {
	calls := 0
	repo := &fakeForecastRepo{movers: func(context.Context) (*entity.MarketMovers, error) {
		calls++
		m := moversFixture()
		m.Gainers[0].Symbol = fmt.Sprintf("G%d", calls)
		return m, nil
	}}
	svc := NewMarketService(repo, time.Minute, logger.NewNop())

	require.NoError(t, svc.RefreshMovers(context.Background()))
	require.NoError(t, svc.RefreshMovers(context.Background()))
	assert.Equal(t, "G2", svc.Movers(context.Background(), 5).Panel.Gainers[0].Symbol)
}

func TestNewsSection(t *testing.T) {
	published := time.Now().Add(-3 * time.Hour)
	repo := &fakeForecastRepo{news: func(_ context.Context, key string) ([]entity.NewsItem, error) {
		assert.Equal(t, common.MarketNewsKey, key)
		return []entity.NewsItem{
			{Headline: "Stocks rally", Source: "Wire", PublishedAt: &published},
			{Headline: "Fed holds", Source: "Wire"},
		}, nil
	}}
	svc := NewMarketService(repo, time.Minute, logger.NewNop())

	section := svc.News(context.Background(), common.MarketNewsKey, 1)
	assert.Nil(t, section.Error)
	require.Len(t, section.Rows, 1)
	assert.Equal(t, "Stocks rally", section.Rows[0].Headline)
	assert.Equal(t, "3h ago", section.Rows[0].Age)
}

func TestMoversRefresherRejectsBadSpec(t *testing.T) {
	_, err := NewMoversRefresher(NewMarketService(&fakeForecastRepo{}, time.Minute, logger.NewNop()), "every minute", logger.NewNop())
	assert.Error(t, err)
}

func TestMoversRefresherWarmsCache(t *testing.T) {
	repo := &fakeForecastRepo{movers: func(context.Context) (*entity.MarketMovers, error) { return moversFixture(), nil }}
	svc := NewMarketService(repo, time.Minute, logger.NewNop())
	r, err := NewMoversRefresher(svc, "@every 1h", logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Start(ctx)
	}()

	assert.Eventually(t, func() bool { return repo.moversCallCount() == 1 }, time.Second, 5*time.Millisecond)
	section := svc.Movers(context.Background(), 5)
	assert.Nil(t, section.Error)
	assert.Equal(t, 1, repo.moversCallCount())

	cancel()
	wg.Wait()
}
