package view

import (
	"testing"
	"time"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketStatus(t *testing.T) {
	ny := utils.MarketLocation()
	tests := []struct {
		name string
		at   time.Time
		open bool
		text string
	}{
		{"weekday afternoon", time.Date(2024, 6, 5, 15, 4, 0, 0, ny), true, "MARKET OPEN • 3:04 PM ET"},
		{"opening bell", time.Date(2024, 6, 5, 9, 30, 0, 0, ny), true, "MARKET OPEN • 9:30 AM ET"},
		{"before open", time.Date(2024, 6, 5, 9, 29, 0, 0, ny), false, "MARKET CLOSED • 9:29 AM ET"},
		{"closing bell", time.Date(2024, 6, 5, 16, 0, 0, 0, ny), false, "MARKET CLOSED • 4:00 PM ET"},
		{"saturday", time.Date(2024, 6, 8, 12, 0, 0, 0, ny), false, "MARKET CLOSED • 12:00 PM ET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMarketStatus(tt.at.UTC())
			assert.Equal(t, tt.open, s.Open)
			assert.Equal(t, tt.text, s.Text)
		})
	}
}

func TestMoversPanelLimitsRows(t *testing.T) {
	var gainers []entity.MarketMoverItem
	for i := 0; i < 8; i++ {
		gainers = append(gainers, entity.MarketMoverItem{Symbol: string(rune('A' + i)), Price: 10, ChangePct: float64(i)})
	}
	panel := NewMoversPanel(&entity.MarketMovers{
		Gainers: gainers,
		Losers:  []entity.MarketMoverItem{{Symbol: "INTC", Price: 30.5, ChangePct: -4.217}},
		Active:  []entity.MarketMoverItem{{Symbol: "NVDA", Price: 1201.456, ChangePct: 1}},
	}, 5)

	assert.Len(t, panel.Gainers, 5)
	assert.Equal(t, "+0.00%", panel.Gainers[0].Value)
	require.Len(t, panel.Losers, 1)
	assert.Equal(t, "-4.22%", panel.Losers[0].Value)
	assert.False(t, panel.Losers[0].Up)
	require.Len(t, panel.Active, 1)
	assert.Equal(t, "1201.46", panel.Active[0].Value)

	empty := NewMoversPanel(nil, 5)
	assert.NotNil(t, empty.Gainers)
	assert.Empty(t, empty.Gainers)
}

func TestNewsListAndTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	published := now.Add(-3 * time.Hour)

	items := make([]entity.NewsItem, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, entity.NewsItem{Headline: "h", Source: "s", URL: "u", PublishedAt: &published})
	}
	rows := NewNewsList(items, now, 5)
	assert.Len(t, rows, 5)
	assert.Equal(t, "3h ago", rows[0].Age)

	assert.Equal(t, "30s ago", TimeAgo(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", TimeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2d ago", TimeAgo(now.Add(-50*time.Hour), now))
}

func TestQuoteRowsKeepOrder(t *testing.T) {
	rows := NewQuoteRows([]string{"NVDA", "SPY", "QQQ"}, []entity.Quote{
		{Symbol: "SPY", Price: 530.1, ChangePercent: 0.4},
		{Symbol: "NVDA", Price: 120.5, ChangePercent: -1.25},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "NVDA", rows[0].Symbol)
	assert.Equal(t, "-1.25%", rows[0].Change)
	assert.False(t, rows[0].Up)
	assert.Equal(t, "+0.40%", rows[1].Change)
	assert.False(t, rows[2].Priced)
	assert.Equal(t, "--", rows[2].Price)
}

func TestSentimentPanelCounts(t *testing.T) {
	panel := NewSentimentPanel([]entity.SentimentMessage{
		{Text: "a", Sentiment: entity.SentimentPositive},
		{Text: "b", Sentiment: entity.SentimentNegative, IsLawsuit: true},
		{Text: "c", Sentiment: entity.SentimentNeutral},
		{Text: "d", Sentiment: entity.SentimentPositive},
	})
	assert.Equal(t, 2, panel.Positive)
	assert.Equal(t, 1, panel.Negative)
	assert.Equal(t, 1, panel.Neutral)
	assert.Equal(t, 1, panel.Lawsuits)
	assert.Len(t, panel.Rows, 4)
}

func TestSP500ReferenceList(t *testing.T) {
	assert.Len(t, SP500Reference, 30)
	assert.Equal(t, ReferenceSymbol{Symbol: "AAPL", Name: "Apple Inc."}, SP500Reference[0])
}
