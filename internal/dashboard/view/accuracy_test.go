package view

import (
	"testing"
	"time"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pendingItem() entity.WatchlistItem {
	return entity.WatchlistItem{
		ID: 1, Symbol: "AAPL", InitialPrice: 150, TargetPrice: 157.5, CurrentPrice: 152,
		CreatedAt: date(2024, 6, 1), EndDate: date(2024, 6, 8), AccuracyScore: 0, Status: "ACTIVE",
	}
}

func finalItem() entity.WatchlistItem {
	return entity.WatchlistItem{
		ID: 2, Symbol: "MSFT", InitialPrice: 400, TargetPrice: 410, CurrentPrice: 405,
		FinalPrice: utils.ToPointer(405.0), CreatedAt: date(2024, 5, 25), EndDate: date(2024, 6, 1),
		FinalizedDate: utils.ToPointer(date(2024, 6, 3)), AccuracyScore: 98.78, Status: "SUCCESS",
	}
}

func TestPendingRowHasNoNumericAccuracy(t *testing.T) {
	row := NewAccuracyRow(pendingItem())
	assert.True(t, row.Pending)
	assert.False(t, row.Final)
	assert.Equal(t, "In Progress", row.AccuracyText)
	assert.Zero(t, row.AccuracyWidth)
	assert.False(t, row.WeekendAdjusted)
	assert.Equal(t, "$152.00", row.ResultPrice)
}

func TestFinalRowWithWeekendAdjustment(t *testing.T) {
	row := NewAccuracyRow(finalItem())
	assert.False(t, row.Pending)
	assert.True(t, row.Final)
	assert.Equal(t, "98.8%", row.AccuracyText)
	assert.True(t, row.HighAccuracy)
	assert.Equal(t, "$405.00", row.ResultPrice)

	assert.True(t, row.WeekendAdjusted)
	assert.Equal(t, "Weekend Adj.", row.WeekendLabel)
	assert.Contains(t, row.AdjustmentNote, "2024-06-03")
	assert.Equal(t, "2024-06-01", row.EndDate)
}

func TestFinalizedOnEndDateIsNotAdjusted(t *testing.T) {
	item := finalItem()
	item.FinalizedDate = utils.ToPointer(item.EndDate)
	row := NewAccuracyRow(item)
	assert.False(t, row.WeekendAdjusted)
	assert.Empty(t, row.WeekendLabel)
}

func TestZeroFinalPriceIsPending(t *testing.T) {
	item := pendingItem()
	item.FinalPrice = utils.ToPointer(0.0)
	item.AccuracyScore = 42
	row := NewAccuracyRow(item)
	assert.True(t, row.Pending)
	assert.Equal(t, "In Progress", row.AccuracyText)
}

func TestAccuracyTableEmptyState(t *testing.T) {
	table := NewAccuracyTable([]entity.WatchlistItem{})
	assert.True(t, table.Empty)
	assert.Equal(t, "No Predictions Yet", table.EmptyTitle)
	assert.Equal(t, "0.0", table.AveragePrecision)
	assert.Empty(t, table.Rows)
}

func TestAccuracyTableAveragePrecision(t *testing.T) {
	second := finalItem()
	second.ID = 3
	second.AccuracyScore = 91.1

	table := NewAccuracyTable([]entity.WatchlistItem{pendingItem(), finalItem(), second})
	assert.False(t, table.Empty)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "94.9", table.AveragePrecision)

	onlyPending := NewAccuracyTable([]entity.WatchlistItem{pendingItem()})
	assert.Equal(t, "0.0", onlyPending.AveragePrecision)
}
