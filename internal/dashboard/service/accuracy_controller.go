package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/dashboard/chart"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/utils"
)

// ErrItemNotFound is returned when selecting an id that is not in the
// loaded watchlist.
var ErrItemNotFound = errors.New("watchlist item not found")

// AccuracyView is the accuracy table.
type AccuracyView struct {
	Status fetch.Status           `json:"status"`
	Table  *view.AccuracyTable    `json:"table,omitempty"`
	Error  *fetch.Failure         `json:"error,omitempty"`
	Items  []entity.WatchlistItem `json:"-"`
}

// ChartView is the history chart of the selected watchlist item.
type ChartView struct {
	Status fetch.Status      `json:"status"`
	ItemID int               `json:"item_id,omitempty"`
	Title  string            `json:"title,omitempty"`
	Start  string            `json:"start,omitempty"`
	End    string            `json:"end,omitempty"`
	Row    *view.AccuracyRow `json:"row,omitempty"`
	Chart  *chart.Config     `json:"chart,omitempty"`
	Error  *fetch.Failure    `json:"error,omitempty"`
}

// AccuracyController holds the accuracy page of one browser session: the
// watchlist and the history of the selected item. Selecting another item
// supersedes the previous chart fetch.
type AccuracyController struct {
	repo    repository.ForecastAPIRepository
	log     *logger.Logger
	items   *fetch.Resource[[]entity.WatchlistItem]
	history *fetch.Resource[*entity.PriceHistory]
	now     func() time.Time

	mu       sync.Mutex
	selected *entity.WatchlistItem
}

// NewAccuracyController creates an idle controller.
func NewAccuracyController(repo repository.ForecastAPIRepository, log *logger.Logger) *AccuracyController {
	return &AccuracyController{
		repo:    repo,
		log:     log,
		items:   fetch.NewResource[[]entity.WatchlistItem](),
		history: fetch.NewResource[*entity.PriceHistory](),
		now:     time.Now,
	}
}

// Load fetches the watchlist performance for the signed-in user.
func (c *AccuracyController) Load(ctx context.Context, token string) AccuracyView {
	c.items.Load(ctx, "performance", func(ctx context.Context) ([]entity.WatchlistItem, error) {
		return c.repo.GetWatchlistPerformance(ctx, token)
	})
	return c.View()
}

// View returns the committed table state.
func (c *AccuracyController) View() AccuracyView {
	snap := c.items.Snapshot()
	v := AccuracyView{Status: snap.Status, Error: snap.Failure, Items: snap.Data}
	if snap.Status == fetch.StatusSuccess {
		table := view.NewAccuracyTable(snap.Data)
		v.Table = &table
	}
	return v
}

// Select loads the price history of item id over its prediction window.
func (c *AccuracyController) Select(ctx context.Context, id int) (ChartView, error) {
	var item *entity.WatchlistItem
	for _, it := range c.items.Snapshot().Data {
		if it.ID == id {
			found := it
			item = &found
			break
		}
	}
	if item == nil {
		return ChartView{}, ErrItemNotFound
	}

	c.mu.Lock()
	c.selected = item
	c.mu.Unlock()

	start, end := HistoryWindow(*item, c.now())
	c.history.Load(ctx, strconv.Itoa(id), func(ctx context.Context) (*entity.PriceHistory, error) {
		return c.repo.GetPriceHistory(ctx, item.Symbol, start, end)
	})
	return c.Chart(), nil
}

// Chart returns the committed chart state of the selected item.
func (c *AccuracyController) Chart() ChartView {
	c.mu.Lock()
	item := c.selected
	c.mu.Unlock()

	snap := c.history.Snapshot()
	if item == nil || snap.Key != strconv.Itoa(item.ID) {
		return ChartView{Status: fetch.StatusIdle}
	}

	start, end := HistoryWindow(*item, c.now())
	row := view.NewAccuracyRow(*item)
	v := ChartView{
		Status: snap.Status,
		ItemID: item.ID,
		Title:  item.Symbol + " Performance",
		Start:  utils.FormatDate(start),
		End:    utils.FormatDate(end),
		Row:    &row,
		Error:  snap.Failure,
	}
	if snap.Status == fetch.StatusSuccess {
		cfg := chart.NewAccuracyChart(snap.Data, *item)
		v.Chart = &cfg
	}
	return v
}

// Deselect closes the chart.
func (c *AccuracyController) Deselect() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
	c.history.Reset()
}

// Clear forgets everything, used on sign-out.
func (c *AccuracyController) Clear() {
	c.Deselect()
	c.items.Reset()
}

// Close drops fetches in flight. It always returns nil.
func (c *AccuracyController) Close() error {
	_ = c.items.Close()
	return c.history.Close()
}

// HistoryWindow is the date range charted for item: from its creation day
// to one day past its result day, or past today while it is still pending.
func HistoryWindow(item entity.WatchlistItem, now time.Time) (time.Time, time.Time) {
	start := item.CreatedAt
	end := now.In(utils.MarketLocation())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if item.IsFinal() {
		end = item.ResultDate()
	}
	return start, end.AddDate(0, 0, 1)
}
