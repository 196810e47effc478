package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/dashboard/chart"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"
)

// TrackOutcome is the result of tracking a prediction.
type TrackOutcome string

const (
	TrackCreated  TrackOutcome = "created"
	TrackConflict TrackOutcome = "conflict"
	TrackFailed   TrackOutcome = "failed"
)

// PredictionView is the dashboard search panel.
type PredictionView struct {
	Status  fetch.Status          `json:"status"`
	Symbol  string                `json:"symbol,omitempty"`
	Panel   *view.PredictionPanel `json:"panel,omitempty"`
	Chart   *chart.Config         `json:"chart,omitempty"`
	Error   *fetch.Failure        `json:"error,omitempty"`
	Tracked bool                  `json:"tracked"`
}

// TrackResult reports a track attempt. On conflict, Prompt asks the user to
// confirm replacing the existing entry; confirming re-submits with force.
type TrackResult struct {
	Outcome TrackOutcome   `json:"outcome"`
	Symbol  string         `json:"symbol"`
	Message string         `json:"message"`
	Prompt  string         `json:"prompt,omitempty"`
	Error   *fetch.Failure `json:"error,omitempty"`
}

// PredictionController holds the search state of one browser session. Only
// the most recently requested symbol is ever shown.
type PredictionController struct {
	repo     repository.ForecastAPIRepository
	log      *logger.Logger
	resource *fetch.Resource[*entity.PredictionResult]
	now      func() time.Time

	mu      sync.Mutex
	tracked string
}

// NewPredictionController creates an idle controller.
func NewPredictionController(repo repository.ForecastAPIRepository, log *logger.Logger) *PredictionController {
	return &PredictionController{
		repo:     repo,
		log:      log,
		resource: fetch.NewResource[*entity.PredictionResult](),
		now:      time.Now,
	}
}

// Search requests a forecast for symbol. An empty symbol clears the panel.
func (c *PredictionController) Search(ctx context.Context, symbol string) PredictionView {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	c.mu.Lock()
	c.tracked = ""
	c.mu.Unlock()

	if symbol == "" {
		c.resource.Reset()
		return c.Current()
	}

	_, committed := c.resource.Load(ctx, symbol, func(ctx context.Context) (*entity.PredictionResult, error) {
		return c.repo.Predict(ctx, symbol, common.ForecastDays)
	})
	if !committed {
		c.log.DebugContext(ctx, "Prediction result superseded", logger.StringField("symbol", symbol))
	}
	return c.Current()
}

// Current returns the committed panel state.
func (c *PredictionController) Current() PredictionView {
	snap := c.resource.Snapshot()
	v := PredictionView{Status: snap.Status, Symbol: snap.Key, Error: snap.Failure}
	if snap.Status == fetch.StatusSuccess && snap.Data != nil {
		panel := view.NewPredictionPanel(*snap.Data, false)
		cfg := chart.NewForecastChart(*snap.Data)
		v.Panel = &panel
		v.Chart = &cfg
	}

	c.mu.Lock()
	v.Tracked = v.Symbol != "" && c.tracked == v.Symbol
	c.mu.Unlock()
	return v
}

// Track saves the displayed prediction to the user's watchlist. token is
// read from the session right before the call. A 409 from the backend is
// reported as a conflict so the caller can ask for confirmation and retry
// with force.
func (c *PredictionController) Track(ctx context.Context, token, symbol string, force bool) TrackResult {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	result := TrackResult{Symbol: symbol}

	snap := c.resource.Snapshot()
	if snap.Status != fetch.StatusSuccess || snap.Data == nil || (symbol != "" && snap.Key != symbol) {
		result.Outcome = TrackFailed
		result.Error = fetch.NewFailure(fetch.KindInput, "Search a symbol before tracking it.")
		result.Message = result.Error.Message
		return result
	}
	result = trackPrediction(ctx, c.repo, c.log, token, *snap.Data, force, c.now())
	if result.Outcome == TrackCreated {
		c.mu.Lock()
		c.tracked = snap.Key
		c.mu.Unlock()
	}
	return result
}

// trackPrediction adds p to the watchlist. A 409 without force becomes a
// conflict outcome carrying the replace prompt.
func trackPrediction(ctx context.Context, repo repository.ForecastAPIRepository, log *logger.Logger, token string, p entity.PredictionResult, force bool, now time.Time) TrackResult {
	result := TrackResult{Symbol: p.Symbol}
	if !p.HasValidPrices() {
		result.Outcome = TrackFailed
		result.Error = fetch.NewFailure(fetch.KindData, fetch.MessageData)
		result.Message = result.Error.Message
		return result
	}

	endDate := p.ForecastDate
	if endDate.IsZero() {
		endDate = now.AddDate(0, 0, common.ForecastDays)
	}
	req := entity.TrackRequest{
		Symbol:       p.Symbol,
		InitialPrice: p.CurrentPrice,
		TargetPrice:  p.PredictedPrice,
		EndDate:      endDate,
	}

	err := repo.AddWatchlistItem(ctx, token, req, force)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Prediction tracked", logger.StringField("symbol", p.Symbol), logger.Field("force", force))
		result.Outcome = TrackCreated
		result.Message = "Tracked"
	case repository.IsConflict(err) && !force:
		result.Outcome = TrackConflict
		result.Error = fetch.Classify(err)
		result.Message = result.Error.Message
		result.Prompt = fmt.Sprintf("You already have an active tracking for %s. Do you want to delete the old one and replace it with this new forecast?", p.Symbol)
	default:
		log.WarnContext(ctx, "Failed to track prediction", logger.StringField("symbol", p.Symbol), logger.ErrorField(err))
		result.Outcome = TrackFailed
		result.Error = fetch.Classify(err)
		result.Message = result.Error.Message
	}
	return result
}

// Close drops any fetch in flight. It always returns nil.
func (c *PredictionController) Close() error {
	return c.resource.Close()
}
