package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"testing"
	"time"

	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRendersUpside(t *testing.T) {
	repo := &fakeForecastRepo{predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
		return prediction(symbol, 150, 157.5), nil
	}}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()

	v := c.Search(context.Background(), " aapl ")
	assert.Equal(t, fetch.StatusSuccess, v.Status)
	assert.Equal(t, "AAPL", v.Symbol)
	require.NotNil(t, v.Panel)
	assert.Equal(t, "+5.00% Upside", v.Panel.GrowthText)
	require.NotNil(t, v.Chart)
	assert.True(t, v.Chart.Ready())
}

func TestSearchWithUnusablePricesShowsDataError(t *testing.T) {
	repo := &fakeForecastRepo{predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
		return prediction(symbol, 0, math.NaN()), nil
	}}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()

	v := c.Search(context.Background(), "AAPL")
	require.NotNil(t, v.Panel)
	assert.Equal(t, view.PanelDataError, v.Panel.State)
	assert.Empty(t, v.Panel.GrowthText)
}

func TestSearchErrorsAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind fetch.ErrorKind
		msg  string
	}{
		{"unknown symbol", &repository.APIError{Op: "predict", StatusCode: http.StatusNotFound, Detail: "not found"}, fetch.KindNotFound, fetch.MessageInput},
		{"backend down", &repository.APIError{Op: "predict", Err: fmt.Errorf("%w: refused", repository.ErrConnectionFailed)}, fetch.KindConnection, fetch.MessageConnection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeForecastRepo{predict: func(context.Context, string) (*entity.PredictionResult, error) { return nil, tt.err }}
			c := NewPredictionController(repo, logger.NewNop())
			defer c.Close()

			v := c.Search(context.Background(), "ZZZZ")
			assert.Equal(t, fetch.StatusError, v.Status)
			require.NotNil(t, v.Error)
			assert.Equal(t, tt.kind, v.Error.Kind)
			assert.Equal(t, tt.msg, v.Error.Message)
			assert.Nil(t, v.Panel)
		})
	}
}

// A slow response for an earlier symbol never overwrites the later one.
func TestSearchLatestSymbolWins(t *testing.T) {
	releaseAAPL := make(chan struct{})
	aaplStarted := make(chan struct{})
	repo := &fakeForecastRepo{predict: func(ctx context.Context, symbol string) (*entity.PredictionResult, error) {
		if symbol == "AAPL" {
			close(aaplStarted)
			<-releaseAAPL
			return prediction("AAPL", 150, 157.5), nil
		}
		return prediction(symbol, 400, 380), nil
	}}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Search(context.Background(), "AAPL")
	}()
	<-aaplStarted

	v := c.Search(context.Background(), "MSFT")
	assert.Equal(t, "MSFT", v.Symbol)

	close(releaseAAPL)
	wg.Wait()

	current := c.Current()
	assert.Equal(t, "MSFT", current.Symbol)
	require.NotNil(t, current.Panel)
	assert.Equal(t, "MSFT", current.Panel.Symbol)
	assert.Equal(t, "-5.00% Downside", current.Panel.GrowthText)
}

func TestEmptySearchClearsPanel(t *testing.T) {
	repo := &fakeForecastRepo{predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
		return prediction(symbol, 150, 157.5), nil
	}}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()

	c.Search(context.Background(), "AAPL")
	v := c.Search(context.Background(), "  ")
	assert.Equal(t, fetch.StatusIdle, v.Status)
	assert.Nil(t, v.Panel)
}

func TestTrackConflictThenForce(t *testing.T) {
	repo := &fakeForecastRepo{
		predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
			return prediction(symbol, 150, 157.5), nil
		},
		add: func(_ context.Context, call trackCall) error {
			if !call.force {
				return &repository.APIError{Op: "add watchlist item", StatusCode: http.StatusConflict, Detail: "AAPL is already on your watchlist"}
			}
			return nil
		},
	}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()
	c.Search(context.Background(), "AAPL")

	first := c.Track(context.Background(), "tok", "AAPL", false)
	assert.Equal(t, TrackConflict, first.Outcome)
	assert.Contains(t, first.Prompt, "AAPL")
	require.NotNil(t, first.Error)
	assert.Equal(t, fetch.KindConflict, first.Error.Kind)
	assert.False(t, c.Current().Tracked)

	second := c.Track(context.Background(), "tok", "AAPL", true)
	assert.Equal(t, TrackCreated, second.Outcome)
	assert.Equal(t, "Tracked", second.Message)
	assert.True(t, c.Current().Tracked)

	require.Len(t, repo.trackCalls, 2)
	assert.False(t, repo.trackCalls[0].force)
	assert.True(t, repo.trackCalls[1].force)
	assert.Equal(t, "tok", repo.trackCalls[1].token)
	assert.Equal(t, entity.TrackRequest{
		Symbol:       "AAPL",
		InitialPrice: 150,
		TargetPrice:  157.5,
		EndDate:      time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	}, repo.trackCalls[1].req)

	// A new search resets the tracked state.
	c.Search(context.Background(), "AAPL")
	assert.False(t, c.Current().Tracked)
}

func TestTrackFailureIsRetryable(t *testing.T) {
	attempts := 0
	repo := &fakeForecastRepo{
		predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
			return prediction(symbol, 150, 157.5), nil
		},
		add: func(context.Context, trackCall) error {
			attempts++
			if attempts == 1 {
				return &repository.APIError{Op: "add watchlist item", Err: fmt.Errorf("%w: reset", repository.ErrConnectionFailed)}
			}
			return nil
		},
	}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()
	c.Search(context.Background(), "AAPL")

	failed := c.Track(context.Background(), "tok", "AAPL", false)
	assert.Equal(t, TrackFailed, failed.Outcome)
	assert.Equal(t, fetch.MessageConnection, failed.Message)

	retried := c.Track(context.Background(), "tok", "AAPL", false)
	assert.Equal(t, TrackCreated, retried.Outcome)
}

func TestTrackRequiresMatchingSearch(t *testing.T) {
	repo := &fakeForecastRepo{predict: func(_ context.Context, symbol string) (*entity.PredictionResult, error) {
		return prediction(symbol, 150, 157.5), nil
	}}
	c := NewPredictionController(repo, logger.NewNop())
	defer c.Close()

	res := c.Track(context.Background(), "tok", "AAPL", false)
	assert.Equal(t, TrackFailed, res.Outcome)
	assert.Equal(t, fetch.KindInput, res.Error.Kind)

	c.Search(context.Background(), "MSFT")
	res = c.Track(context.Background(), "tok", "AAPL", false)
	assert.Equal(t, TrackFailed, res.Outcome)
	assert.Empty(t, repo.trackCalls)
}
