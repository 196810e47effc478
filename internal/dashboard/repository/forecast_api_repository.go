package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ForecastAPIRepository is the typed client of the prediction backend. Every
// failure is returned as *APIError.
type ForecastAPIRepository interface {
	Predict(ctx context.Context, symbol string, days int) (*entity.PredictionResult, error)
	GetWatchlistPerformance(ctx context.Context, token string) ([]entity.WatchlistItem, error)
	AddWatchlistItem(ctx context.Context, token string, req entity.TrackRequest, force bool) error
	GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) (*entity.PriceHistory, error)
	GetMarketMovers(ctx context.Context) (*entity.MarketMovers, error)
	GetSentiment(ctx context.Context, symbol string) ([]entity.SentimentMessage, error)
	GetMarketDepth(ctx context.Context, symbol string) (*entity.MarketDepth, error)
	GetQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error)
	GetNews(ctx context.Context, symbolOrMarket string) ([]entity.NewsItem, error)
}

type forecastAPIRepository struct {
	cfg            config.Backend
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewForecastAPIRepository creates the backend client. The base URL comes
// from configuration; nothing else about the backend is configurable.
func NewForecastAPIRepository(cfg config.Backend, log *logger.Logger) ForecastAPIRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 600
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &forecastAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 10),
	}
}

func (r *forecastAPIRepository) Predict(ctx context.Context, symbol string, days int) (*entity.PredictionResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var payload dto.PredictionPayload
	if err := r.do(ctx, "predict", http.MethodPost, "/predict", "", dto.PredictRequest{Symbol: symbol, Days: days}, &payload); err != nil {
		return nil, err
	}
	result := normalizePrediction(payload, symbol)
	return &result, nil
}

func (r *forecastAPIRepository) GetWatchlistPerformance(ctx context.Context, token string) ([]entity.WatchlistItem, error) {
	if token == "" {
		return nil, &APIError{Op: "watchlist performance", StatusCode: http.StatusUnauthorized, Err: ErrUnauthenticated}
	}
	var payload []dto.WatchlistPerformancePayload
	if err := r.do(ctx, "watchlist performance", http.MethodGet, "/watchlist/performance", token, nil, &payload); err != nil {
		return nil, err
	}
	items := make([]entity.WatchlistItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, normalizeWatchlistItem(p))
	}
	return items, nil
}

func (r *forecastAPIRepository) AddWatchlistItem(ctx context.Context, token string, req entity.TrackRequest, force bool) error {
	if token == "" {
		return &APIError{Op: "add watchlist item", StatusCode: http.StatusUnauthorized, Err: ErrUnauthenticated}
	}
	path := "/watchlist"
	if force {
		path += "?force=true"
	}
	body := dto.WatchlistAddRequest{
		Symbol:       strings.ToUpper(req.Symbol),
		InitialPrice: req.InitialPrice,
		TargetPrice:  req.TargetPrice,
		EndDate:      utils.FormatDate(req.EndDate),
	}
	return r.do(ctx, "add watchlist item", http.MethodPost, path, token, body, nil)
}

func (r *forecastAPIRepository) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) (*entity.PriceHistory, error) {
	q := url.Values{}
	q.Set("start", utils.FormatDate(start))
	q.Set("end", utils.FormatDate(end))
	path := "/history/" + url.PathEscape(symbol) + "?" + q.Encode()

	var payload []dto.PricePointPayload
	if err := r.do(ctx, "price history", http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	history := normalizeHistory(symbol, payload)
	return &history, nil
}

func (r *forecastAPIRepository) GetMarketMovers(ctx context.Context) (*entity.MarketMovers, error) {
	var payload dto.MarketMoversPayload
	if err := r.do(ctx, "market movers", http.MethodGet, "/market/movers", "", nil, &payload); err != nil {
		return nil, err
	}
	movers := normalizeMovers(payload, time.Now())
	return &movers, nil
}

func (r *forecastAPIRepository) GetSentiment(ctx context.Context, symbol string) ([]entity.SentimentMessage, error) {
	var raw json.RawMessage
	if err := r.do(ctx, "sentiment", http.MethodGet, "/sentiment/"+url.PathEscape(symbol), "", nil, &raw); err != nil {
		return nil, err
	}

	var items []dto.SentimentMessagePayload
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &APIError{Op: "sentiment", Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var envelope dto.SentimentEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &APIError{Op: "sentiment", Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
		items = envelope.Messages
	}
	return normalizeSentiment(items), nil
}

func (r *forecastAPIRepository) GetMarketDepth(ctx context.Context, symbol string) (*entity.MarketDepth, error) {
	var payload dto.MarketDepthPayload
	if err := r.do(ctx, "market depth", http.MethodGet, "/market/data/"+url.PathEscape(symbol), "", nil, &payload); err != nil {
		return nil, err
	}
	depth := normalizeDepth(symbol, payload)
	return &depth, nil
}

func (r *forecastAPIRepository) GetQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	if len(symbols) == 0 {
		return []entity.Quote{}, nil
	}
	escaped := make([]string, 0, len(symbols))
	for _, s := range symbols {
		escaped = append(escaped, url.QueryEscape(s))
	}
	path := "/quotes?symbols=" + strings.Join(escaped, ",")

	payload := map[string]dto.QuotePayload{}
	if err := r.do(ctx, "quotes", http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return normalizeQuotes(symbols, payload), nil
}

func (r *forecastAPIRepository) GetNews(ctx context.Context, symbolOrMarket string) ([]entity.NewsItem, error) {
	var payload []dto.NewsPayload
	if err := r.do(ctx, "news", http.MethodGet, "/news/"+url.PathEscape(symbolOrMarket), "", nil, &payload); err != nil {
		return nil, err
	}
	return normalizeNews(payload), nil
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (r *forecastAPIRepository) do(ctx context.Context, op, method, path, token string, body interface{}, out interface{}) error {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return &APIError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		// A cancelled caller is not a connectivity problem.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &APIError{Op: op, Err: ctxErr}
		}
		fields = append(fields, zap.Error(err))
		r.log.WarnContext(ctx, "Backend request failed without response", fields...)
		return &APIError{Op: op, Err: fmt.Errorf("%w: %v", ErrConnectionFailed, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &APIError{Op: op, Err: ctxErr}
		}
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrConnectionFailed, err)}
	}

	fields = append(fields, zap.Int("status_code", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode, Detail: parseDetail(respBody)}
		fields = append(fields, zap.String("detail", apiErr.Detail))
		r.log.DebugContext(ctx, "Backend returned non-2xx response", fields...)
		return apiErr
	}

	r.log.DebugContext(ctx, "Backend request completed", fields...)

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	return nil
}

// IsCanceled reports whether err only reflects caller cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
