package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"
)

const maxSidebarSymbols = 20

var (
	// ErrInvalidSymbol is returned for tickers that cannot be quoted.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrSidebarFull is returned when the list already holds the maximum.
	ErrSidebarFull = errors.New("sidebar watchlist is full")

	symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)
)

// SidebarView is the live quote list.
type SidebarView struct {
	Symbols   []string        `json:"symbols"`
	Rows      []view.QuoteRow `json:"rows"`
	Error     *fetch.Failure  `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SidebarService manages the per-user ticker list of the sidebar and its
// quotes.
type SidebarService interface {
	Symbols(ctx context.Context, owner string) []string
	Add(ctx context.Context, owner, symbol string) ([]string, error)
	Remove(ctx context.Context, owner, symbol string) ([]string, error)
	Quotes(ctx context.Context, owner string) SidebarView
}

// NewSidebarService creates a sidebar service.
func NewSidebarService(repo repository.ForecastAPIRepository, lists repository.SymbolListRepository, logger *logger.Logger) SidebarService {
	return &sidebarService{repo: repo, lists: lists, logger: logger, now: time.Now}
}

type sidebarService struct {
	repo   repository.ForecastAPIRepository
	lists  repository.SymbolListRepository
	logger *logger.Logger
	now    func() time.Time
}

// Symbols returns the saved list of owner, or the default list when none
// was saved or the store is unreachable.
func (s *sidebarService) Symbols(ctx context.Context, owner string) []string {
	symbols, err := s.lists.Get(ctx, owner)
	if err != nil {
		if !errors.Is(err, repository.ErrSymbolListNotFound) {
			s.logger.WarnContext(ctx, "Failed to read sidebar symbols", logger.StringField("owner", owner), logger.ErrorField(err))
		}
		return append([]string(nil), common.DefaultSidebarSymbols...)
	}
	return symbols
}

// Add appends symbol, upper-cased, unless it is already listed.
func (s *sidebarService) Add(ctx context.Context, owner, symbol string) ([]string, error) {
	symbol = NormalizeSymbol(symbol)
	if !symbolPattern.MatchString(symbol) {
		return nil, ErrInvalidSymbol
	}
	symbols := s.Symbols(ctx, owner)
	for _, existing := range symbols {
		if existing == symbol {
			return symbols, nil
		}
	}
	if len(symbols) >= maxSidebarSymbols {
		return symbols, ErrSidebarFull
	}
	symbols = append(symbols, symbol)
	if err := s.lists.Save(ctx, owner, symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// Remove drops symbol from the list.
func (s *sidebarService) Remove(ctx context.Context, owner, symbol string) ([]string, error) {
	symbol = NormalizeSymbol(symbol)
	symbols := s.Symbols(ctx, owner)
	kept := make([]string, 0, len(symbols))
	for _, existing := range symbols {
		if existing != symbol {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(symbols) {
		return symbols, nil
	}
	if err := s.lists.Save(ctx, owner, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Quotes prices the list of owner.
func (s *sidebarService) Quotes(ctx context.Context, owner string) SidebarView {
	symbols := s.Symbols(ctx, owner)
	v := SidebarView{Symbols: symbols, UpdatedAt: s.now()}

	quotes, err := s.repo.GetQuotes(ctx, symbols)
	if err != nil {
		if !repository.IsCanceled(err) {
			s.logger.WarnContext(ctx, "Failed to load quotes", logger.ErrorField(err))
		}
		v.Rows = view.NewQuoteRows(symbols, nil)
		v.Error = fetch.Classify(err)
		return v
	}
	v.Rows = view.NewQuoteRows(symbols, quotes)
	return v
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
