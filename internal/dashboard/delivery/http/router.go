package http

import (
	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/internal/dashboard/session"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Dependencies are the services exposed over HTTP.
type Dependencies struct {
	Sessions     *session.Store
	Market       service.MarketService
	Stocks       service.StockService
	Sidebar      service.SidebarService
	NewPages     PagesFactory
	Polling      config.Polling
	SecureCookie bool
	Logger       *logger.Logger
}

// NewRouter builds the Echo server with every page, API and stream route.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestContext())
	e.Use(SessionMiddleware(deps.Sessions, deps.SecureCookie))

	pageHandler := NewPageHandler(deps.Market, deps.Stocks, deps.Sidebar, deps.NewPages, deps.Logger)
	authHandler := NewAuthHandler(deps.Sessions, deps.Market, deps.Sidebar, deps.Logger)
	pages := e.Group("")
	pageHandler.RegisterRoutes(pages)
	authHandler.RegisterRoutes(pages)

	apiV1 := e.Group("/api/v1")
	authHandler.RegisterAPIRoutes(apiV1)

	predictionHandler := NewPredictionHandler(deps.NewPages, deps.Logger)
	predictionHandler.RegisterRoutes(apiV1.Group("/predictions"))

	watchlistGroup := apiV1.Group("/watchlist", RequireAuth())
	predictionHandler.RegisterWatchlistRoutes(watchlistGroup)
	NewWatchlistHandler(deps.NewPages, deps.Logger).RegisterRoutes(watchlistGroup)

	marketHandler := NewMarketHandler(deps.Market, deps.Stocks, deps.Logger)
	marketHandler.RegisterRoutes(apiV1.Group("/market"))
	marketHandler.RegisterStockRoutes(apiV1.Group("/stocks"))

	NewSidebarHandler(deps.Sidebar, deps.Logger).RegisterRoutes(apiV1.Group("/sidebar"))
	NewStreamHandler(deps.Market, deps.Sidebar, deps.Polling, deps.Logger).RegisterRoutes(apiV1.Group("/stream"))

	return e, nil
}
