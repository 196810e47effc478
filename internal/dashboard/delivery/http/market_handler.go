package http

import (
	"net/http"
	"strconv"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const maxListLimit = 50

// MarketHandler serves the market-wide and per-stock sections.
type MarketHandler struct {
	market service.MarketService
	stocks service.StockService
	logger *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(market service.MarketService, stocks service.StockService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{market: market, stocks: stocks, logger: logger}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/movers", h.GetMovers)
	g.GET("/status", h.GetStatus)
	g.GET("/news", h.GetNews)
}

// RegisterStockRoutes registers the stock detail route to the Echo group.
func (h *MarketHandler) RegisterStockRoutes(g *echo.Group) {
	g.GET("/:symbol", h.GetStock)
}

// GetMovers godoc
// @Summary Market movers
// @Description Top gainers, losers and most active symbols
// @Tags market
// @Produce  json
// @Param   limit  query   int  false  "Rows per tab (default 5)"
// @Success 200 {object} service.MoversSection
// @Router /market/movers [get]
func (h *MarketHandler) GetMovers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.market.Movers(c.Request().Context(), limitParam(c, 5)))
}

// GetStatus godoc
// @Summary Market status
// @Description Whether the US market is in its regular session
// @Tags market
// @Produce  json
// @Success 200 {object} view.MarketStatus
// @Router /market/status [get]
func (h *MarketHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.market.Status())
}

// GetNews godoc
// @Summary News feed
// @Description Market news, or the news of one symbol
// @Tags market
// @Produce  json
// @Param   symbol  query   string  false  "Symbol (default: market feed)"
// @Param   limit   query   int     false  "Number of items (default 5)"
// @Success 200 {object} service.NewsSection
// @Router /market/news [get]
func (h *MarketHandler) GetNews(c echo.Context) error {
	key := service.NormalizeSymbol(c.QueryParam("symbol"))
	if key == "" {
		key = common.MarketNewsKey
	}
	return c.JSON(http.StatusOK, h.market.News(c.Request().Context(), key, limitParam(c, 5)))
}

// GetStock godoc
// @Summary Stock detail
// @Description Detailed forecast, sentiment, market depth and news of a symbol. Sections fail independently.
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Symbol"
// @Success 200 {object} service.StockDetail
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *MarketHandler) GetStock(c echo.Context) error {
	symbol := service.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fetch.MessageInput, Kind: string(fetch.KindInput)})
	}
	return c.JSON(http.StatusOK, h.stocks.Detail(c.Request().Context(), symbol))
}

func limitParam(c echo.Context, def int) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
