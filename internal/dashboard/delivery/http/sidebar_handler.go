package http

import (
	"errors"
	"net/http"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SidebarHandler manages the sidebar ticker list.
type SidebarHandler struct {
	sidebar service.SidebarService
	logger  *logger.Logger
}

// NewSidebarHandler creates a new SidebarHandler.
func NewSidebarHandler(sidebar service.SidebarService, logger *logger.Logger) *SidebarHandler {
	return &SidebarHandler{sidebar: sidebar, logger: logger}
}

// RegisterRoutes registers the sidebar routes to the Echo group.
func (h *SidebarHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSidebar)
	g.POST("/symbols", h.AddSymbol)
	g.DELETE("/symbols/:symbol", h.RemoveSymbol)
}

// GetSidebar godoc
// @Summary Sidebar quotes
// @Description Live quotes of the sidebar tickers
// @Tags sidebar
// @Produce  json
// @Success 200 {object} service.SidebarView
// @Router /sidebar [get]
func (h *SidebarHandler) GetSidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sidebar.Quotes(c.Request().Context(), ownerFrom(c)))
}

// AddSymbol godoc
// @Summary Add a sidebar ticker
// @Tags sidebar
// @Accept  json
// @Produce  json
// @Param   request  body    dto.SidebarSymbolRequest   true    "Ticker to add"
// @Success 200 {object} dto.SidebarSymbolsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sidebar/symbols [post]
func (h *SidebarHandler) AddSymbol(c echo.Context) error {
	var req dto.SidebarSymbolRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Kind: string(fetch.KindInput)})
	}

	symbols, err := h.sidebar.Add(c.Request().Context(), ownerFrom(c), req.Symbol)
	switch {
	case errors.Is(err, service.ErrInvalidSymbol):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ticker symbol", Kind: string(fetch.KindInput)})
	case errors.Is(err, service.ErrSidebarFull):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "The watchlist is full", Kind: string(fetch.KindInput)})
	case err != nil:
		h.logger.ErrorContext(c.Request().Context(), "Failed to save sidebar symbols", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to save the watchlist"})
	}
	return c.JSON(http.StatusOK, dto.SidebarSymbolsResponse{Symbols: symbols})
}

// RemoveSymbol godoc
// @Summary Remove a sidebar ticker
// @Tags sidebar
// @Produce  json
// @Param   symbol  path    string true    "Ticker to remove"
// @Success 200 {object} dto.SidebarSymbolsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sidebar/symbols/{symbol} [delete]
func (h *SidebarHandler) RemoveSymbol(c echo.Context) error {
	symbols, err := h.sidebar.Remove(c.Request().Context(), ownerFrom(c), c.Param("symbol"))
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to save sidebar symbols", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to save the watchlist"})
	}
	return c.JSON(http.StatusOK, dto.SidebarSymbolsResponse{Symbols: symbols})
}
