package http

import (
	"errors"
	"net/http"
	"strconv"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler serves the accuracy data of the signed-in user.
type WatchlistHandler struct {
	newPages PagesFactory
	logger   *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(newPages PagesFactory, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{newPages: newPages, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group. The group
// is expected to require authentication.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/performance", h.GetPerformance)
	g.POST("/:id/select", h.SelectItem)
	g.DELETE("/selection", h.ClearSelection)
	g.GET("/chart", h.GetChart)
}

// GetPerformance godoc
// @Summary Watchlist performance
// @Description Loads the tracked forecasts with their accuracy
// @Tags watchlist
// @Produce  json
// @Success 200 {object} service.AccuracyView
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /watchlist/performance [get]
func (h *WatchlistHandler) GetPerformance(c echo.Context) error {
	v := pagesFrom(c, h.newPages).Accuracy.Load(c.Request().Context(), accessToken(c))
	if v.Status == fetch.StatusError {
		return c.JSON(statusFor(v.Error), errorResponse(v.Error))
	}
	return c.JSON(http.StatusOK, v)
}

// SelectItem godoc
// @Summary Select a watchlist item
// @Description Loads the price history of a tracked forecast over its window
// @Tags watchlist
// @Produce  json
// @Param   id  path    int true    "Watchlist item ID"
// @Success 200 {object} service.ChartView
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlist/{id}/select [post]
func (h *WatchlistHandler) SelectItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watchlist item ID", Kind: string(fetch.KindInput)})
	}

	v, err := pagesFrom(c, h.newPages).Accuracy.Select(c.Request().Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Watchlist item not found", Kind: string(fetch.KindNotFound)})
	}
	return c.JSON(http.StatusOK, v)
}

// ClearSelection godoc
// @Summary Close the history chart
// @Tags watchlist
// @Success 204 {object} nil
// @Router /watchlist/selection [delete]
func (h *WatchlistHandler) ClearSelection(c echo.Context) error {
	pagesFrom(c, h.newPages).Accuracy.Deselect()
	return c.NoContent(http.StatusNoContent)
}

// GetChart godoc
// @Summary Selected history chart
// @Description Returns the chart of the selected watchlist item
// @Tags watchlist
// @Produce  json
// @Success 200 {object} service.ChartView
// @Router /watchlist/chart [get]
func (h *WatchlistHandler) GetChart(c echo.Context) error {
	return c.JSON(http.StatusOK, pagesFrom(c, h.newPages).Accuracy.Chart())
}
