package http

import (
	"net/http"
	"strconv"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionHandler handles forecast search and tracking requests.
type PredictionHandler struct {
	newPages PagesFactory
	logger   *logger.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(newPages PagesFactory, logger *logger.Logger) *PredictionHandler {
	return &PredictionHandler{newPages: newPages, logger: logger}
}

// RegisterRoutes registers the prediction routes to the Echo group.
func (h *PredictionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.Search)
	g.GET("/current", h.Current)
}

// RegisterWatchlistRoutes registers the track routes on the watchlist group.
func (h *PredictionHandler) RegisterWatchlistRoutes(g *echo.Group) {
	g.POST("/track", h.Track)
	g.POST("/stocks/:symbol/track", h.TrackStock)
}

// Search godoc
// @Summary Search a forecast
// @Description Requests the 7-day forecast of a symbol. Only the latest search of the session is kept.
// @Tags predictions
// @Accept  json
// @Produce  json
// @Param   request  body    dto.SearchPredictionRequest   true    "Symbol to forecast"
// @Success 200 {object} service.PredictionView
// @Failure 400 {object} dto.ErrorResponse
// @Router /predictions/search [post]
func (h *PredictionHandler) Search(c echo.Context) error {
	var req dto.SearchPredictionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Kind: string(fetch.KindInput)})
	}
	v := pagesFrom(c, h.newPages).Prediction.Search(c.Request().Context(), req.Symbol)
	return c.JSON(http.StatusOK, v)
}

// Current godoc
// @Summary Current forecast
// @Description Returns the forecast panel of the latest search of the session
// @Tags predictions
// @Produce  json
// @Success 200 {object} service.PredictionView
// @Router /predictions/current [get]
func (h *PredictionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, pagesFrom(c, h.newPages).Prediction.Current())
}

// Track godoc
// @Summary Track the current forecast
// @Description Saves the displayed forecast to the watchlist. A 409 outcome carries a confirmation prompt; re-submit with force to replace the existing entry.
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Param   request  body    dto.TrackPredictionRequest   true    "Symbol to track"
// @Param   force    query   bool  false  "Replace an existing tracking"
// @Success 201 {object} service.TrackResult
// @Failure 400 {object} service.TrackResult
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} service.TrackResult
// @Failure 502 {object} service.TrackResult
// @Router /watchlist/track [post]
func (h *PredictionHandler) Track(c echo.Context) error {
	var req dto.TrackPredictionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Kind: string(fetch.KindInput)})
	}
	if force, err := strconv.ParseBool(c.QueryParam("force")); err == nil && force {
		req.Force = true
	}

	res := pagesFrom(c, h.newPages).Prediction.Track(c.Request().Context(), accessToken(c), req.Symbol, req.Force)
	return trackResponse(c, res)
}

// TrackStock godoc
// @Summary Track the stock page forecast
// @Description Saves the forecast last shown on the stock page of the session. Same outcomes as /watchlist/track.
// @Tags watchlist
// @Produce  json
// @Param   symbol   path    string  true   "Stock symbol"
// @Param   force    query   bool    false  "Replace an existing tracking"
// @Success 201 {object} service.TrackResult
// @Failure 400 {object} service.TrackResult
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} service.TrackResult
// @Failure 502 {object} service.TrackResult
// @Router /watchlist/stocks/{symbol}/track [post]
func (h *PredictionHandler) TrackStock(c echo.Context) error {
	force, _ := strconv.ParseBool(c.QueryParam("force"))
	res := pagesFrom(c, h.newPages).Stock.Track(c.Request().Context(), accessToken(c), c.Param("symbol"), force)
	return trackResponse(c, res)
}

func trackResponse(c echo.Context, res service.TrackResult) error {
	switch res.Outcome {
	case service.TrackCreated:
		return c.JSON(http.StatusCreated, res)
	case service.TrackConflict:
		return c.JSON(http.StatusConflict, res)
	default:
		return c.JSON(statusFor(res.Error), res)
	}
}
