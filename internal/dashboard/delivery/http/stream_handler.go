package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StreamHandler pushes the live sections as server-sent events. Each stream
// polls only while its client is connected.
type StreamHandler struct {
	market  service.MarketService
	sidebar service.SidebarService
	polling config.Polling
	logger  *logger.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(market service.MarketService, sidebar service.SidebarService, polling config.Polling, logger *logger.Logger) *StreamHandler {
	return &StreamHandler{market: market, sidebar: sidebar, polling: polling, logger: logger}
}

// RegisterRoutes registers the stream routes to the Echo group.
func (h *StreamHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/market", h.StreamMarket)
	g.GET("/sidebar", h.StreamSidebar)
}

// StreamMarket godoc
// @Summary Market stream
// @Description Server-sent "status" and "movers" events, refreshed on their polling intervals
// @Tags streams
// @Produce  text/event-stream
// @Success 200 {string} string "event stream"
// @Router /stream/market [get]
func (h *StreamHandler) StreamMarket(c echo.Context) error {
	events := newEventWriter(c)
	status := fetch.NewPoller(h.polling.MarketStatusInterval, func(context.Context) {
		events.send("status", h.market.Status())
	})
	movers := fetch.NewPoller(h.polling.MoversInterval, func(ctx context.Context) {
		events.send("movers", h.market.Movers(ctx, dashboardMoversLimit))
	})
	return h.serve(c, status, movers)
}

// StreamSidebar godoc
// @Summary Sidebar stream
// @Description Server-sent "quotes" events for the sidebar tickers
// @Tags streams
// @Produce  text/event-stream
// @Success 200 {string} string "event stream"
// @Router /stream/sidebar [get]
func (h *StreamHandler) StreamSidebar(c echo.Context) error {
	events := newEventWriter(c)
	owner := ownerFrom(c)
	quotes := fetch.NewPoller(h.polling.QuotesInterval, func(ctx context.Context) {
		events.send("quotes", h.sidebar.Quotes(ctx, owner))
	})
	return h.serve(c, quotes)
}

// serve runs the pollers until the client goes away.
func (h *StreamHandler) serve(c echo.Context, pollers ...*fetch.Poller) error {
	ctx := c.Request().Context()
	h.logger.DebugContext(ctx, "Stream opened", logger.StringField("path", c.Path()))

	for _, p := range pollers {
		p.Start(ctx)
	}
	<-ctx.Done()
	for _, p := range pollers {
		p.Stop()
	}

	h.logger.DebugContext(ctx, "Stream closed", logger.StringField("path", c.Path()))
	return nil
}

// eventWriter serializes events from concurrent pollers onto one response.
type eventWriter struct {
	mu  sync.Mutex
	res *echo.Response
}

func newEventWriter(c echo.Context) *eventWriter {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()
	return &eventWriter{res: res}
}

func (w *eventWriter) send(event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintf(w.res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return
	}
	w.res.Flush()
}
