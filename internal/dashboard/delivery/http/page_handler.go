package http

import (
	"net/http"
	"strconv"
	"sync"

	"stock-forecast-dashboard/internal/dashboard/chart"
	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/internal/dashboard/view"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	dashboardMoversLimit = 5
	dashboardNewsLimit   = 5
)

// PageData is the view model handed to every page template.
type PageData struct {
	Title      string
	Session    dto.SessionResponse
	Market     view.MarketStatus
	TickerTape chart.Widget
	Sidebar    service.SidebarView

	Query      string
	Prediction service.PredictionView
	Movers     service.MoversSection
	News       service.NewsSection
	Overview   chart.Widget
	Reference  []view.ReferenceSymbol

	Stock        service.StockDetail
	StockTracked bool

	Accuracy service.AccuracyView
	Chart    service.ChartView

	Form   dto.CredentialsForm
	Error  string
	Notice string
}

// PageHandler serves the server-rendered dashboard pages.
type PageHandler struct {
	market   service.MarketService
	stocks   service.StockService
	sidebar  service.SidebarService
	newPages PagesFactory
	logger   *logger.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(market service.MarketService, stocks service.StockService, sidebar service.SidebarService, newPages PagesFactory, logger *logger.Logger) *PageHandler {
	return &PageHandler{market: market, stocks: stocks, sidebar: sidebar, newPages: newPages, logger: logger}
}

// RegisterRoutes registers the page routes to the Echo group.
func (h *PageHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Dashboard)
	g.GET("/stock/:symbol", h.Stock)
	g.GET("/accuracy", h.Accuracy, RequireAuth())
	g.POST("/sidebar/symbols", h.AddSidebarSymbol)
}

// Dashboard renders the search page. A symbol query runs a new search,
// otherwise the last search of the session is shown.
func (h *PageHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	pages := pagesFrom(c, h.newPages)
	data := h.base(c, "Dashboard")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		data.Movers = h.market.Movers(ctx, dashboardMoversLimit)
	}()
	go func() {
		defer wg.Done()
		data.News = h.market.News(ctx, common.MarketNewsKey, dashboardNewsLimit)
	}()

	if symbol := c.QueryParam("symbol"); symbol != "" {
		data.Prediction = pages.Prediction.Search(ctx, symbol)
	} else {
		data.Prediction = pages.Prediction.Current()
	}
	wg.Wait()

	data.Query = data.Prediction.Symbol
	data.Reference = view.SP500Reference
	data.Overview, _ = chart.NewTradingViewWidget(chart.WidgetTimeline, "", "dark")
	return c.Render(http.StatusOK, "dashboard", data)
}

// Stock renders the detail page of one symbol. The forecast shown is kept
// for the session so its track button saves exactly what was displayed.
func (h *PageHandler) Stock(c echo.Context) error {
	symbol := service.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	pages := pagesFrom(c, h.newPages)
	data := h.base(c, symbol)
	data.Stock = h.stocks.Detail(c.Request().Context(), symbol)
	pages.Stock.Show(symbol, data.Stock.Result)
	data.StockTracked = pages.Stock.Tracked(symbol)
	return c.Render(http.StatusOK, "stock", data)
}

// Accuracy renders the accuracy page of the signed-in user. An item query
// opens the history chart of that watchlist entry.
func (h *PageHandler) Accuracy(c echo.Context) error {
	ctx := c.Request().Context()
	pages := pagesFrom(c, h.newPages)
	data := h.base(c, "Accuracy")

	data.Accuracy = pages.Accuracy.Load(ctx, accessToken(c))

	if raw := c.QueryParam("item"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err == nil {
			data.Chart, err = pages.Accuracy.Select(ctx, id)
		}
		if err != nil {
			data.Error = "Prediction not found."
		}
	} else {
		pages.Accuracy.Deselect()
	}
	return c.Render(http.StatusOK, "accuracy", data)
}

// AddSidebarSymbol handles the sidebar form and returns to the page it was
// posted from.
func (h *PageHandler) AddSidebarSymbol(c echo.Context) error {
	var req dto.SidebarSymbolRequest
	if err := c.Bind(&req); err == nil {
		if _, err := h.sidebar.Add(c.Request().Context(), ownerFrom(c), req.Symbol); err != nil {
			h.logger.DebugContext(c.Request().Context(), "Sidebar symbol rejected", logger.StringField("symbol", req.Symbol), logger.ErrorField(err))
		}
	}
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.Request().Referer()))
}

// base fills the parts shared by every page.
func (h *PageHandler) base(c echo.Context, title string) PageData {
	data := PageData{
		Title:   title,
		Session: sessionResponse(c),
		Market:  h.market.Status(),
		Sidebar: h.sidebar.Quotes(c.Request().Context(), ownerFrom(c)),
	}
	data.TickerTape, _ = chart.NewTradingViewWidget(chart.WidgetTickerTape, "", "dark")
	return data
}

func sessionResponse(c echo.Context) dto.SessionResponse {
	p := providerFrom(c)
	if p == nil {
		return dto.SessionResponse{}
	}
	s := p.GetSession()
	if s == nil {
		return dto.SessionResponse{}
	}
	return dto.SessionResponse{Authenticated: true, UserID: s.User.ID, Email: s.User.Email}
}
