package view

import (
	"fmt"
	"time"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"
)

// MarketStatus is the header clock.
type MarketStatus struct {
	Open      bool      `json:"open"`
	Text      string    `json:"text"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewMarketStatus reports whether the US equity market is in its regular
// session (Monday to Friday, 9:30 to 16:00 New York time) at now.
func NewMarketStatus(now time.Time) MarketStatus {
	et := now.In(utils.MarketLocation())
	minutes := et.Hour()*60 + et.Minute()
	weekday := et.Weekday()
	open := weekday >= time.Monday && weekday <= time.Friday && minutes >= 9*60+30 && minutes < 16*60

	label := "MARKET CLOSED"
	if open {
		label = "MARKET OPEN"
	}
	return MarketStatus{
		Open:      open,
		Text:      fmt.Sprintf("%s • %s ET", label, et.Format("3:04 PM")),
		CheckedAt: now,
	}
}

// MoverRow is one row of a movers tab.
type MoverRow struct {
	Symbol string `json:"symbol"`
	Value  string `json:"value"`
	Price  string `json:"price"`
	Volume string `json:"volume,omitempty"`
	Up     bool   `json:"up"`
}

// MoversPanel holds the three movers tabs.
type MoversPanel struct {
	Gainers   []MoverRow `json:"gainers"`
	Losers    []MoverRow `json:"losers"`
	Active    []MoverRow `json:"active"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

// NewMoversPanel renders at most limit rows per tab. Gainers and losers show
// the percent change, the most active tab shows the price.
func NewMoversPanel(m *entity.MarketMovers, limit int) MoversPanel {
	panel := MoversPanel{Gainers: []MoverRow{}, Losers: []MoverRow{}, Active: []MoverRow{}}
	if m == nil {
		return panel
	}
	panel.Gainers = moverRows(m.Gainers, limit, false)
	panel.Losers = moverRows(m.Losers, limit, false)
	panel.Active = moverRows(m.Active, limit, true)
	if !m.FetchedAt.IsZero() {
		panel.UpdatedAt = m.FetchedAt.In(utils.MarketLocation()).Format("3:04 PM ET")
	}
	return panel
}

func moverRows(items []entity.MarketMoverItem, limit int, showPrice bool) []MoverRow {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	rows := make([]MoverRow, 0, len(items))
	for _, m := range items {
		value := SignedPercent(m.ChangePct)
		if showPrice {
			value = fmt.Sprintf("%.2f", m.Price)
		}
		rows = append(rows, MoverRow{
			Symbol: m.Symbol,
			Value:  value,
			Price:  Money(m.Price),
			Volume: m.Volume,
			Up:     m.ChangePct >= 0,
		})
	}
	return rows
}

// NewsRow is one news headline.
type NewsRow struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Summary  string `json:"summary,omitempty"`
	Age      string `json:"age,omitempty"`
}

// NewNewsList renders at most limit news items.
func NewNewsList(items []entity.NewsItem, now time.Time, limit int) []NewsRow {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	rows := make([]NewsRow, 0, len(items))
	for _, n := range items {
		row := NewsRow{Headline: n.Headline, Source: n.Source, URL: n.URL, Summary: n.Summary}
		if n.PublishedAt != nil {
			row.Age = TimeAgo(*n.PublishedAt, now)
		}
		rows = append(rows, row)
	}
	return rows
}

// QuoteRow is one sidebar ticker.
type QuoteRow struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Change string `json:"change"`
	Up     bool   `json:"up"`
	Priced bool   `json:"priced"`
}

// NewQuoteRows renders a row for every symbol in order. Symbols without a
// quote are shown unpriced.
func NewQuoteRows(symbols []string, quotes []entity.Quote) []QuoteRow {
	bySymbol := make(map[string]entity.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}
	rows := make([]QuoteRow, 0, len(symbols))
	for _, s := range symbols {
		q, ok := bySymbol[s]
		if !ok {
			rows = append(rows, QuoteRow{Symbol: s, Price: "--", Change: "--"})
			continue
		}
		rows = append(rows, QuoteRow{
			Symbol: s,
			Price:  Money(q.Price),
			Change: SignedPercent(q.ChangePercent),
			Up:     q.ChangePercent >= 0,
			Priced: true,
		})
	}
	return rows
}
