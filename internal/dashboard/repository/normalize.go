package repository

import (
	"math"
	"sort"
	"strings"
	"time"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// normalizePrediction maps any predict payload variant onto the canonical
// shape. The predicted price is read from predicted_price, then
// predicted_price_7d, then target_price.
func normalizePrediction(p dto.PredictionPayload, requested string) entity.PredictionResult {
	symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if symbol == "" {
		symbol = requested
	}

	predicted := math.NaN()
	for _, candidate := range []*dto.FlexFloat{p.PredictedPrice, p.PredictedPrice7D, p.TargetPrice} {
		if candidate != nil && candidate.Set {
			predicted = candidate.Float()
			break
		}
	}

	forecastDate := p.ForecastDate
	if forecastDate == "" {
		forecastDate = p.TargetDate
	}
	var fd time.Time
	if forecastDate != "" {
		if parsed, err := utils.ParseDate(forecastDate); err == nil {
			fd = parsed
		}
	}

	var technicals *entity.Technicals
	if p.Technicals != nil {
		technicals = &entity.Technicals{TrendSignal: p.Technicals.TrendSignal, RSI: p.Technicals.RSI.Float()}
	}
	var liquidity *entity.Liquidity
	if p.Liquidity != nil {
		liquidity = &entity.Liquidity{LiquidityRating: p.Liquidity.LiquidityRating, SlippageRisk: p.Liquidity.SlippageRisk}
	}
	var sentiment *entity.SentimentSummary
	if p.Sentiment != nil {
		sentiment = &entity.SentimentSummary{}
		for _, n := range p.Sentiment.News {
			sentiment.News = append(sentiment.News, entity.SentimentHeadline{
				Title:     n.Title,
				Link:      n.Link,
				Sentiment: n.Sentiment,
			})
		}
	}

	return entity.PredictionResult{
		Symbol:          symbol,
		CompanyName:     p.CompanyName,
		CurrentPrice:    p.CurrentPrice.Float(),
		PredictedPrice:  predicted,
		ConfidenceScore: p.ConfidenceScore.Ptr(),
		ForecastDate:    fd,
		Explanation:     p.Explanation,
		Stats: entity.MarketStats{
			MarketCap:        p.MarketCap.Ptr(),
			PERatio:          p.PERatio.Ptr(),
			DividendYield:    p.DividendYield.Ptr(),
			FiftyTwoWeekHigh: p.FiftyTwoWeekHigh.Ptr(),
			FiftyTwoWeekLow:  p.FiftyTwoWeekLow.Ptr(),
			OpenPrice:        p.OpenPrice.Ptr(),
			HighPrice:        p.HighPrice.Ptr(),
			LowPrice:         p.LowPrice.Ptr(),
			Volume:           p.Volume.Ptr(),
		},
		Detail: entity.NewPredictionDetail(technicals, liquidity, sentiment),
	}
}

func normalizeWatchlistItem(p dto.WatchlistPerformancePayload) entity.WatchlistItem {
	item := entity.WatchlistItem{
		ID:            p.ID,
		Symbol:        p.Symbol,
		InitialPrice:  p.InitialPrice.Float(),
		TargetPrice:   p.TargetPrice.Float(),
		CurrentPrice:  p.CurrentPrice.Float(),
		AccuracyScore: p.AccuracyScore.Float(),
		Status:        p.Status,
	}
	// The backend stores 0 for "not finalized yet".
	if fp := p.FinalPrice.Ptr(); fp != nil && *fp > 0 {
		item.FinalPrice = fp
	}
	if t, err := utils.ParseDate(p.CreatedAt); err == nil {
		item.CreatedAt = t
	}
	if t, err := utils.ParseDate(p.EndDate); err == nil {
		item.EndDate = t
	}
	if p.FinalizedDate != nil && *p.FinalizedDate != "" {
		if t, err := utils.ParseDate(*p.FinalizedDate); err == nil {
			item.FinalizedDate = utils.ToPointer(t)
		}
	}
	return item
}

// normalizeHistory recognises the pending sentinel: a single point priced 0
// carrying a message, sent when the start date is today or later.
func normalizeHistory(symbol string, points []dto.PricePointPayload) entity.PriceHistory {
	history := entity.PriceHistory{Symbol: symbol, Points: []entity.PricePoint{}}

	if len(points) == 1 && points[0].Message != "" && points[0].Price.Float() == 0 {
		history.Pending = true
		history.Message = points[0].Message
		return history
	}

	for _, p := range points {
		price := p.Price.Float()
		if math.IsNaN(price) || price <= 0 {
			continue
		}
		date, err := utils.ParseDate(p.Date)
		if err != nil {
			continue
		}
		history.Points = append(history.Points, entity.PricePoint{Date: date, Price: price})
	}
	sort.Slice(history.Points, func(i, j int) bool {
		return history.Points[i].Date.Before(history.Points[j].Date)
	})
	return history
}

func normalizeMovers(p dto.MarketMoversPayload, fetchedAt time.Time) entity.MarketMovers {
	convert := func(items []dto.MoverPayload) []entity.MarketMoverItem {
		out := make([]entity.MarketMoverItem, 0, len(items))
		for _, m := range items {
			out = append(out, entity.MarketMoverItem{
				Symbol:    m.Symbol,
				Price:     m.Price.Float(),
				ChangePct: m.ChangePct.Float(),
				Volume:    string(m.Volume),
			})
		}
		return out
	}
	return entity.MarketMovers{
		Gainers:   convert(p.Gainers),
		Losers:    convert(p.Losers),
		Active:    convert(p.Active),
		FetchedAt: fetchedAt,
	}
}

// normalizeQuotes returns quotes in the order the symbols were requested and
// skips symbols the backend did not price.
func normalizeQuotes(symbols []string, payload map[string]dto.QuotePayload) []entity.Quote {
	quotes := make([]entity.Quote, 0, len(symbols))
	for _, s := range symbols {
		q, ok := payload[s]
		if !ok {
			continue
		}
		quotes = append(quotes, entity.Quote{
			Symbol:        s,
			Price:         q.Price.Float(),
			ChangePercent: q.ChangePercent.Float(),
		})
	}
	return quotes
}

func normalizeNews(items []dto.NewsPayload) []entity.NewsItem {
	out := make([]entity.NewsItem, 0, len(items))
	for _, n := range items {
		headline := n.Headline
		if headline == "" {
			headline = n.Title
		}
		url := n.URL
		if url == "" {
			url = n.Link
		}
		if headline == "" {
			continue
		}

		item := entity.NewsItem{
			Headline: plainText(headline),
			Source:   n.Source,
			URL:      url,
			Summary:  plainText(n.Summary),
		}
		switch {
		case n.Datetime != nil && *n.Datetime > 0:
			item.PublishedAt = utils.ToPointer(time.Unix(*n.Datetime, 0).UTC())
		case n.Published != "":
			if t, err := time.Parse(time.RFC1123Z, n.Published); err == nil {
				item.PublishedAt = &t
			} else if t, err := time.Parse(time.RFC3339, n.Published); err == nil {
				item.PublishedAt = &t
			}
		}
		out = append(out, item)
	}
	return out
}

func normalizeSentiment(items []dto.SentimentMessagePayload) []entity.SentimentMessage {
	out := make([]entity.SentimentMessage, 0, len(items))
	for _, m := range items {
		out = append(out, entity.SentimentMessage{
			Text:      plainText(m.Text),
			Source:    m.Source,
			URL:       m.URL,
			Sentiment: normalizeLabel(m.Sentiment, entity.SentimentNeutral, entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral),
			Type:      normalizeLabel(m.Type, entity.MessageInformative, entity.MessageInformative, entity.MessageEmotional),
			IsLawsuit: m.IsLawsuit,
		})
	}
	return out
}

func normalizeDepth(symbol string, p dto.MarketDepthPayload) entity.MarketDepth {
	depth := entity.MarketDepth{Symbol: p.Symbol, InstitutionalOwnership: []entity.InstitutionalHolder{}}
	if depth.Symbol == "" {
		depth.Symbol = symbol
	}
	if p.OptionsFlow != nil {
		depth.OptionsFlow = &entity.OptionsFlow{
			PutCallRatio: p.OptionsFlow.PutCallRatio.Float(),
			CallVolume:   p.OptionsFlow.CallVolume.Float(),
			PutVolume:    p.OptionsFlow.PutVolume.Float(),
			Sentiment:    p.OptionsFlow.Sentiment,
		}
	}
	for _, h := range p.InstitutionalOwnership {
		depth.InstitutionalOwnership = append(depth.InstitutionalOwnership, entity.InstitutionalHolder{
			Holder:   h.Holder,
			Shares:   h.Shares.Float(),
			PctHeld:  h.PctHeld.Float(),
			ValueUSD: h.ValueUSD.Float(),
		})
	}
	return depth
}

// normalizeLabel lower-cases label and returns it when it is one of allowed,
// otherwise fallback.
func normalizeLabel(label, fallback string, allowed ...string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, a := range allowed {
		if l == a {
			return l
		}
	}
	return fallback
}

// plainText strips markup some feeds embed in headlines and summaries.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
