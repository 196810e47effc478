package view

import (
	"fmt"

	"stock-forecast-dashboard/internal/entity"
)

// SentimentRow is one classified message on the stock page.
type SentimentRow struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Sentiment string `json:"sentiment"`
	Type      string `json:"type"`
	Lawsuit   bool   `json:"lawsuit"`
}

// SentimentPanel groups messages with their polarity counts.
type SentimentPanel struct {
	Rows     []SentimentRow `json:"rows"`
	Positive int            `json:"positive"`
	Negative int            `json:"negative"`
	Neutral  int            `json:"neutral"`
	Lawsuits int            `json:"lawsuits"`
}

// NewSentimentPanel renders classified messages.
func NewSentimentPanel(msgs []entity.SentimentMessage) SentimentPanel {
	panel := SentimentPanel{Rows: make([]SentimentRow, 0, len(msgs))}
	for _, m := range msgs {
		panel.Rows = append(panel.Rows, SentimentRow{
			Text:      m.Text,
			Source:    m.Source,
			URL:       m.URL,
			Sentiment: m.Sentiment,
			Type:      m.Type,
			Lawsuit:   m.IsLawsuit,
		})
		switch m.Sentiment {
		case entity.SentimentPositive:
			panel.Positive++
		case entity.SentimentNegative:
			panel.Negative++
		default:
			panel.Neutral++
		}
		if m.IsLawsuit {
			panel.Lawsuits++
		}
	}
	return panel
}

// HolderRow is one institutional holder.
type HolderRow struct {
	Holder  string `json:"holder"`
	Shares  string `json:"shares"`
	PctHeld string `json:"pct_held"`
	Value   string `json:"value"`
}

// DepthPanel is the options flow and ownership section of the stock page.
type DepthPanel struct {
	HasOptions   bool        `json:"has_options"`
	PutCallRatio string      `json:"put_call_ratio,omitempty"`
	CallVolume   string      `json:"call_volume,omitempty"`
	PutVolume    string      `json:"put_volume,omitempty"`
	Sentiment    string      `json:"sentiment,omitempty"`
	Holders      []HolderRow `json:"holders"`
}

// NewDepthPanel renders market depth data.
func NewDepthPanel(d *entity.MarketDepth) DepthPanel {
	panel := DepthPanel{Holders: []HolderRow{}}
	if d == nil {
		return panel
	}
	if d.OptionsFlow != nil {
		panel.HasOptions = true
		panel.PutCallRatio = fmt.Sprintf("%.2f", d.OptionsFlow.PutCallRatio)
		panel.CallVolume = printer.Sprintf("%d", int64(d.OptionsFlow.CallVolume))
		panel.PutVolume = printer.Sprintf("%d", int64(d.OptionsFlow.PutVolume))
		panel.Sentiment = d.OptionsFlow.Sentiment
	}
	for _, h := range d.InstitutionalOwnership {
		panel.Holders = append(panel.Holders, HolderRow{
			Holder:  h.Holder,
			Shares:  printer.Sprintf("%d", int64(h.Shares)),
			PctHeld: fmt.Sprintf("%.2f%%", h.PctHeld),
			Value:   printer.Sprintf("$%d", int64(h.ValueUSD)),
		})
	}
	return panel
}
