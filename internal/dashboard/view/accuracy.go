package view

import (
	"fmt"

	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/utils"
)

const (
	pendingText        = "In Progress"
	emptyTitle         = "No Predictions Yet"
	emptyMessage       = "Track a forecast from the dashboard to start measuring its accuracy."
	weekendAdjustLabel = "Weekend Adj."
)

// AccuracyRow is one tracked prediction in the accuracy table. A pending row
// never carries a numeric accuracy.
type AccuracyRow struct {
	ID              int     `json:"id"`
	Symbol          string  `json:"symbol"`
	Status          string  `json:"status"`
	StartPrice      string  `json:"start_price"`
	TargetPrice     string  `json:"target_price"`
	ResultPrice     string  `json:"result_price"`
	Final           bool    `json:"final"`
	CreatedAt       string  `json:"created_at"`
	EndDate         string  `json:"end_date"`
	WeekendAdjusted bool    `json:"weekend_adjusted"`
	WeekendLabel    string  `json:"weekend_label,omitempty"`
	AdjustmentNote  string  `json:"adjustment_note,omitempty"`
	Pending         bool    `json:"pending"`
	AccuracyText    string  `json:"accuracy_text"`
	AccuracyWidth   float64 `json:"accuracy_width"`
	HighAccuracy    bool    `json:"high_accuracy"`
}

// AccuracyTable is the rendered accuracy page. Empty replaces the table with
// an explicit empty state.
type AccuracyTable struct {
	Rows             []AccuracyRow `json:"rows"`
	Empty            bool          `json:"empty"`
	EmptyTitle       string        `json:"empty_title,omitempty"`
	EmptyMessage     string        `json:"empty_message,omitempty"`
	AveragePrecision string        `json:"average_precision"`
}

// NewAccuracyRow renders one watchlist item.
func NewAccuracyRow(item entity.WatchlistItem) AccuracyRow {
	row := AccuracyRow{
		ID:          item.ID,
		Symbol:      item.Symbol,
		Status:      item.Status,
		StartPrice:  Money(item.InitialPrice),
		TargetPrice: Money(item.TargetPrice),
		ResultPrice: Money(item.CurrentPrice),
		Final:       item.IsFinal(),
		CreatedAt:   utils.FormatDate(item.CreatedAt),
		EndDate:     utils.FormatDate(item.EndDate),
	}

	if row.Final {
		row.ResultPrice = Money(*item.FinalPrice)
		row.AccuracyText = fmt.Sprintf("%.1f%%", item.AccuracyScore)
		row.AccuracyWidth = clampPercent(item.AccuracyScore)
		row.HighAccuracy = item.AccuracyScore > 90
	} else {
		row.Pending = true
		row.AccuracyText = pendingText
	}

	if item.IsWeekendAdjusted() {
		finalized := utils.FormatDate(*item.FinalizedDate)
		row.WeekendAdjusted = true
		row.WeekendLabel = weekendAdjustLabel
		row.AdjustmentNote = "Market closed on target date. Result taken on next open: " + finalized
	}
	return row
}

// NewAccuracyTable renders the accuracy page. The average precision is the
// mean accuracy of finalized items with one decimal, "0.0" when none is
// final.
func NewAccuracyTable(items []entity.WatchlistItem) AccuracyTable {
	table := AccuracyTable{Rows: make([]AccuracyRow, 0, len(items)), AveragePrecision: "0.0"}
	if len(items) == 0 {
		table.Empty = true
		table.EmptyTitle = emptyTitle
		table.EmptyMessage = emptyMessage
		return table
	}

	var sum float64
	var finals int
	for _, item := range items {
		table.Rows = append(table.Rows, NewAccuracyRow(item))
		if item.IsFinal() {
			sum += item.AccuracyScore
			finals++
		}
	}
	if finals > 0 {
		table.AveragePrecision = fmt.Sprintf("%.1f", sum/float64(finals))
	}
	return table
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
