package entity

import "time"

// WatchlistItem is a tracked prediction as scored by the backend.
type WatchlistItem struct {
	ID            int        `json:"id"`
	Symbol        string     `json:"symbol"`
	InitialPrice  float64    `json:"initial_price"`
	TargetPrice   float64    `json:"target_price"`
	CurrentPrice  float64    `json:"current_price"`
	FinalPrice    *float64   `json:"final_price"`
	CreatedAt     time.Time  `json:"created_at"`
	EndDate       time.Time  `json:"end_date"`
	FinalizedDate *time.Time `json:"finalized_date,omitempty"`
	AccuracyScore float64    `json:"accuracy_score"`
	Status        string     `json:"status"`
}

// IsFinal reports whether a closing price has been recorded. Only then is
// AccuracyScore meaningful.
func (w WatchlistItem) IsFinal() bool {
	return w.FinalPrice != nil && *w.FinalPrice > 0
}

// IsWeekendAdjusted reports whether the result was taken on a later trading
// day than the nominal end date.
func (w WatchlistItem) IsWeekendAdjusted() bool {
	return w.FinalizedDate != nil && !sameDay(*w.FinalizedDate, w.EndDate)
}

// ResultDate is the day whose close scored the item: the finalized date when
// present, otherwise the end date.
func (w WatchlistItem) ResultDate() time.Time {
	if w.FinalizedDate != nil {
		return *w.FinalizedDate
	}
	return w.EndDate
}

// TrackRequest is the payload for tracking a prediction.
type TrackRequest struct {
	Symbol       string    `json:"symbol"`
	InitialPrice float64   `json:"initial_price"`
	TargetPrice  float64   `json:"target_price"`
	EndDate      time.Time `json:"end_date"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
