package utils

import (
	"log"
	"time"
)

// DateLayout is the calendar-date layout used by the backend.
const DateLayout = "2006-01-02"

var marketLocation *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Printf("Failed to load America/New_York, using fixed EST offset: %v", err)
		loc = time.FixedZone("EST", -5*60*60)
	}
	marketLocation = loc
}

// MarketLocation returns the US equities market time zone.
func MarketLocation() *time.Location {
	return marketLocation
}

// TimeNowET returns the current time in the US market time zone.
func TimeNowET() time.Time {
	return time.Now().In(marketLocation)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date or a timestamp (RFC 3339 or the
// zone-less ISO form the backend emits) and returns the calendar date at UTC
// midnight.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}
