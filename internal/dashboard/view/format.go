package view

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// Money formats a price as "$1,234.50".
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return printer.Sprintf("$%.2f", v)
}

func moneyOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return notAvailable
	}
	return Money(*v)
}

// SignedPercent formats a change as "+1.25%" or "-0.40%".
func SignedPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// TimeAgo renders the age of t relative to now, as "5m ago" or "3d ago".
func TimeAgo(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()
	if seconds < 0 {
		seconds = 0
	}
	steps := []struct {
		size   float64
		suffix string
	}{
		{31536000, "y"},
		{2592000, "mo"},
		{86400, "d"},
		{3600, "h"},
		{60, "m"},
	}
	for _, s := range steps {
		if n := seconds / s.size; n > 1 {
			return fmt.Sprintf("%d%s ago", int(n), s.suffix)
		}
	}
	return fmt.Sprintf("%ds ago", int(seconds))
}
