package services

import (
	"math"
	"time"
)

// dayWindow returns the [midnight, next-midnight) bounds for t in
// server-local time. Per-user timezones are not modeled. AddDate keeps
// the boundary on the calendar day even when a DST shift makes the day
// 23 or 25 hours long.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
