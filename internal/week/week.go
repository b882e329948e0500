// Package week maps calendar dates to the week identifiers that key meal
// plans. Identifiers follow ISO-8601: the Thursday of a date's week decides
// which year the week belongs to, and weeks are counted from the first
// Thursday of that year. The formatted label is "YYYY-Www".
package week

import (
	"fmt"
	"math"
	"time"
)

// ID returns the week identifier for d, e.g. "2024-W01".
func ID(d time.Time) string {
	// Normalize to midnight and shift to the Thursday of this week
	// (Monday-based week, so Sunday counts as day 7).
	date := midnight(d)
	thursday := date.AddDate(0, 0, 3-(int(date.Weekday())+6)%7)

	// Week 1 is the week containing January 4th of the Thursday's year.
	week1 := time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, time.UTC)
	days := thursday.Sub(week1).Hours() / 24
	number := 1 + int(math.Round((days-3+float64((int(week1.Weekday())+6)%7))/7))

	return fmt.Sprintf("%d-W%02d", thursday.Year(), number)
}

// Start returns the Monday of the week containing d, at midnight.
// A Sunday is treated as day 7 of the preceding Monday's week.
func Start(d time.Time) time.Time {
	date := midnight(d)
	wd := int(date.Weekday())
	if wd == 0 {
		return date.AddDate(0, 0, -6)
	}
	return date.AddDate(0, 0, 1-wd)
}

// Shift moves d by the given number of whole weeks, negative for the past.
// Navigation is unbounded in both directions.
func Shift(d time.Time, weeks int) time.Time {
	return d.AddDate(0, 0, 7*weeks)
}

// midnight drops the clock component. UTC is used so day arithmetic is not
// disturbed by DST transitions in the host timezone.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
