package utils

import (
	"os"
	"time"
	"vrb/src/config"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(config.DATE_PARSE_FORMAT, s)
}

func FormatDate(t time.Time) string {
	return t.Format(config.DATE_PARSE_FORMAT)
}

// DateOnly truncates to a calendar date at UTC midnight. Every date the
// engine stores or compares goes through this first.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EachNight lists the nights of a stay: checkIn inclusive, checkOut
// exclusive.
func EachNight(checkIn, checkOut time.Time) []time.Time {
	nights := []time.Time{}
	for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func NightsBetween(checkIn, checkOut time.Time) int {
	return len(EachNight(checkIn, checkOut))
}

type YearMonth struct {
	Year  int
	Month int
}

// MonthsAhead lists count consecutive calendar months starting at the
// month of from. Anchored to the first of the month so a run triggered
// late in a long month cannot step over a shorter one.
func MonthsAhead(from time.Time, count int) []YearMonth {
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]YearMonth, 0, count)
	for i := 0; i < count; i++ {
		cursor := first.AddDate(0, i, 0)
		months = append(months, YearMonth{Year: cursor.Year(), Month: int(cursor.Month())})
	}
	return months
}

// MonthsCovering lists the calendar months touched by the given nights,
// in chronological order. Claim transactions lock month rows in this
// order so overlapping ranges cannot deadlock each other.
func MonthsCovering(nights []time.Time) []YearMonth {
	months := []YearMonth{}
	seen := map[YearMonth]bool{}
	for _, n := range nights {
		ym := YearMonth{Year: n.Year(), Month: int(n.Month())}
		if !seen[ym] {
			seen[ym] = true
			months = append(months, ym)
		}
	}
	return months
}
