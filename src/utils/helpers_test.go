package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEachNightExclusiveCheckout(t *testing.T) {
	checkIn := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)

	nights := EachNight(checkIn, checkOut)

	assert.Len(t, nights, 3)
	assert.Equal(t, "2025-06-05", FormatDate(nights[0]))
	assert.Equal(t, "2025-06-07", FormatDate(nights[2]))
	assert.Equal(t, 3, NightsBetween(checkIn, checkOut))
}

func TestEachNightEmptyWhenReversed(t *testing.T) {
	checkIn := time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, EachNight(checkIn, checkOut))
}

func TestDateOnlyStripsTime(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	stamped := time.Date(2025, time.June, 5, 17, 30, 12, 0, loc)

	d := DateOnly(stamped)

	assert.Equal(t, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC), d)
}

// A run starting on the 31st must still produce every month: naive
// AddDate from Jan 31 lands on Mar 3 and skips February entirely.
func TestMonthsAheadFromEndOfLongMonth(t *testing.T) {
	from := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	months := MonthsAhead(from, 3)

	assert.Equal(t, []YearMonth{
		{Year: 2026, Month: 1},
		{Year: 2026, Month: 2},
		{Year: 2026, Month: 3},
	}, months)
}

func TestMonthsAheadYearRollover(t *testing.T) {
	from := time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)

	months := MonthsAhead(from, 3)

	assert.Equal(t, []YearMonth{
		{Year: 2025, Month: 12},
		{Year: 2026, Month: 1},
		{Year: 2026, Month: 2},
	}, months)
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-06-05")

	assert.Nil(t, err)
	assert.Equal(t, "2025-06-05", FormatDate(d))

	_, err = ParseDate("06/05/2025")
	assert.NotNil(t, err)
}
