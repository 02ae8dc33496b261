package common

import (
	"testing"
	"time"
	"vrb/src/models"
	"vrb/src/types"

	"github.com/stretchr/testify/assert"
)

func stayDays(from time.Time, count int, minStay int) map[string]models.DayRecord {
	days := map[string]models.DayRecord{}
	for i := 0; i < count; i++ {
		d := from.AddDate(0, 0, i)
		days[d.Format("2006-01-02")] = models.DayRecord{
			PriceCents:        10000,
			PricesByOccupancy: map[string]int64{"2": 10000},
			Available:         true,
			MinimumStay:       minStay,
			PriceSource:       types.PRICE_SOURCE_BASE,
		}
	}
	return days
}

func TestEvaluateStayOK(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 8)
	days := stayDays(checkIn, 3, 1)

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.True(t, eval.OK)
	assert.Len(t, eval.DailyRates, 3)
	assert.Equal(t, int64(10000), eval.DailyRates["2025-06-06"])
}

func TestEvaluateStayUnavailableDates(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 8)
	days := stayDays(checkIn, 3, 1)
	blocked := days["2025-06-06"]
	blocked.Available = false
	days["2025-06-06"] = blocked

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.False(t, eval.OK)
	assert.Equal(t, types.REASON_UNAVAILABLE_DATES, eval.Reason)
	assert.Equal(t, []string{"2025-06-06"}, eval.UnavailableDates)
}

func TestEvaluateStayMissingDaysIsError(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 8)
	days := stayDays(checkIn, 2, 1) // last night absent

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, eval)
	perr := IsMissingPriceDataError(err)
	assert.NotNil(t, perr)
	assert.Equal(t, []string{"2025-06-07"}, perr.Dates)
}

// A 2-night stay checking in on a min-3 day is rejected even when every
// later night only requires 1.
func TestEvaluateStayMinimumStayCheckInDay(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 7)
	days := stayDays(checkIn, 2, 1)
	first := days["2025-06-05"]
	first.MinimumStay = 3
	days["2025-06-05"] = first

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.False(t, eval.OK)
	assert.Equal(t, types.REASON_MINIMUM_STAY, eval.Reason)
	assert.Equal(t, 3, eval.MinimumStayRequired)
}

func TestEvaluateStayStrictLaterNightIgnored(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 7)
	days := stayDays(checkIn, 2, 1)
	second := days["2025-06-06"]
	second.MinimumStay = 5
	days["2025-06-06"] = second

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.True(t, eval.OK)
}

func TestEvaluateStayMinimumStayDisabled(t *testing.T) {
	c := NewAvailabilityChecker(false)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 7)
	days := stayDays(checkIn, 2, 3)

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.True(t, eval.OK)
}

func TestEvaluateStayUnavailableReportedBeforeMinStay(t *testing.T) {
	c := NewAvailabilityChecker(true)
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 7)
	days := stayDays(checkIn, 2, 3)
	blocked := days["2025-06-06"]
	blocked.Available = false
	days["2025-06-06"] = blocked

	eval, err := c.EvaluateStay(days, checkIn, checkOut, 2)

	assert.Nil(t, err)
	assert.False(t, eval.OK)
	assert.Equal(t, types.REASON_UNAVAILABLE_DATES, eval.Reason)
}
