package common

import (
	"testing"
	"time"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestBuildMonthEveryDayPopulated(t *testing.T) {
	p := testProperty()
	m := BuildMonth(p, nil, nil, 2025, 6)

	assert.Equal(t, 30, m.DaysInMonth())
	assert.Len(t, m.Days, 30)
	for d := 1; d <= 30; d++ {
		rec, ok := m.Days.Day(d)
		assert.True(t, ok)
		assert.True(t, rec.Available)
		assert.Greater(t, rec.PriceCents, int64(0))
	}
}

func TestBuildMonthLeapFebruary(t *testing.T) {
	p := testProperty()
	m := BuildMonth(p, nil, nil, 2028, 2)

	assert.Len(t, m.Days, 29)
}

func TestBuildMonthIdempotent(t *testing.T) {
	p := testProperty()
	rules := []models.SeasonalRule{
		{
			ID:          1,
			StartDate:   date(2025, time.June, 10),
			EndDate:     date(2025, time.June, 20),
			Multiplier:  1.5,
			MinimumStay: 2,
			Enabled:     true,
		},
	}
	customPrice := int64(9900)
	overrides := map[string]*models.DateOverride{
		"2025-06-15": {
			PropertyID: p.ID,
			Date:       date(2025, time.June, 15),
			PriceCents: &customPrice,
			Available:  true,
		},
	}

	first := BuildMonth(p, rules, overrides, 2025, 6)
	second := BuildMonth(p, rules, overrides, 2025, 6)

	assert.Equal(t, first.Days, second.Days)
}

func TestBuildMonthAppliesOverride(t *testing.T) {
	p := testProperty()
	overrides := map[string]*models.DateOverride{
		"2025-06-15": {
			PropertyID: p.ID,
			Date:       date(2025, time.June, 15),
			Available:  false,
		},
	}

	m := BuildMonth(p, nil, overrides, 2025, 6)

	rec, _ := m.Days.Day(15)
	assert.False(t, rec.Available)
	assert.Equal(t, types.PRICE_SOURCE_OVERRIDE, rec.PriceSource)
	rec, _ = m.Days.Day(16)
	assert.True(t, rec.Available)
}

func TestMergePreservingClaims(t *testing.T) {
	p := testProperty()
	fresh := BuildMonth(p, nil, nil, 2025, 6).Days

	bookingID := uint(42)
	existing := models.DayMap{}
	claimed, _ := fresh.Day(10)
	claimed.Available = false
	claimed.BookingID = &bookingID
	existing.SetDay(10, claimed)

	// Blocked without a claim: regeneration is allowed to re-open it.
	blocked, _ := fresh.Day(11)
	blocked.Available = false
	existing.SetDay(11, blocked)

	merged := MergePreservingClaims(fresh, existing)

	rec, _ := merged.Day(10)
	assert.False(t, rec.Available)
	assert.Equal(t, &bookingID, rec.BookingID)
	rec, _ = merged.Day(11)
	assert.True(t, rec.Available)
	assert.Nil(t, rec.BookingID)
}

func TestMonthsCoveringChronological(t *testing.T) {
	nights := utils.EachNight(date(2025, time.December, 30), date(2026, time.January, 3))

	months := utils.MonthsCovering(nights)

	assert.Equal(t, []utils.YearMonth{
		{Year: 2025, Month: 12},
		{Year: 2026, Month: 1},
	}, months)
}
