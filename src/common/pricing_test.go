package common

import (
	"testing"
	"time"
	"vrb/src/models"
	"vrb/src/types"

	"github.com/stretchr/testify/assert"
)

func testProperty() *models.Property {
	return &models.Property{
		ID:                 1,
		Status:             types.PROPERTY_ACTIVE,
		Currency:           "usd",
		BasePriceCents:     10000,
		BaseOccupancy:      2,
		MaxGuests:          4,
		ExtraGuestFeeCents: 2500,
		CleaningFeeCents:   4000,
		MinimumStay:        1,
		WeekendDays:        types.Weekdays{5, 6}, // Fri, Sat
		WeekendMultiplier:  1.2,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDayBasePrice(t *testing.T) {
	p := testProperty()
	rec := ResolveDay(p, nil, nil, date(2025, time.June, 5)) // Thursday

	assert.Equal(t, int64(10000), rec.PriceCents)
	assert.Equal(t, types.PRICE_SOURCE_BASE, rec.PriceSource)
	assert.True(t, rec.Available)
	assert.Equal(t, 1, rec.MinimumStay)
}

func TestResolveDayWeekendMultiplier(t *testing.T) {
	p := testProperty()
	rec := ResolveDay(p, nil, nil, date(2025, time.June, 6)) // Friday

	assert.Equal(t, int64(12000), rec.PriceCents)
	assert.Equal(t, types.PRICE_SOURCE_WEEKEND, rec.PriceSource)
}

func TestResolveDayOccupancyPricing(t *testing.T) {
	p := testProperty()
	rec := ResolveDay(p, nil, nil, date(2025, time.June, 5))

	assert.Equal(t, int64(10000), rec.PricesByOccupancy["2"])
	assert.Equal(t, int64(12500), rec.PricesByOccupancy["3"])
	assert.Equal(t, int64(15000), rec.PricesByOccupancy["4"])
	_, beyondCapacity := rec.PricesByOccupancy["5"]
	assert.False(t, beyondCapacity)
}

func TestResolveDaySeasonalRule(t *testing.T) {
	p := testProperty()
	rules := []models.SeasonalRule{
		{
			ID:          1,
			PropertyID:  p.ID,
			StartDate:   date(2025, time.June, 1),
			EndDate:     date(2025, time.June, 30),
			Multiplier:  1.5,
			MinimumStay: 3,
			Enabled:     true,
		},
	}
	rec := ResolveDay(p, rules, nil, date(2025, time.June, 5))

	assert.Equal(t, int64(15000), rec.PriceCents)
	assert.Equal(t, types.PRICE_SOURCE_SEASONAL, rec.PriceSource)
	assert.Equal(t, 3, rec.MinimumStay)
}

func TestResolveDaySeasonalStacksOnWeekend(t *testing.T) {
	p := testProperty()
	rules := []models.SeasonalRule{
		{
			ID:         1,
			StartDate:  date(2025, time.June, 1),
			EndDate:    date(2025, time.June, 30),
			Multiplier: 1.5,
			Enabled:    true,
		},
	}
	// Friday: 10000 * 1.2 = 12000, then * 1.5 = 18000
	rec := ResolveDay(p, rules, nil, date(2025, time.June, 6))

	assert.Equal(t, int64(18000), rec.PriceCents)
	assert.Equal(t, types.PRICE_SOURCE_SEASONAL, rec.PriceSource)
}

func TestPickSeasonalRuleMostRecentWins(t *testing.T) {
	older := models.SeasonalRule{
		ID:         1,
		StartDate:  date(2025, time.June, 1),
		EndDate:    date(2025, time.June, 30),
		Multiplier: 1.5,
		Enabled:    true,
	}
	older.CreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := models.SeasonalRule{
		ID:         2,
		StartDate:  date(2025, time.June, 1),
		EndDate:    date(2025, time.June, 10),
		Multiplier: 2.0,
		Enabled:    true,
	}
	newer.CreatedAt = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	picked := PickSeasonalRule([]models.SeasonalRule{older, newer}, date(2025, time.June, 5))
	assert.Equal(t, uint(2), picked.ID)

	// Outside the newer rule's window only the older one covers.
	picked = PickSeasonalRule([]models.SeasonalRule{older, newer}, date(2025, time.June, 15))
	assert.Equal(t, uint(1), picked.ID)
}

func TestPickSeasonalRuleSkipsDisabled(t *testing.T) {
	disabled := models.SeasonalRule{
		ID:         1,
		StartDate:  date(2025, time.June, 1),
		EndDate:    date(2025, time.June, 30),
		Multiplier: 2.0,
		Enabled:    false,
	}
	assert.Nil(t, PickSeasonalRule([]models.SeasonalRule{disabled}, date(2025, time.June, 5)))
}

func TestResolveDayOverrideWins(t *testing.T) {
	p := testProperty()
	rules := []models.SeasonalRule{
		{
			ID:         1,
			StartDate:  date(2025, time.June, 1),
			EndDate:    date(2025, time.June, 30),
			Multiplier: 1.5,
			Enabled:    true,
		},
	}
	customPrice := int64(9900)
	override := &models.DateOverride{
		PropertyID:  p.ID,
		Date:        date(2025, time.June, 6),
		PriceCents:  &customPrice,
		Available:   true,
		MinimumStay: 2,
	}
	rec := ResolveDay(p, rules, override, date(2025, time.June, 6))

	assert.Equal(t, int64(9900), rec.PriceCents)
	assert.Equal(t, types.PRICE_SOURCE_OVERRIDE, rec.PriceSource)
	assert.Equal(t, 2, rec.MinimumStay)
}

func TestResolveDayOverrideBlocksDate(t *testing.T) {
	p := testProperty()
	override := &models.DateOverride{
		PropertyID: p.ID,
		Date:       date(2025, time.June, 5),
		Available:  false,
	}
	rec := ResolveDay(p, nil, override, date(2025, time.June, 5))

	assert.False(t, rec.Available)
	assert.Equal(t, types.PRICE_SOURCE_OVERRIDE, rec.PriceSource)
}

func TestResolveDayFlatRateOverride(t *testing.T) {
	p := testProperty()
	customPrice := int64(8000)
	override := &models.DateOverride{
		PropertyID: p.ID,
		Date:       date(2025, time.June, 5),
		PriceCents: &customPrice,
		Available:  true,
		FlatRate:   true,
	}
	rec := ResolveDay(p, nil, override, date(2025, time.June, 5))

	assert.Equal(t, int64(8000), rec.PricesByOccupancy["2"])
	assert.Equal(t, int64(8000), rec.PricesByOccupancy["4"])
}

func TestNightlyRate(t *testing.T) {
	rec := models.DayRecord{
		PriceCents:        10000,
		PricesByOccupancy: map[string]int64{"2": 10000, "3": 12500},
	}
	assert.Equal(t, int64(12500), NightlyRate(rec, 3))
	// Guest counts under base occupancy pay the plain nightly price.
	assert.Equal(t, int64(10000), NightlyRate(rec, 1))
}
