package common

import (
	"testing"
	"time"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestPickDiscountTierHighestQualifying(t *testing.T) {
	tiers := types.DiscountTiers{
		{Nights: 7, Percent: 5},
		{Nights: 28, Percent: 15},
	}

	assert.Nil(t, PickDiscountTier(tiers, 3))
	assert.Equal(t, float64(5), PickDiscountTier(tiers, 7).Percent)
	assert.Equal(t, float64(5), PickDiscountTier(tiers, 10).Percent)
	assert.Equal(t, float64(15), PickDiscountTier(tiers, 30).Percent)
}

func TestComputeQuoteDiscountAndTotal(t *testing.T) {
	rates := map[string]int64{
		"2025-07-01": 10000,
		"2025-07-02": 10000,
		"2025-07-03": 10000,
		"2025-07-04": 10000,
		"2025-07-05": 10000,
		"2025-07-06": 10000,
		"2025-07-07": 10000,
	}
	tiers := types.DiscountTiers{{Nights: 7, Percent: 5}}

	q := ComputeQuote(rates, 4000, tiers, "usd", 2)

	assert.Equal(t, int64(70000), q.SubtotalCents)
	assert.Equal(t, int64(3500), q.DiscountCents)
	assert.Equal(t, int64(70500), q.TotalCents)
	assert.Equal(t, int64(10000), q.AverageNightlyCents)
	assert.Equal(t, 7, q.Nights)
}

func TestComputeQuoteRoundsDiscountOnce(t *testing.T) {
	rates := map[string]int64{
		"2025-07-01": 3333,
		"2025-07-02": 3333,
		"2025-07-03": 3333,
	}
	tiers := types.DiscountTiers{{Nights: 3, Percent: 10}}

	q := ComputeQuote(rates, 0, tiers, "usd", 2)

	// 9999 * 10% = 999.9, rounded once to 1000.
	assert.Equal(t, int64(9999), q.SubtotalCents)
	assert.Equal(t, int64(1000), q.DiscountCents)
	assert.Equal(t, int64(8999), q.TotalCents)
	assert.Equal(t, int64(3333), q.AverageNightlyCents)
}

// Full worked example: Thu Jun 5 through Sun Jun 8 2025, 4 guests, base
// 10000 with 2500 per extra guest over an occupancy of 2, Sat/Sun at
// 1.2x. Nightly rates come to 15000, 15000, 17000 for a 47000 subtotal.
func TestQuoteEndToEnd(t *testing.T) {
	p := testProperty()
	p.WeekendDays = types.Weekdays{6, 0}
	checkIn := date(2025, time.June, 5)
	checkOut := date(2025, time.June, 8)

	rates := map[string]int64{}
	for _, night := range utils.EachNight(checkIn, checkOut) {
		rec := ResolveDay(p, nil, nil, night)
		rates[utils.FormatDate(night)] = NightlyRate(rec, 4)
	}

	assert.Equal(t, int64(15000), rates["2025-06-05"])
	assert.Equal(t, int64(15000), rates["2025-06-06"])
	assert.Equal(t, int64(17000), rates["2025-06-07"])

	q := ComputeQuote(rates, p.CleaningFeeCents, p.DiscountTiers, p.Currency, 4)

	assert.Equal(t, int64(47000), q.SubtotalCents)
	assert.Equal(t, int64(0), q.DiscountCents)
	assert.Equal(t, int64(51000), q.TotalCents)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, []string{"2025-06-05", "2025-06-06", "2025-06-07"}, SortedRateDates(rates))
}
