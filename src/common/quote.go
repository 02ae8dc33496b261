package common

import (
	"math"
	"sort"
	"vrb/src/types"
)

// PickDiscountTier returns the highest tier whose threshold the stay
// meets, or nil when none qualifies.
func PickDiscountTier(tiers types.DiscountTiers, nights int) *types.DiscountTier {
	var picked *types.DiscountTier
	for i := range tiers {
		t := &tiers[i]
		if t.Nights > nights {
			continue
		}
		if picked == nil || t.Nights > picked.Nights {
			picked = t
		}
	}
	return picked
}

// ComputeQuote turns resolved nightly rates into the stay total. All
// arithmetic is in integer cents; the discount is the only place a
// rounding happens and it happens once, on the subtotal.
func ComputeQuote(dailyRates map[string]int64, cleaningFeeCents int64, tiers types.DiscountTiers, currency string, guests int) types.QuoteBreakdown {
	nights := len(dailyRates)
	var subtotal int64
	for _, rate := range dailyRates {
		subtotal += rate
	}

	var discount int64
	if tier := PickDiscountTier(tiers, nights); tier != nil {
		discount = int64(math.Round(float64(subtotal) * tier.Percent / 100))
	}

	var average int64
	if nights > 0 {
		average = int64(math.Round(float64(subtotal) / float64(nights)))
	}

	return types.QuoteBreakdown{
		SubtotalCents:       subtotal,
		DiscountCents:       discount,
		CleaningFeeCents:    cleaningFeeCents,
		TotalCents:          subtotal - discount + cleaningFeeCents,
		AverageNightlyCents: average,
		Nights:              nights,
		Guests:              guests,
		Currency:            currency,
		DailyRates:          dailyRates,
	}
}

// SortedRateDates returns the quote's dates in calendar order, handy
// for rendering and for deterministic test output.
func SortedRateDates(dailyRates map[string]int64) []string {
	dates := make([]string, 0, len(dailyRates))
	for d := range dailyRates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
