package common

import (
	"math"
	"strconv"
	"time"
	"vrb/src/models"
	"vrb/src/types"
)

// PickSeasonalRule resolves overlapping rules for one date: the most
// recently created enabled rule covering the date wins, higher ID
// breaking creation-time ties.
func PickSeasonalRule(rules []models.SeasonalRule, date time.Time) *models.SeasonalRule {
	var picked *models.SeasonalRule
	for i := range rules {
		r := &rules[i]
		if !r.Covers(date) {
			continue
		}
		if picked == nil ||
			r.CreatedAt.After(picked.CreatedAt) ||
			(r.CreatedAt.Equal(picked.CreatedAt) && r.ID > picked.ID) {
			picked = r
		}
	}
	return picked
}

func applyMultiplier(cents int64, multiplier float64) int64 {
	return int64(math.Round(float64(cents) * multiplier))
}

func isWeekendDay(p *models.Property, date time.Time) bool {
	for _, wd := range p.WeekendDays {
		if time.Weekday(wd) == date.Weekday() {
			return true
		}
	}
	return false
}

// ResolveDay prices a single night from the property's base
// configuration, its seasonal rules and an optional override for that
// date. Pure: same inputs always give the same record, which is what
// makes regeneration idempotent.
//
// Precedence per night: base price, then weekend multiplier, then the
// winning seasonal rule, then the date override which beats everything
// and may independently block the date.
func ResolveDay(p *models.Property, rules []models.SeasonalRule, override *models.DateOverride, date time.Time) models.DayRecord {
	price := p.BasePriceCents
	source := types.PRICE_SOURCE_BASE
	minStay := p.MinimumStay
	if minStay < 1 {
		minStay = 1
	}
	available := true
	flatRate := false

	if p.WeekendMultiplier > 0 && p.WeekendMultiplier != 1 && isWeekendDay(p, date) {
		price = applyMultiplier(price, p.WeekendMultiplier)
		source = types.PRICE_SOURCE_WEEKEND
	}

	if rule := PickSeasonalRule(rules, date); rule != nil {
		price = applyMultiplier(price, rule.Multiplier)
		source = types.PRICE_SOURCE_SEASONAL
		if rule.MinimumStay > minStay {
			minStay = rule.MinimumStay
		}
	}

	if override != nil {
		source = types.PRICE_SOURCE_OVERRIDE
		if override.PriceCents != nil {
			price = *override.PriceCents
		}
		available = override.Available
		if override.MinimumStay > 0 {
			minStay = override.MinimumStay
		}
		flatRate = override.FlatRate
	}

	rec := models.DayRecord{
		PriceCents:        price,
		PricesByOccupancy: map[string]int64{},
		Available:         available,
		MinimumStay:       minStay,
		PriceSource:       source,
	}
	for g := p.BaseOccupancy; g <= p.MaxGuests; g++ {
		nightly := price
		if !flatRate {
			nightly += int64(g-p.BaseOccupancy) * p.ExtraGuestFeeCents
		}
		rec.PricesByOccupancy[strconv.Itoa(g)] = nightly
	}
	return rec
}

// NightlyRate picks the rate for a guest count out of a day record.
// Guest counts at or under base occupancy pay the plain nightly price.
func NightlyRate(rec models.DayRecord, guests int) int64 {
	if rate, ok := rec.PricesByOccupancy[strconv.Itoa(guests)]; ok {
		return rate
	}
	return rec.PriceCents
}
