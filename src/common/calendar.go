package common

import (
	"fmt"
	"log"
	"time"
	"vrb/src/db"
	"vrb/src/lib"
	"vrb/src/models"
	"vrb/src/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuildMonth produces a fully populated calendar month from the pricing
// inputs. Every calendar day gets a record; range queries treat a
// missing day as a hard error, so none may be skipped here.
func BuildMonth(p *models.Property, rules []models.SeasonalRule, overrides map[string]*models.DateOverride, year, month int) *models.PriceCalendarMonth {
	m := &models.PriceCalendarMonth{
		PropertyID: p.ID,
		Year:       year,
		Month:      month,
		Days:       models.DayMap{},
	}
	numDays := m.DaysInMonth()
	for d := 1; d <= numDays; d++ {
		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
		m.Days.SetDay(d, ResolveDay(p, rules, overrides[utils.FormatDate(date)], date))
	}
	return m
}

// MergePreservingClaims copies live hold claims from the stored month
// onto freshly generated days. Regeneration refreshes prices but must
// never re-open a date a booking is holding.
func MergePreservingClaims(fresh, existing models.DayMap) models.DayMap {
	for key, rec := range fresh {
		old, ok := existing[key]
		if !ok || old.BookingID == nil {
			continue
		}
		rec.Available = false
		rec.BookingID = old.BookingID
		fresh[key] = rec
	}
	return fresh
}

// GenerateCalendars builds or refreshes the price calendar for the
// given number of months starting at the month of `from`. Rerunning
// with the same inputs is a no-op apart from timestamps.
func GenerateCalendars(propertyID uint, months int, from time.Time) (int, error) {
	generated := 0
	gdb := db.GetDb()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.
			Model(&models.Property{}).
			Where(&models.Property{ID: propertyID}).
			First(&property).
			Error; err != nil {
			return err
		}
		var rules []models.SeasonalRule
		if err := tx.
			Model(&models.SeasonalRule{}).
			Where(&models.SeasonalRule{PropertyID: propertyID, Enabled: true}).
			Find(&rules).
			Error; err != nil {
			return err
		}
		var overrideRows []models.DateOverride
		if err := tx.
			Model(&models.DateOverride{}).
			Where(&models.DateOverride{PropertyID: propertyID}).
			Find(&overrideRows).
			Error; err != nil {
			return err
		}
		overrides := map[string]*models.DateOverride{}
		for i := range overrideRows {
			overrides[utils.FormatDate(overrideRows[i].Date)] = &overrideRows[i]
		}

		for _, ym := range utils.MonthsAhead(utils.DateOnly(from), months) {
			year, month := ym.Year, ym.Month
			fresh := BuildMonth(&property, rules, overrides, year, month)

			// Lock before reading hold state so a concurrent claim
			// can't slip between the merge and the write.
			var existing models.PriceCalendarMonth
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(&models.PriceCalendarMonth{PropertyID: propertyID, Year: year, Month: month}).
				First(&existing).
				Error
			if err == nil {
				fresh.Days = MergePreservingClaims(fresh.Days, existing.Days)
				if err := tx.
					Model(&models.PriceCalendarMonth{}).
					Where(&models.PriceCalendarMonth{ID: existing.ID}).
					Update("days", fresh.Days).
					Error; err != nil {
					return err
				}
			} else if err == gorm.ErrRecordNotFound {
				if err := tx.Create(fresh).Error; err != nil {
					return err
				}
			} else {
				return err
			}
			generated++
		}
		return nil
	})
	if err != nil {
		log.Printf("Error generating calendar for property %d: %s\n", propertyID, err.Error())
		return 0, fmt.Errorf("calendar generation failed: %w", err)
	}
	lib.BumpCalendarVersion(propertyID)
	return generated, nil
}
