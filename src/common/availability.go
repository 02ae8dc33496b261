package common

import (
	"strconv"
	"time"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StayEvaluation is the outcome of checking one date range. OK=false
// with a Reason is a business outcome, not an error; only missing price
// data is reported as an error.
type StayEvaluation struct {
	OK                  bool
	Reason              string
	UnavailableDates    []string
	MinimumStayRequired int
	DailyRates          map[string]int64
}

// AvailabilityChecker decides whether a date range can be booked. The
// minimum-stay flag is fixed at construction so both code paths stay
// deterministic under test.
type AvailabilityChecker struct {
	EnforceMinimumStay bool
}

func NewAvailabilityChecker(enforceMinimumStay bool) *AvailabilityChecker {
	return &AvailabilityChecker{EnforceMinimumStay: enforceMinimumStay}
}

// EvaluateStay walks every night of the stay over already-loaded day
// records. Callers guarantee checkIn < checkOut and future dates; this
// is the pure core shared by the read path and the claim transaction.
//
// Minimum stay is governed by the check-in day alone. Days later in the
// range may carry stricter values; those only matter to stays checking
// in on them.
func (c *AvailabilityChecker) EvaluateStay(days map[string]models.DayRecord, checkIn, checkOut time.Time, guests int) (*StayEvaluation, error) {
	nights := utils.EachNight(checkIn, checkOut)
	missing := []string{}
	unavailable := []string{}
	rates := map[string]int64{}
	var firstNight *models.DayRecord

	for i, night := range nights {
		key := utils.FormatDate(night)
		rec, ok := days[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if i == 0 {
			first := rec
			firstNight = &first
		}
		if !rec.Available {
			unavailable = append(unavailable, key)
			continue
		}
		rates[key] = NightlyRate(rec, guests)
	}

	if len(missing) > 0 {
		return nil, &MissingPriceDataError{Dates: missing}
	}
	if len(unavailable) > 0 {
		return &StayEvaluation{
			OK:               false,
			Reason:           types.REASON_UNAVAILABLE_DATES,
			UnavailableDates: unavailable,
		}, nil
	}
	if c.EnforceMinimumStay && firstNight != nil && firstNight.MinimumStay > len(nights) {
		return &StayEvaluation{
			OK:                  false,
			Reason:              types.REASON_MINIMUM_STAY,
			MinimumStayRequired: firstNight.MinimumStay,
		}, nil
	}
	return &StayEvaluation{OK: true, DailyRates: rates}, nil
}

// LoadStayDays reads the calendar months covering the stay and flattens
// them into date-keyed records. With forUpdate set, the month rows are
// locked for the rest of the transaction; claim paths rely on this.
func LoadStayDays(tx *gorm.DB, propertyID uint, checkIn, checkOut time.Time, forUpdate bool) (map[string]models.DayRecord, []models.PriceCalendarMonth, error) {
	nights := utils.EachNight(checkIn, checkOut)
	days := map[string]models.DayRecord{}
	months := []models.PriceCalendarMonth{}
	for _, ym := range utils.MonthsCovering(nights) {
		q := tx.Model(&models.PriceCalendarMonth{})
		if forUpdate {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var m models.PriceCalendarMonth
		err := q.
			Where(&models.PriceCalendarMonth{PropertyID: propertyID, Year: ym.Year, Month: ym.Month}).
			First(&m).
			Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		months = append(months, m)
		for dayKey, rec := range m.Days {
			d, err := strconv.Atoi(dayKey)
			if err != nil {
				continue
			}
			date := time.Date(ym.Year, time.Month(ym.Month), d, 0, 0, 0, 0, time.UTC)
			days[utils.FormatDate(date)] = rec
		}
	}
	return days, months, nil
}

// Check runs the availability evaluation against the store. Used on the
// guest read path; CreateHold re-runs the same evaluation inside its
// locking transaction.
func (c *AvailabilityChecker) Check(tx *gorm.DB, propertyID uint, checkIn, checkOut time.Time, guests int) (*StayEvaluation, error) {
	days, _, err := LoadStayDays(tx, propertyID, checkIn, checkOut, false)
	if err != nil {
		return nil, err
	}
	eval, err := c.EvaluateStay(days, checkIn, checkOut, guests)
	if perr := IsMissingPriceDataError(err); perr != nil {
		perr.PropertyID = propertyID
		return nil, perr
	}
	return eval, err
}
