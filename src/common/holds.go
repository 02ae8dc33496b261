package common

import (
	"encoding/json"
	"log"
	"strings"
	"time"
	"vrb/src/config"
	"vrb/src/db"
	"vrb/src/lib"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HoldInput struct {
	PropertyID  uint
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	GuestName   string
	GuestEmail  string
	HoldMinutes int
	PayInFull   bool
}

// Postgres aborts one of two transactions fighting over the same rows
// with a serialization or deadlock failure. Those are worth retrying
// from the top; everything else is not.
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "deadlock detected")
}

// quoteSnapshot freezes the quote as the booking's jsonb pricing
// column. A booking without its quoted price is worse than no booking,
// so failures here abort the claim transaction.
func quoteSnapshot(q types.QuoteBreakdown) (types.JSONB, error) {
	b, err := json.Marshal(&q)
	if err != nil {
		return nil, err
	}
	var snapshot types.JSONB
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// CreateHold places a time-boxed claim on a date range. The
// availability re-check, the per-night claim flips and the booking row
// all commit in one transaction over FOR UPDATE month rows, so two
// guests racing on overlapping dates cannot both win.
func CreateHold(checker *AvailabilityChecker, in HoldInput, now time.Time) (*models.Booking, error) {
	if in.HoldMinutes <= 0 {
		in.HoldMinutes = config.DEFAULT_HOLD_MINUTES
	}
	gdb := db.GetDb()
	for attempt := 0; attempt < config.CLAIM_RETRY_ATTEMPTS; attempt++ {
		var booking *models.Booking
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var property models.Property
			if err := tx.
				Model(&models.Property{}).
				Where(&models.Property{ID: in.PropertyID}).
				First(&property).
				Error; err != nil {
				return err
			}
			if property.Status != types.PROPERTY_ACTIVE {
				return ErrPropertyNotBookable
			}
			if in.Guests > property.MaxGuests {
				return ErrCapacityExceeded
			}

			days, months, err := LoadStayDays(tx, in.PropertyID, in.CheckIn, in.CheckOut, true)
			if err != nil {
				return err
			}
			eval, err := checker.EvaluateStay(days, in.CheckIn, in.CheckOut, in.Guests)
			if err != nil {
				if perr := IsMissingPriceDataError(err); perr != nil {
					perr.PropertyID = property.ID
				}
				return err
			}
			if !eval.OK {
				if eval.Reason == types.REASON_MINIMUM_STAY {
					return &MinimumStayError{
						Required: eval.MinimumStayRequired,
						Nights:   utils.NightsBetween(in.CheckIn, in.CheckOut),
					}
				}
				return &UnavailableError{Dates: eval.UnavailableDates}
			}

			quote := ComputeQuote(eval.DailyRates, property.CleaningFeeCents, property.DiscountTiers, property.Currency, in.Guests)
			snapshot, err := quoteSnapshot(quote)
			if err != nil {
				return err
			}
			expiresAt := now.Add(time.Duration(in.HoldMinutes) * time.Minute)
			status := types.BOOKING_ON_HOLD
			if in.PayInFull {
				status = types.BOOKING_PENDING
			}
			b := models.Booking{
				Reference:       uuid.New(),
				PropertyID:      property.ID,
				CheckIn:         utils.DateOnly(in.CheckIn),
				CheckOut:        utils.DateOnly(in.CheckOut),
				Guests:          in.Guests,
				GuestName:       in.GuestName,
				GuestEmail:      in.GuestEmail,
				Status:          status,
				HoldExpiresAt:   &expiresAt,
				PricingSnapshot: snapshot,
				TotalCents:      quote.TotalCents,
				Currency:        property.Currency,
				TenantID:        property.TenantID,
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
			if err := claimDates(tx, months, &b); err != nil {
				return err
			}
			booking = &b
			return nil
		})
		if err == nil {
			lib.BumpCalendarVersion(in.PropertyID)
			return booking, nil
		}
		if isRetryableTxError(err) {
			log.Printf("Claim conflict on property %d (attempt %d): %s\n", in.PropertyID, attempt+1, err.Error())
			continue
		}
		return nil, err
	}
	return nil, ErrConcurrencyConflict
}

func monthIndex(months []models.PriceCalendarMonth) map[utils.YearMonth]*models.PriceCalendarMonth {
	byMonth := map[utils.YearMonth]*models.PriceCalendarMonth{}
	for i := range months {
		m := &months[i]
		byMonth[utils.YearMonth{Year: m.Year, Month: m.Month}] = m
	}
	return byMonth
}

// claimNights flips every night of the stay to unavailable with a
// back-reference to the owning booking, returning the months it
// changed. Pure over the loaded month documents.
func claimNights(byMonth map[utils.YearMonth]*models.PriceCalendarMonth, b *models.Booking) (map[uint]*models.PriceCalendarMonth, error) {
	touched := map[uint]*models.PriceCalendarMonth{}
	for _, night := range utils.EachNight(b.CheckIn, b.CheckOut) {
		m := byMonth[utils.YearMonth{Year: night.Year(), Month: int(night.Month())}]
		if m == nil {
			return nil, &MissingPriceDataError{PropertyID: b.PropertyID, Dates: []string{utils.FormatDate(night)}}
		}
		rec, ok := m.Days.Day(night.Day())
		if !ok {
			return nil, &MissingPriceDataError{PropertyID: b.PropertyID, Dates: []string{utils.FormatDate(night)}}
		}
		rec.Available = false
		rec.BookingID = &b.ID
		m.Days.SetDay(night.Day(), rec)
		touched[m.ID] = m
	}
	return touched, nil
}

// releaseNights restores availability on the nights this booking
// claimed — and only those. A night that was already released and
// re-claimed by a newer booking carries that booking's id and is left
// alone, which is what makes release retry-safe.
func releaseNights(byMonth map[utils.YearMonth]*models.PriceCalendarMonth, b *models.Booking) map[uint]*models.PriceCalendarMonth {
	touched := map[uint]*models.PriceCalendarMonth{}
	for _, night := range utils.EachNight(b.CheckIn, b.CheckOut) {
		m := byMonth[utils.YearMonth{Year: night.Year(), Month: int(night.Month())}]
		if m == nil {
			continue
		}
		rec, ok := m.Days.Day(night.Day())
		if !ok || rec.BookingID == nil || *rec.BookingID != b.ID {
			continue
		}
		rec.Available = true
		rec.BookingID = nil
		m.Days.SetDay(night.Day(), rec)
		touched[m.ID] = m
	}
	return touched
}

func persistTouched(tx *gorm.DB, touched map[uint]*models.PriceCalendarMonth) error {
	for id, m := range touched {
		if err := tx.
			Model(&models.PriceCalendarMonth{}).
			Where(&models.PriceCalendarMonth{ID: id}).
			Update("days", m.Days).
			Error; err != nil {
			return err
		}
	}
	return nil
}

// claimDates persists the claim flips. Months were already locked FOR
// UPDATE by the caller.
func claimDates(tx *gorm.DB, months []models.PriceCalendarMonth, b *models.Booking) error {
	touched, err := claimNights(monthIndex(months), b)
	if err != nil {
		return err
	}
	return persistTouched(tx, touched)
}

func releaseClaimedDates(tx *gorm.DB, b *models.Booking) error {
	_, months, err := LoadStayDays(tx, b.PropertyID, b.CheckIn, b.CheckOut, true)
	if err != nil {
		return err
	}
	return persistTouched(tx, releaseNights(monthIndex(months), b))
}

// ReleaseExpired cancels every hold past its expiry and frees its
// dates. Each booking is handled in its own transaction so one failure
// cannot abort the rest of the sweep, and re-running the sweep over a
// booking it already handled is a no-op.
func ReleaseExpired(now time.Time) types.SweepResponse {
	resp := types.SweepResponse{}
	gdb := db.GetDb()
	var expired []models.Booking
	err := gdb.
		Model(&models.Booking{}).
		Where(clause.IN{Column: "status", Values: []any{
			types.BOOKING_ON_HOLD,
			types.BOOKING_PENDING,
		}}).
		Where("hold_expires_at <= ?", now).
		Find(&expired).
		Error
	if err != nil {
		log.Printf("Error listing expired holds: %s\n", err.Error())
		return resp
	}
	for _, b := range expired {
		resp.Processed++
		if err := releaseOne(b.ID, now); err != nil {
			log.Printf("Error releasing hold for Booking [%d]: %s\n", b.ID, err.Error())
			resp.Errored++
			continue
		}
		lib.BumpCalendarVersion(b.PropertyID)
		resp.Released++
	}
	resp.Completed = CompleteFinishedStays(now)
	return resp
}

func releaseOne(id uint, now time.Time) error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: id}).
			First(&b).
			Error; err != nil {
			return err
		}
		// Someone got here first, or the hold was extended or paid
		// while the sweep was running.
		if b.Status != types.BOOKING_ON_HOLD && b.Status != types.BOOKING_PENDING {
			return nil
		}
		if b.HoldExpiresAt == nil || b.HoldExpiresAt.After(now) {
			return nil
		}
		if err := releaseClaimedDates(tx, &b); err != nil {
			return err
		}
		return tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: b.ID, Status: b.Status}).
			Update("status", types.BOOKING_CANCELED).
			Error
	})
}

// CompleteFinishedStays flips confirmed bookings whose checkout date
// has passed to completed. Their dates stay claimed; the stay happened.
func CompleteFinishedStays(now time.Time) int {
	gdb := db.GetDb()
	res := gdb.
		Model(&models.Booking{}).
		Where(&models.Booking{Status: types.BOOKING_CONFIRMED}).
		Where("check_out <= ?", now).
		Update("status", types.BOOKING_COMPLETED)
	if res.Error != nil {
		log.Printf("Error completing finished stays: %s\n", res.Error.Error())
		return 0
	}
	return int(res.RowsAffected)
}

// ApplyPaymentEvent consumes a processor outcome for a booking. Keyed
// by payment ref: a replayed ref returns the booking as-is with no
// further side effects.
func ApplyPaymentEvent(bookingID uint, paymentRef string, outcome types.PaymentOutcome, now time.Time) (*models.Booking, bool, error) {
	gdb := db.GetDb()
	replayed := false
	var booking models.Booking
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var seen models.PaymentEvent
		err := tx.
			Model(&models.PaymentEvent{}).
			Where(&models.PaymentEvent{PaymentRef: paymentRef}).
			First(&seen).
			Error
		if err == nil {
			replayed = true
			return tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: seen.BookingID}).
				First(&booking).
				Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			return err
		}
		// The unique index on payment_ref backstops two deliveries
		// racing past the lookup above.
		event := models.PaymentEvent{
			PaymentRef: paymentRef,
			BookingID:  bookingID,
			Outcome:    outcome,
			ReceivedAt: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		switch outcome {
		case types.PAYMENT_SUCCEEDED:
			if booking.Status == types.BOOKING_CONFIRMED {
				return nil
			}
			if !CanTransition(booking.Status, types.BOOKING_CONFIRMED) {
				return ErrExpiredHold
			}
			if err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: booking.ID, Status: booking.Status}).
				Updates(map[string]any{
					"status":          types.BOOKING_CONFIRMED,
					"payment_ref":     paymentRef,
					"hold_expires_at": nil,
				}).
				Error; err != nil {
				return err
			}
			booking.Status = types.BOOKING_CONFIRMED
			booking.PaymentRef = &paymentRef
			booking.HoldExpiresAt = nil
		case types.PAYMENT_FAILED:
			if !CanTransition(booking.Status, types.BOOKING_PAYMENT_FAILED) {
				return nil
			}
			if err := releaseClaimedDates(tx, &booking); err != nil {
				return err
			}
			if err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: booking.ID, Status: booking.Status}).
				Updates(map[string]any{
					"status":      types.BOOKING_PAYMENT_FAILED,
					"payment_ref": paymentRef,
				}).
				Error; err != nil {
				return err
			}
			booking.Status = types.BOOKING_PAYMENT_FAILED
			booking.PaymentRef = &paymentRef
		}
		return nil
	})
	if err != nil {
		return nil, replayed, err
	}
	if !replayed {
		lib.BumpCalendarVersion(booking.PropertyID)
	}
	return &booking, replayed, nil
}

// CancelBooking is the manual host action. Frees the booking's dates
// and closes it out; cancellation is terminal.
func CancelBooking(id uint) (*models.Booking, error) {
	gdb := db.GetDb()
	var booking models.Booking
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: id}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if !CanTransition(booking.Status, types.BOOKING_CANCELED) {
			return ErrExpiredHold
		}
		if HoldsDates(booking.Status) {
			if err := releaseClaimedDates(tx, &booking); err != nil {
				return err
			}
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID, Status: booking.Status}).
			Update("status", types.BOOKING_CANCELED).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CANCELED
		return nil
	})
	if err != nil {
		return nil, err
	}
	lib.BumpCalendarVersion(booking.PropertyID)
	return &booking, nil
}

// ExtendHold pushes a live hold's expiry forward without changing its
// state.
func ExtendHold(id uint, minutes int, now time.Time) (*models.Booking, error) {
	gdb := db.GetDb()
	var booking models.Booking
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: id}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if booking.Status != types.BOOKING_ON_HOLD && booking.Status != types.BOOKING_PENDING {
			return ErrExpiredHold
		}
		expiresAt := now.Add(time.Duration(minutes) * time.Minute)
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID, Status: booking.Status}).
			Update("hold_expires_at", expiresAt).
			Error; err != nil {
			return err
		}
		booking.HoldExpiresAt = &expiresAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
