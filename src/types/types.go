package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// DiscountTier is a single length-of-stay tier: stays of at least
// Nights nights get Percent off the subtotal.
type DiscountTier struct {
	Nights  int     `json:"nights"`
	Percent float64 `json:"percent"`
}

type DiscountTiers []DiscountTier

func (a DiscountTiers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *DiscountTiers) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// Weekdays holds time.Weekday values as ints (0=Sunday).
type Weekdays []int

func (a Weekdays) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *Weekdays) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type PropertyStatus string

const (
	PROPERTY_DRAFT    PropertyStatus = "draft"
	PROPERTY_ACTIVE   PropertyStatus = "active"
	PROPERTY_ARCHIVED PropertyStatus = "archived"
)

type BookingStatus string

const (
	BOOKING_PENDING        BookingStatus = "pending"
	BOOKING_ON_HOLD        BookingStatus = "on_hold"
	BOOKING_CONFIRMED      BookingStatus = "confirmed"
	BOOKING_CANCELED       BookingStatus = "canceled"
	BOOKING_COMPLETED      BookingStatus = "completed"
	BOOKING_PAYMENT_FAILED BookingStatus = "payment_failed"
)

type PriceSource string

const (
	PRICE_SOURCE_BASE     PriceSource = "base"
	PRICE_SOURCE_WEEKEND  PriceSource = "weekend"
	PRICE_SOURCE_SEASONAL PriceSource = "seasonal"
	PRICE_SOURCE_OVERRIDE PriceSource = "override"
)

type PaymentOutcome string

const (
	PAYMENT_SUCCEEDED PaymentOutcome = "succeeded"
	PAYMENT_FAILED    PaymentOutcome = "failed"
)

const (
	REASON_UNAVAILABLE_DATES = "unavailable_dates"
	REASON_MINIMUM_STAY      = "minimum_stay"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type AvailabilityQueryParams struct {
	CheckIn  string `form:"check_in" binding:"required,staydate"`
	CheckOut string `form:"check_out" binding:"required,staydate,afterdate=CheckIn"`
	Guests   int    `form:"guests" binding:"required,min=1"`
}

type CreateBookingRequestBody struct {
	PropertyID  uint   `json:"property" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required,staydate"`
	CheckOut    string `json:"check_out" binding:"required,staydate,afterdate=CheckIn"`
	Guests      int    `json:"guests" binding:"required,min=1"`
	GuestName   string `json:"guest_name" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"required,email"`
	HoldMinutes int    `json:"hold_minutes,omitempty" binding:"omitempty,min=5,max=1440"`
	PayInFull   bool   `json:"pay_in_full,omitempty"`
}

type PaymentEventRequestBody struct {
	BookingID  uint   `json:"booking_id" binding:"required"`
	PaymentRef string `json:"payment_ref" binding:"required"`
	Outcome    string `json:"outcome" binding:"required,oneof=succeeded failed"`
}

type CreatePropertyRequestBody struct {
	Name               string        `json:"name" binding:"required"`
	Description        string        `json:"description,omitempty"`
	Location           string        `json:"location,omitempty" binding:"required"`
	Currency           string        `json:"currency" binding:"required,len=3"`
	BasePriceCents     int64         `json:"base_price_cents" binding:"required,min=1"`
	BaseOccupancy      int           `json:"base_occupancy" binding:"required,min=1"`
	MaxGuests          int           `json:"max_guests" binding:"required,gtefield=BaseOccupancy"`
	ExtraGuestFeeCents int64         `json:"extra_guest_fee_cents,omitempty" binding:"omitempty,min=0"`
	CleaningFeeCents   int64         `json:"cleaning_fee_cents,omitempty" binding:"omitempty,min=0"`
	MinimumStay        int           `json:"minimum_stay,omitempty" binding:"omitempty,min=1"`
	WeekendDays        Weekdays      `json:"weekend_days,omitempty" binding:"omitempty,dive,min=0,max=6"`
	WeekendMultiplier  float64       `json:"weekend_multiplier,omitempty" binding:"omitempty,min=0.1"`
	DiscountTiers      DiscountTiers `json:"discount_tiers,omitempty"`
	Publish            bool          `json:"publish,omitempty"`
}

type UpdatePropertyRequestBody struct {
	Name               *string        `json:"name,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Location           *string        `json:"location,omitempty"`
	BasePriceCents     *int64         `json:"base_price_cents,omitempty" binding:"omitempty,min=1"`
	ExtraGuestFeeCents *int64         `json:"extra_guest_fee_cents,omitempty" binding:"omitempty,min=0"`
	CleaningFeeCents   *int64         `json:"cleaning_fee_cents,omitempty" binding:"omitempty,min=0"`
	MinimumStay        *int           `json:"minimum_stay,omitempty" binding:"omitempty,min=1"`
	WeekendDays        *Weekdays      `json:"weekend_days,omitempty" binding:"omitempty,dive,min=0,max=6"`
	WeekendMultiplier  *float64       `json:"weekend_multiplier,omitempty" binding:"omitempty,min=0.1"`
	DiscountTiers      *DiscountTiers `json:"discount_tiers,omitempty"`
	Status             *string        `json:"status,omitempty" binding:"omitempty,oneof=draft active archived"`
}

type CreateSeasonalRuleRequestBody struct {
	Name        string  `json:"name" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required,afterdate=StartDate"`
	Multiplier  float64 `json:"multiplier" binding:"required,min=0.1"`
	MinimumStay int     `json:"minimum_stay,omitempty" binding:"omitempty,min=1"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

type CreateDateOverrideRequestBody struct {
	Date        string `json:"date" binding:"required"`
	PriceCents  *int64 `json:"price_cents,omitempty" binding:"omitempty,min=0"`
	Available   *bool  `json:"available,omitempty"`
	MinimumStay int    `json:"minimum_stay,omitempty" binding:"omitempty,min=1"`
	FlatRate    bool   `json:"flat_rate,omitempty"`
}

type GenerateCalendarRequestBody struct {
	Months int `json:"months,omitempty" binding:"omitempty,min=1,max=36"`
}

// QuoteBreakdown is the deterministic price of one stay. Captured on the
// booking at hold time and never recomputed afterwards.
type QuoteBreakdown struct {
	SubtotalCents       int64            `json:"subtotal_cents"`
	DiscountCents       int64            `json:"discount_cents"`
	CleaningFeeCents    int64            `json:"cleaning_fee_cents"`
	TotalCents          int64            `json:"total_cents"`
	AverageNightlyCents int64            `json:"average_nightly_cents"`
	Nights              int              `json:"nights"`
	Guests              int              `json:"guests"`
	Currency            string           `json:"currency"`
	DailyRates          map[string]int64 `json:"daily_rates"`
}

type AvailabilityResponse struct {
	Available           bool            `json:"available"`
	Reason              string          `json:"reason,omitempty"`
	UnavailableDates    []string        `json:"unavailable_dates,omitempty"`
	MinimumStayRequired int             `json:"minimum_stay_required,omitempty"`
	Pricing             *QuoteBreakdown `json:"pricing,omitempty"`
}

type SweepResponse struct {
	Processed int `json:"processed"`
	Released  int `json:"released"`
	Errored   int `json:"errored"`
	Completed int `json:"completed"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
