package models

import (
	"vrb/src/types"

	"github.com/google/uuid"
)

type Property struct {
	ID          uint                 `gorm:"primarykey" json:"id"`
	Slug        string               `gorm:"uniqueIndex" json:"slug,omitempty"`
	Name        string               `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Location    string               `json:"location,omitempty"`
	Status      types.PropertyStatus `gorm:"default:'draft'" json:"status,omitempty"`
	Currency    string               `gorm:"default:'usd'" json:"currency,omitempty"`

	BasePriceCents     int64          `json:"base_price_cents,omitempty"`
	BaseOccupancy      int            `gorm:"default:2" json:"base_occupancy,omitempty"`
	MaxGuests          int            `gorm:"default:2" json:"max_guests,omitempty"`
	ExtraGuestFeeCents int64          `json:"extra_guest_fee_cents,omitempty"`
	CleaningFeeCents   int64          `json:"cleaning_fee_cents,omitempty"`
	MinimumStay        int            `gorm:"default:1" json:"minimum_stay,omitempty"`
	WeekendDays        types.Weekdays `gorm:"type:jsonb" json:"weekend_days,omitempty"`
	WeekendMultiplier  float64        `gorm:"default:1" json:"weekend_multiplier,omitempty"`

	DiscountTiers types.DiscountTiers `gorm:"type:jsonb" json:"discount_tiers,omitempty"`

	HostID   uint       `json:"host_id,omitempty"`
	TenantID *uuid.UUID `gorm:"type:uuid" json:"-"`

	Host           Host                 `gorm:"foreignKey:host_id" json:"-"`
	SeasonalRules  []SeasonalRule       `json:"seasonal_rules,omitempty"`
	DateOverrides  []DateOverride       `json:"date_overrides,omitempty"`
	CalendarMonths []PriceCalendarMonth `json:"-"`
	Bookings       []Booking            `json:"bookings,omitempty"`

	types.Timestamps
}
