package models

import (
	"time"
	"vrb/src/types"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	Reference  uuid.UUID           `gorm:"type:uuid;uniqueIndex" json:"reference"`
	PropertyID uint                `gorm:"index" json:"property_id,omitempty"`
	CheckIn    time.Time           `json:"check_in"`
	CheckOut   time.Time           `json:"check_out"`
	Guests     int                 `json:"guests,omitempty"`
	GuestName  string              `json:"guest_name,omitempty"`
	GuestEmail string              `json:"guest_email,omitempty"`
	Status     types.BookingStatus `gorm:"default:'pending';index" json:"status,omitempty"`

	HoldExpiresAt   *time.Time  `gorm:"index" json:"hold_expires_at,omitempty"`
	PricingSnapshot types.JSONB `gorm:"type:jsonb" json:"pricing_snapshot,omitempty"`
	TotalCents      int64       `json:"total_cents,omitempty"`
	Currency        string      `json:"currency,omitempty"`
	PaymentRef      *string     `json:"payment_ref,omitempty"`
	TenantID        *uuid.UUID  `gorm:"type:uuid" json:"-"`

	Property Property `json:"property,omitempty"`

	types.Timestamps
}

func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
