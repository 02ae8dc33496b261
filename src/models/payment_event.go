package models

import (
	"time"
	"vrb/src/types"
)

// PaymentEvent is the replay ledger for the payment processor boundary.
// The unique index on PaymentRef is what makes event delivery idempotent:
// a replayed ref hits the existing row instead of re-running transitions.
type PaymentEvent struct {
	ID         uint                 `gorm:"primarykey" json:"id"`
	PaymentRef string               `gorm:"uniqueIndex" json:"payment_ref"`
	BookingID  uint                 `gorm:"index" json:"booking_id"`
	Outcome    types.PaymentOutcome `json:"outcome"`
	ReceivedAt time.Time            `json:"received_at"`

	Booking Booking `json:"-"`

	types.Timestamps
}
