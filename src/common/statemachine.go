package common

import (
	"vrb/src/types"
)

// Single transition table for the booking lifecycle. Cancellation is
// one-way: a canceled booking is never reopened, a new one is created.
var bookingTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING:        {types.BOOKING_ON_HOLD, types.BOOKING_CONFIRMED, types.BOOKING_CANCELED, types.BOOKING_PAYMENT_FAILED},
	types.BOOKING_ON_HOLD:        {types.BOOKING_CONFIRMED, types.BOOKING_CANCELED, types.BOOKING_PAYMENT_FAILED},
	types.BOOKING_CONFIRMED:      {types.BOOKING_COMPLETED, types.BOOKING_CANCELED},
	types.BOOKING_PAYMENT_FAILED: {types.BOOKING_CANCELED},
	types.BOOKING_CANCELED:       {},
	types.BOOKING_COMPLETED:      {},
}

func CanTransition(from, to types.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HoldsDates reports whether a booking in this status still owns its
// calendar claims.
func HoldsDates(status types.BookingStatus) bool {
	switch status {
	case types.BOOKING_PENDING, types.BOOKING_ON_HOLD, types.BOOKING_CONFIRMED:
		return true
	}
	return false
}
