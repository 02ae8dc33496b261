package common

import (
	"testing"
	"vrb/src/types"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(types.BOOKING_ON_HOLD, types.BOOKING_CONFIRMED))
	assert.True(t, CanTransition(types.BOOKING_ON_HOLD, types.BOOKING_CANCELED))
	assert.True(t, CanTransition(types.BOOKING_ON_HOLD, types.BOOKING_PAYMENT_FAILED))
	assert.True(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_CONFIRMED))
	assert.True(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED))
	assert.True(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_CANCELED))

	assert.False(t, CanTransition(types.BOOKING_CANCELED, types.BOOKING_CONFIRMED))
	assert.False(t, CanTransition(types.BOOKING_CANCELED, types.BOOKING_ON_HOLD))
	assert.False(t, CanTransition(types.BOOKING_COMPLETED, types.BOOKING_CANCELED))
	assert.False(t, CanTransition(types.BOOKING_CONFIRMED, types.BOOKING_ON_HOLD))
	assert.False(t, CanTransition(types.BOOKING_PAYMENT_FAILED, types.BOOKING_CONFIRMED))
}

func TestHoldsDates(t *testing.T) {
	assert.True(t, HoldsDates(types.BOOKING_PENDING))
	assert.True(t, HoldsDates(types.BOOKING_ON_HOLD))
	assert.True(t, HoldsDates(types.BOOKING_CONFIRMED))

	assert.False(t, HoldsDates(types.BOOKING_CANCELED))
	assert.False(t, HoldsDates(types.BOOKING_COMPLETED))
	assert.False(t, HoldsDates(types.BOOKING_PAYMENT_FAILED))
}
