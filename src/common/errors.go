package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConcurrencyConflict is returned once a claim transaction has
	// exhausted its retries. Callers should prompt a plain retry, not
	// report the dates as gone.
	ErrConcurrencyConflict = errors.New("calendar claim lost a concurrent race")

	// ErrExpiredHold is returned when an operation targets a hold that
	// the sweep already released.
	ErrExpiredHold = errors.New("hold has already been released")

	ErrPropertyNotBookable = errors.New("property is not open for booking")

	// ErrCapacityExceeded is returned when a booking request carries
	// more guests than the property sleeps.
	ErrCapacityExceeded = errors.New("party size exceeds property capacity")
)

// UnavailableError is an expected business outcome: one or more nights
// in the requested range are already taken or blocked.
type UnavailableError struct {
	Dates []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("dates not available: %s", strings.Join(e.Dates, ", "))
}

// MinimumStayError reports a stay shorter than the check-in day allows.
type MinimumStayError struct {
	Required int
	Nights   int
}

func (e *MinimumStayError) Error() string {
	return fmt.Sprintf("minimum stay is %d nights, requested %d", e.Required, e.Nights)
}

// MissingPriceDataError means the calendar has not been generated for a
// day the query needs. This is a hard failure, not "unavailable".
type MissingPriceDataError struct {
	PropertyID uint
	Dates      []string
}

func (e *MissingPriceDataError) Error() string {
	return fmt.Sprintf("no price data for property %d on: %s", e.PropertyID, strings.Join(e.Dates, ", "))
}

func IsUnavailableError(err error) *UnavailableError {
	var uerr *UnavailableError
	if errors.As(err, &uerr) {
		return uerr
	}
	return nil
}

func IsMinimumStayError(err error) *MinimumStayError {
	var merr *MinimumStayError
	if errors.As(err, &merr) {
		return merr
	}
	return nil
}

func IsMissingPriceDataError(err error) *MissingPriceDataError {
	var perr *MissingPriceDataError
	if errors.As(err, &perr) {
		return perr
	}
	return nil
}
