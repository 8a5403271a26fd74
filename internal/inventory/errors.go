package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrUnaccompaniedMinor = errors.New("children cannot travel without an adult")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatUnavailable    = errors.New("seat is not available")
	ErrInvalidTiming      = errors.New("invalid departure timing")
	ErrNoSeatsSelected    = errors.New("no seats selected")
)

// GenderMismatchError names the reserved seat that was given to a passenger
// of another gender.
type GenderMismatchError struct {
	SeatNumber  string
	ReservedFor string
	Gender      string
}

func (e *GenderMismatchError) Error() string {
	return fmt.Sprintf("seat %s is reserved for %s passengers", e.SeatNumber, e.ReservedFor)
}

// PassengerCountMismatchError reports disagreement between what was declared
// at seat selection and what was entered.
type PassengerCountMismatchError struct {
	ExpectedAdults   int
	ExpectedChildren int
	ActualAdults     int
	ActualChildren   int
}

func (e *PassengerCountMismatchError) Error() string {
	return fmt.Sprintf("passenger count mismatch: expected %d adults and %d children, got %d adults and %d children",
		e.ExpectedAdults, e.ExpectedChildren, e.ActualAdults, e.ActualChildren)
}
