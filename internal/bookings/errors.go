package bookings

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotCancellable  = errors.New("booking is not confirmed")
	ErrNotRateable     = errors.New("only completed journeys can be rated")
	ErrAlreadyRated    = errors.New("booking has already been rated")
	ErrNotPrintable    = errors.New("cancelled bookings cannot be printed")
	ErrDuplicateID     = errors.New("booking id already exists")
)

// ReasonTooLate is the rejection given inside the final hour before departure.
const ReasonTooLate = "not eligible, <1h to departure"

// RejectedError is returned when a cancellation is refused. The booking is
// left untouched.
type RejectedError struct {
	BookingID string
	Reason    string
	Err       error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("cancellation of %s rejected: %s", e.BookingID, e.Reason)
}

func (e *RejectedError) Unwrap() error { return e.Err }
