package bookings

import (
	"math"
	"time"
)

// Refund is the outcome of the refund policy at a given instant.
type Refund struct {
	RefundAmount        float64 `json:"refund_amount"`
	DeductionPercentage int     `json:"deduction_percentage"`
}

// Actions lists what the dashboard may offer for a booking.
type Actions struct {
	Print  bool `json:"print"`
	Cancel bool `json:"cancel"`
	Rate   bool `json:"rate"`
}

// RefundTier is one bracket of the refund policy. A booking falls into the
// first tier whose MinHours it meets, scanning from the top.
type RefundTier struct {
	MinHours            float64 `json:"min_hours"`
	DeductionPercentage int     `json:"deduction_percentage"`
}

// RefundPolicy is ordered from the longest notice to the shortest.
var RefundPolicy = []RefundTier{
	{MinHours: 48, DeductionPercentage: 10},
	{MinHours: 24, DeductionPercentage: 20},
	{MinHours: 1, DeductionPercentage: 25},
}

const fullDeduction = 100

// DeductionFor returns the deduction percentage for hours of notice.
func DeductionFor(hours float64) int {
	for _, tier := range RefundPolicy {
		if hours >= tier.MinHours {
			return tier.DeductionPercentage
		}
	}
	return fullDeduction
}

// ComputeRefund applies the refund policy regardless of status, so it also
// serves previews on active bookings.
func ComputeRefund(b *Booking, now time.Time) Refund {
	hours := b.JourneyTimestamp.Sub(now).Hours()
	deduction := DeductionFor(hours)
	if deduction == fullDeduction {
		return Refund{RefundAmount: 0, DeductionPercentage: deduction}
	}
	return Refund{
		RefundAmount:        math.Round(b.TotalPrice * float64(100-deduction) / 100),
		DeductionPercentage: deduction,
	}
}

// DeriveDisplayState is the only place expiry is decided.
func DeriveDisplayState(b *Booking, now time.Time) DisplayState {
	if b.Status == StatusCancelled {
		return DisplayCancelled
	}
	if now.After(b.JourneyTimestamp) {
		return DisplayExpired
	}
	return DisplayConfirmed
}

// AvailableActions gates print, cancel and rate on the display state.
func AvailableActions(b *Booking, now time.Time) Actions {
	switch DeriveDisplayState(b, now) {
	case DisplayConfirmed:
		_, err := CheckCancellable(b, now)
		return Actions{Print: true, Cancel: err == nil}
	case DisplayExpired:
		return Actions{Print: true, Rate: !b.IsRated}
	default:
		return Actions{}
	}
}

// CheckCancellable returns the refund a cancellation at now would pay, or a
// *RejectedError when the booking cannot be cancelled. It never mutates b.
func CheckCancellable(b *Booking, now time.Time) (Refund, error) {
	if !b.Status.CanBeCancelled() {
		return Refund{}, &RejectedError{BookingID: b.BookingID, Reason: "booking is " + b.Status.String(), Err: ErrNotCancellable}
	}

	refund := ComputeRefund(b, now)
	if refund.RefundAmount <= 0 {
		return refund, &RejectedError{BookingID: b.BookingID, Reason: ReasonTooLate}
	}
	return refund, nil
}

// Cancel moves a confirmed booking to Cancelled and records the refund.
// Nothing is mutated when it fails.
func Cancel(b *Booking, now time.Time) (Refund, error) {
	refund, err := CheckCancellable(b, now)
	if err != nil {
		return refund, err
	}

	amount := refund.RefundAmount
	cancelledAt := now
	b.Status = StatusCancelled
	b.RefundAmount = &amount
	b.CancelledAt = &cancelledAt
	return refund, nil
}

// Rate marks a completed journey as rated. A second call is rejected with
// ErrAlreadyRated and changes nothing.
func Rate(b *Booking, now time.Time) error {
	if DeriveDisplayState(b, now) != DisplayExpired {
		return ErrNotRateable
	}
	if b.IsRated {
		return ErrAlreadyRated
	}
	b.IsRated = true
	return nil
}
