package bookings

import "time"

// BookingView is a booking as the dashboard sees it at one instant.
type BookingView struct {
	Booking
	DisplayState  DisplayState `json:"display_state"`
	Actions       Actions      `json:"actions"`
	RefundPreview *Refund      `json:"refund_preview,omitempty"`
}

// NewView derives the display state and enabled actions for b at now.
func NewView(b Booking, now time.Time) BookingView {
	view := BookingView{
		Booking:      b,
		DisplayState: DeriveDisplayState(&b, now),
		Actions:      AvailableActions(&b, now),
	}
	if view.Actions.Cancel {
		refund := ComputeRefund(&b, now)
		view.RefundPreview = &refund
	}
	return view
}
