package checkout

import (
	"busgo/internal/bookings"
	"busgo/internal/inventory"
)

// Payment methods accepted by the simulated gateway
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetBanking = "netbanking"
)

// UPIPayee is the merchant VPA shown in payment QR codes.
const UPIPayee = "busgo@upi"

// Draft is the booking being assembled, held in the session until paid.
type Draft struct {
	Booking         bookings.Booking `json:"booking"`
	BaseFare        float64          `json:"base_fare"`
	CouponCode      string           `json:"coupon_code,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	Discount        float64          `json:"discount"`
}

// SeatSelection is returned once seats and counts agree.
type SeatSelection struct {
	Seats  []inventory.Seat          `json:"seats"`
	Counts inventory.PassengerCounts `json:"passenger_counts"`
	Fare   float64                   `json:"fare"`
}

// Session is everything held for a user between search and payment.
type Session struct {
	SearchID        string                     `json:"search_id,omitempty"`
	SearchParams    *inventory.SearchParams    `json:"search_params,omitempty"`
	SelectedBus     *inventory.TripInstance    `json:"selected_bus,omitempty"`
	SelectedSeats   []inventory.Seat           `json:"selected_seats,omitempty"`
	PassengerCounts *inventory.PassengerCounts `json:"passenger_counts,omitempty"`
	BookingDetails  *Draft                     `json:"booking_details,omitempty"`
}

// searchRef is what the session keeps under searchParams.
type searchRef struct {
	SearchID string                 `json:"search_id"`
	Params   inventory.SearchParams `json:"params"`
}

// UPIIntent is the payload rendered as a QR code.
type UPIIntent struct {
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
	ExpiresIn int     `json:"expires_in_seconds"`
}
