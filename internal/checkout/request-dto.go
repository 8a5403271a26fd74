package checkout

import (
	"busgo/internal/bookings"
	"busgo/internal/inventory"
)

type SelectTripRequest struct {
	SearchID string `json:"search_id" binding:"required"`
	TripID   string `json:"trip_id" binding:"required"`
}

type SelectSeatsRequest struct {
	SeatIDs  []int `json:"seat_ids" binding:"required,min=1,dive,min=1"`
	Adults   int   `json:"adults" binding:"gte=0"`
	Children int   `json:"children" binding:"gte=0"`
}

// DetailsRequest lists passengers in seat order. PrimaryContact falls back to
// the account holder when omitted.
type DetailsRequest struct {
	Passengers     []inventory.Passenger `json:"passengers" validate:"required,min=1,dive"`
	PrimaryContact *bookings.Contact     `json:"primary_contact"`
}

type CouponRequest struct {
	Code string `json:"code" binding:"required,max=30"`
}

// PaymentRequest carries only what the simulated gateway checks.
type PaymentRequest struct {
	Method     string `json:"method" validate:"required,oneof=card upi netbanking"`
	CardNumber string `json:"card_number" validate:"required_if=Method card,omitempty,numeric,len=16"`
	CardExpiry string `json:"card_expiry" validate:"required_if=Method card,omitempty,len=5"`
	CardCVV    string `json:"card_cvv" validate:"required_if=Method card,omitempty,numeric,len=3"`
	UPIID      string `json:"upi_id" validate:"required_if=Method upi,omitempty,contains=@"`
	Bank       string `json:"bank" validate:"required_if=Method netbanking,omitempty,max=100"`
}
