package checkout

import "errors"

var (
	ErrNoTripSelected    = errors.New("no bus selected, start from the search results")
	ErrNoSeatsSelected   = errors.New("no seats selected for this booking")
	ErrNoDraft           = errors.New("passenger details have not been submitted")
	ErrSeatCountMismatch = errors.New("number of passengers must match the number of selected seats")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
	ErrCouponApplied     = errors.New("a coupon is already applied")
)
