package analytics

// BookingOverview summarises the whole ledger.
type BookingOverview struct {
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	Revenue           float64 `json:"revenue"`
	Refunded          float64 `json:"refunded"`
	CancellationRate  float64 `json:"cancellation_rate" gorm:"-"`
	AverageValue      float64 `json:"average_value" gorm:"-"`
}

type DailyBookingStats struct {
	Date              string  `json:"date"`
	TotalBookings     int     `json:"total_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	Revenue           float64 `json:"revenue"`
	AverageValue      float64 `json:"average_value" gorm:"-"`
}

// RoutePerformance groups bookings by the route in their bus snapshot.
type RoutePerformance struct {
	RouteNo  string  `json:"route_no"`
	FromCity string  `json:"from"`
	ToCity   string  `json:"to"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type CancellationOverview struct {
	TotalCancellations     int               `json:"total_cancellations"`
	RefundAmount           float64           `json:"refund_amount"`
	FeesRetained           float64           `json:"fees_retained"`
	AvgDeductionPercentage float64           `json:"avg_deduction_percentage"`
	ByTier                 []DeductionBucket `json:"by_tier" gorm:"-"`
}

// DeductionBucket counts cancellations that fell into one refund tier.
type DeductionBucket struct {
	DeductionPercentage int `json:"deduction_percentage"`
	Count               int `json:"count"`
}
