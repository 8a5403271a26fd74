package bookings

// Status is the persisted lifecycle of a booking.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}

// DisplayState classifies a booking for the dashboard. It is derived on
// every read and never stored.
type DisplayState string

const (
	DisplayConfirmed DisplayState = "Confirmed"
	DisplayCancelled DisplayState = "Cancelled"
	DisplayExpired   DisplayState = "Expired"
)
