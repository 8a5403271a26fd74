package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"busgo/internal/inventory"

	"github.com/google/uuid"
)

// Booking defines the ledger record. Bus is a snapshot of the trip at
// booking time and does not follow later inventory changes.
type Booking struct {
	BookingID        string                    `gorm:"primaryKey;type:varchar(32)" json:"booking_id"`
	UserID           uuid.UUID                 `gorm:"type:uuid;index;not null" json:"user_id"`
	Bus              BusSnapshot               `gorm:"type:jsonb;not null" json:"bus"`
	Passengers       PassengerList             `gorm:"type:jsonb;not null" json:"passengers"`
	PassengerCounts  inventory.PassengerCounts `gorm:"embedded;embeddedPrefix:count_" json:"passenger_counts"`
	PrimaryContact   Contact                   `gorm:"embedded;embeddedPrefix:contact_" json:"primary_contact"`
	TotalPrice       float64                   `gorm:"not null" json:"total_price"`
	CouponCode       string                    `gorm:"type:varchar(30)" json:"coupon_code,omitempty"`
	PaymentMethod    string                    `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	JourneyTimestamp time.Time                 `gorm:"not null;index" json:"journey_timestamp"`
	Status           Status                    `gorm:"type:varchar(20);check:status IN ('Confirmed', 'Cancelled');default:'Confirmed'" json:"status"`
	RefundAmount     *float64                  `json:"refund_amount,omitempty"`
	IsRated          bool                      `gorm:"default:false" json:"is_rated"`
	CancelledAt      *time.Time                `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// Contact is the primary contact captured with the passenger details.
type Contact struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Mobile  string `json:"mobile" validate:"required,numeric,len=10"`
	Aadhaar string `json:"aadhaar" validate:"omitempty,numeric,len=12"`
}

// Rating is the feedback left on a completed journey.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"booking_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Stars     int       `gorm:"not null;check:stars BETWEEN 1 AND 5" json:"stars"`
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}

// BusSnapshot stores a trip instance as a JSON column.
type BusSnapshot struct {
	inventory.TripInstance
}

func (b BusSnapshot) Value() (driver.Value, error) {
	return json.Marshal(b.TripInstance)
}

func (b *BusSnapshot) Scan(value interface{}) error {
	return scanJSON(value, &b.TripInstance)
}

// PassengerList stores the passengers as a JSON column.
type PassengerList []inventory.Passenger

func (p PassengerList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]inventory.Passenger(p))
}

func (p *PassengerList) Scan(value interface{}) error {
	return scanJSON(value, (*[]inventory.Passenger)(p))
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}
