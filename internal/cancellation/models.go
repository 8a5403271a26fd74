package cancellation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusProcessed = "PROCESSED"
	StatusRejected  = "REJECTED"
)

// Cancellation is the audit record of a confirmed cancellation. The booking
// ledger stays authoritative for status and refund.
type Cancellation struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID           string     `gorm:"type:varchar(32);unique;not null" json:"booking_id"`
	UserID              uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	RequestedAt         time.Time  `json:"requested_at"`
	ProcessedAt         *time.Time `json:"processed_at,omitempty"`
	TotalPrice          float64    `gorm:"not null" json:"total_price"`
	CancellationFee     float64    `gorm:"default:0" json:"cancellation_fee"`
	RefundAmount        float64    `gorm:"default:0" json:"refund_amount"`
	DeductionPercentage int        `gorm:"not null" json:"deduction_percentage"`
	Reason              string     `json:"reason,omitempty"`
	Status              string     `gorm:"type:varchar(20);check:status IN ('PROCESSED', 'REJECTED');default:'PROCESSED'" json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName sets the table name for Cancellation
func (Cancellation) TableName() string {
	return "cancellations"
}

// Quote is what the user sees before confirming a cancellation.
type Quote struct {
	BookingID           string    `json:"booking_id"`
	JourneyTimestamp    time.Time `json:"journey_timestamp"`
	HoursToDeparture    float64   `json:"hours_to_departure"`
	TotalPrice          float64   `json:"total_price"`
	DeductionPercentage int       `json:"deduction_percentage"`
	DeductionAmount     float64   `json:"deduction_amount"`
	RefundAmount        float64   `json:"refund_amount"`
}

// PolicyRule is one line of the published refund rules.
type PolicyRule struct {
	Notice              string `json:"notice"`
	DeductionPercentage int    `json:"deduction_percentage"`
}

// CancellationRequest represents a request to cancel a booking
type CancellationRequest struct {
	Confirm bool   `json:"confirm"`
	Reason  string `json:"reason" binding:"max=500"`
}
