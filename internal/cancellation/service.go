package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/notifications"
	"busgo/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotConfirmed = errors.New("cancellation must be explicitly confirmed")

// Service interface defines the contract for cancellation business logic
type Service interface {
	Quote(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Quote, error)
	Confirm(ctx context.Context, userID uuid.UUID, bookingID string, req CancellationRequest, now time.Time) (*Cancellation, error)
	GetCancellation(ctx context.Context, userID, cancellationID uuid.UUID) (*Cancellation, error)
	GetUserCancellations(ctx context.Context, userID uuid.UUID) ([]Cancellation, error)
	RefundPolicy() []PolicyRule
}

// BookingService is the part of the booking ledger cancellation needs
type BookingService interface {
	Get(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*bookings.BookingView, error)
	Cancel(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*bookings.Booking, bookings.Refund, error)
}

// service implements the Service interface
type service struct {
	repo           Repository
	bookingService BookingService
	publisher      notifications.Publisher
	log            *logger.Logger
}

// NewService creates a new cancellation service instance
func NewService(repo Repository, bookingService BookingService, publisher notifications.Publisher) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
		publisher:      publisher,
		log:            logger.GetDefault(),
	}
}

// Quote previews the refund without touching the ledger.
func (s *service) Quote(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Quote, error) {
	view, err := s.bookingService.Get(ctx, userID, bookingID, now)
	if err != nil {
		return nil, err
	}

	booking := view.Booking
	refund, err := bookings.CheckCancellable(&booking, now)
	if err != nil {
		return nil, err
	}

	return &Quote{
		BookingID:           bookingID,
		JourneyTimestamp:    booking.JourneyTimestamp,
		HoursToDeparture:    booking.JourneyTimestamp.Sub(now).Hours(),
		TotalPrice:          booking.TotalPrice,
		DeductionPercentage: refund.DeductionPercentage,
		DeductionAmount:     booking.TotalPrice - refund.RefundAmount,
		RefundAmount:        refund.RefundAmount,
	}, nil
}

// Confirm commits the cancellation on the ledger and records an audit row
func (s *service) Confirm(ctx context.Context, userID uuid.UUID, bookingID string, req CancellationRequest, now time.Time) (*Cancellation, error) {
	if !req.Confirm {
		return nil, ErrNotConfirmed
	}

	booking, refund, err := s.bookingService.Cancel(ctx, userID, bookingID, now)
	if err != nil {
		return nil, err
	}

	processedAt := now
	cancellation := &Cancellation{
		BookingID:           bookingID,
		UserID:              userID,
		RequestedAt:         now,
		ProcessedAt:         &processedAt,
		TotalPrice:          booking.TotalPrice,
		CancellationFee:     booking.TotalPrice - refund.RefundAmount,
		RefundAmount:        refund.RefundAmount,
		DeductionPercentage: refund.DeductionPercentage,
		Reason:              req.Reason,
		Status:              StatusProcessed,
	}

	// The ledger already holds the cancellation, a missing audit row is only logged
	if err := s.repo.CreateCancellation(ctx, cancellation); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to record cancellation", err, map[string]interface{}{
			"booking_id": bookingID,
			"user_id":    userID.String(),
		})
	}

	notifications.PublishAsync(ctx, s.publisher, notifications.NewNotificationBuilder().
		WithType(notifications.NotificationTypeBookingCancelled).
		WithBooking(userID, bookingID).
		WithData("refund_amount", refund.RefundAmount).
		WithData("deduction_percentage", refund.DeductionPercentage).
		Build())

	return cancellation, nil
}

// GetCancellation retrieves a cancellation owned by the user
func (s *service) GetCancellation(ctx context.Context, userID, cancellationID uuid.UUID) (*Cancellation, error) {
	cancellation, err := s.repo.GetCancellationByID(ctx, cancellationID)
	if err != nil {
		return nil, err
	}
	if cancellation.UserID != userID {
		return nil, ErrCancellationNotFound
	}
	return cancellation, nil
}

// GetUserCancellations retrieves all cancellations for a user
func (s *service) GetUserCancellations(ctx context.Context, userID uuid.UUID) ([]Cancellation, error) {
	cancellations, err := s.repo.GetCancellationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellations: %w", err)
	}
	return cancellations, nil
}

// RefundPolicy renders the tier table for display
func (s *service) RefundPolicy() []PolicyRule {
	rules := make([]PolicyRule, 0, len(bookings.RefundPolicy)+1)
	upper := 0.0
	for _, tier := range bookings.RefundPolicy {
		notice := fmt.Sprintf("%g hours or more before departure", tier.MinHours)
		if upper > 0 {
			notice = fmt.Sprintf("%g to %g hours before departure", tier.MinHours, upper)
		}
		rules = append(rules, PolicyRule{Notice: notice, DeductionPercentage: tier.DeductionPercentage})
		upper = tier.MinHours
	}
	rules = append(rules, PolicyRule{
		Notice:              fmt.Sprintf("less than %g hour before departure", upper),
		DeductionPercentage: 100,
	})
	return rules
}
