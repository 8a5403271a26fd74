package bookings

import (
	"context"
	"fmt"
	"time"

	"busgo/internal/notifications"
	"busgo/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for booking business logic
type Service interface {
	List(ctx context.Context, userID uuid.UUID, now time.Time) ([]BookingView, error)
	Get(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*BookingView, error)
	Append(ctx context.Context, userID uuid.UUID, booking Booking) (*Booking, error)
	Cancel(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Booking, Refund, error)
	Rate(ctx context.Context, userID uuid.UUID, bookingID string, req RateRequest, now time.Time) (*Rating, error)
	Ticket(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Booking, error)
}

// service implements the Service interface
type service struct {
	store     BookingStore
	ratings   RatingRepository
	publisher notifications.Publisher
	log       *logger.Logger
}

// NewService creates a new booking service
func NewService(store BookingStore, ratings RatingRepository, publisher notifications.Publisher) Service {
	return &service{
		store:     store,
		ratings:   ratings,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

// List returns the dashboard, newest booking first.
func (s *service) List(ctx context.Context, userID uuid.UUID, now time.Time) ([]BookingView, error) {
	bookings, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for i := len(bookings) - 1; i >= 0; i-- {
		views = append(views, NewView(bookings[i], now))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*BookingView, error) {
	bookings, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	i, err := find(bookings, bookingID)
	if err != nil {
		return nil, err
	}
	view := NewView(bookings[i], now)
	return &view, nil
}

// Append adds a freshly paid booking to the user's ledger.
func (s *service) Append(ctx context.Context, userID uuid.UUID, booking Booking) (*Booking, error) {
	bookings, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := find(bookings, booking.BookingID); err == nil {
		return nil, ErrDuplicateID
	}

	booking.UserID = userID
	booking.Status = StatusConfirmed
	booking.RefundAmount = nil
	booking.IsRated = false
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	bookings = append(bookings, booking)
	if err := s.store.SaveAll(ctx, userID, bookings); err != nil {
		return nil, fmt.Errorf("failed to append booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.BookingID, booking.Bus.ID, userID.String(), booking.TotalPrice)
	return &booking, nil
}

// Cancel reloads the ledger, applies the cancellation and writes the whole
// collection back.
func (s *service) Cancel(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Booking, Refund, error) {
	bookings, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, Refund{}, err
	}
	i, err := find(bookings, bookingID)
	if err != nil {
		return nil, Refund{}, err
	}

	refund, err := Cancel(&bookings[i], now)
	if err != nil {
		return nil, refund, err
	}

	if err := s.store.SaveAll(ctx, userID, bookings); err != nil {
		return nil, Refund{}, fmt.Errorf("failed to save cancellation: %w", err)
	}

	s.log.LogBookingCancelled(ctx, bookingID, userID.String(), refund.RefundAmount, refund.DeductionPercentage)
	return &bookings[i], refund, nil
}

func (s *service) Rate(ctx context.Context, userID uuid.UUID, bookingID string, req RateRequest, now time.Time) (*Rating, error) {
	bookings, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	i, err := find(bookings, bookingID)
	if err != nil {
		return nil, err
	}

	if err := Rate(&bookings[i], now); err != nil {
		return nil, err
	}

	// The rating row goes in before the flag. A row left behind by an attempt
	// whose flag write failed is reused.
	rating, err := s.ratings.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		rating = &Rating{
			BookingID: bookingID,
			UserID:    userID,
			Stars:     req.Stars,
			Review:    req.Review,
			CreatedAt: now,
		}
		if err := s.ratings.Create(ctx, rating); err != nil {
			return nil, err
		}
	}

	if err := s.store.SaveAll(ctx, userID, bookings); err != nil {
		return nil, fmt.Errorf("failed to save rating flag: %w", err)
	}

	s.log.LogBookingRated(ctx, bookingID, userID.String(), rating.Stars)
	notifications.PublishAsync(ctx, s.publisher, notifications.NewNotificationBuilder().
		WithType(notifications.NotificationTypeBookingRated).
		WithBooking(userID, bookingID).
		WithData("stars", rating.Stars).
		Build())

	return rating, nil
}

// Ticket returns the booking when printing is allowed.
func (s *service) Ticket(ctx context.Context, userID uuid.UUID, bookingID string, now time.Time) (*Booking, error) {
	view, err := s.Get(ctx, userID, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !view.Actions.Print {
		return nil, ErrNotPrintable
	}
	return &view.Booking, nil
}

func find(bookings []Booking, bookingID string) (int, error) {
	for i := range bookings {
		if bookings[i].BookingID == bookingID {
			return i, nil
		}
	}
	return -1, ErrBookingNotFound
}
