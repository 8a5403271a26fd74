package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"busgo/internal/inventory"
	"busgo/internal/notifications"

	"github.com/google/uuid"
)

type recordingPublisher struct {
	sent []*notifications.BookingNotification
}

func (p *recordingPublisher) Publish(_ context.Context, n *notifications.BookingNotification) error {
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(t *testing.T) (Service, *MemoryStore, *recordingPublisher) {
	t.Helper()
	store := NewMemoryStore()
	pub := &recordingPublisher{}
	return NewService(store, NewMemoryRatingRepository(), pub), store, pub
}

func pendingBooking(id string, departIn time.Duration) Booking {
	return Booking{
		BookingID:        id,
		Bus:              BusSnapshot{inventory.TripInstance{ID: "101-0-0", Name: "SETC Route 101", Price: 500}},
		Passengers:       PassengerList{{Name: "Asha", Age: 30, Gender: "Female", SeatNumber: "1", SeatID: 1}},
		PassengerCounts:  inventory.PassengerCounts{Adults: 1},
		TotalPrice:       500,
		JourneyTimestamp: ledgerNow.Add(departIn),
		CreatedAt:        ledgerNow.Add(-3 * time.Hour),
	}
}

func TestServiceAppendAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	first := pendingBooking("BG1", 30*time.Hour)
	first.CreatedAt = ledgerNow.Add(-2 * time.Hour)
	second := pendingBooking("BG2", -time.Hour)
	second.CreatedAt = ledgerNow.Add(-time.Hour)
	second.Status = StatusCancelled

	if _, err := svc.Append(ctx, userID, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	saved, err := svc.Append(ctx, userID, second)
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if saved.Status != StatusConfirmed || saved.UserID != userID {
		t.Fatalf("append should force Confirmed for the caller, got %+v", saved)
	}

	if _, err := svc.Append(ctx, userID, first); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	views, err := svc.List(ctx, userID, ledgerNow)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 || views[0].BookingID != "BG2" {
		t.Fatalf("expected newest first, got %+v", views)
	}
	if views[0].DisplayState != DisplayExpired || !views[0].Actions.Rate {
		t.Fatalf("unexpected expired view %+v", views[0])
	}
	if views[1].RefundPreview == nil || views[1].RefundPreview.RefundAmount != 400 {
		t.Fatalf("expected refund preview of 400, got %+v", views[1].RefundPreview)
	}

	other, err := svc.List(ctx, uuid.New(), ledgerNow)
	if err != nil || len(other) != 0 {
		t.Fatalf("other user should see nothing, got %v %v", other, err)
	}
}

func TestServiceCancel(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", 30*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	booking, refund, err := svc.Cancel(ctx, userID, "BG1", ledgerNow)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if refund.RefundAmount != 400 || booking.Status != StatusCancelled {
		t.Fatalf("unexpected cancel result %+v %+v", booking, refund)
	}

	stored, _ := store.Load(ctx, userID)
	if stored[0].Status != StatusCancelled {
		t.Fatalf("cancellation not persisted")
	}

	if _, _, err := svc.Cancel(ctx, userID, "BG1", ledgerNow); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
	if _, _, err := svc.Cancel(ctx, userID, "BG404", ledgerNow); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestServiceCancelTooLateDoesNotSave(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", 10*time.Minute)); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, _, err := svc.Cancel(ctx, userID, "BG1", ledgerNow)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	stored, _ := store.Load(ctx, userID)
	if stored[0].Status != StatusConfirmed {
		t.Fatalf("rejected cancel must not persist")
	}
}

func TestServiceRate(t *testing.T) {
	svc, store, pub := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", -2*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	rating, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 4, Review: "On time"}, ledgerNow)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rating.Stars != 4 || rating.ID == uuid.Nil {
		t.Fatalf("unexpected rating %+v", rating)
	}

	stored, _ := store.Load(ctx, userID)
	if !stored[0].IsRated {
		t.Fatalf("rated flag not persisted")
	}

	if _, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 5}, ledgerNow); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	if len(pub.sent) != 1 || pub.sent[0].Type != notifications.NotificationTypeBookingRated {
		t.Fatalf("expected one rated notification, got %d", len(pub.sent))
	}
}

type failingRatings struct {
	*MemoryRatingRepository
	createErr error
}

func (r *failingRatings) Create(ctx context.Context, rating *Rating) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.MemoryRatingRepository.Create(ctx, rating)
}

// flakyStore fails the next SaveAll once.
type flakyStore struct {
	*MemoryStore
	failNext bool
}

func (s *flakyStore) SaveAll(ctx context.Context, userID uuid.UUID, bookings []Booking) error {
	if s.failNext {
		s.failNext = false
		return errors.New("write timeout")
	}
	return s.MemoryStore.SaveAll(ctx, userID, bookings)
}

func TestServiceRateKeepsFlagWhenRatingFails(t *testing.T) {
	store := NewMemoryStore()
	ratings := &failingRatings{MemoryRatingRepository: NewMemoryRatingRepository(), createErr: errors.New("db down")}
	pub := &recordingPublisher{}
	svc := NewService(store, ratings, pub)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", -2*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 4}, ledgerNow); err == nil {
		t.Fatalf("expected rating error")
	}
	stored, _ := store.Load(ctx, userID)
	if stored[0].IsRated {
		t.Fatalf("rated flag set although no rating was stored")
	}
	if len(pub.sent) != 0 {
		t.Fatalf("expected no notification, got %d", len(pub.sent))
	}

	ratings.createErr = nil
	if _, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 4}, ledgerNow); err != nil {
		t.Fatalf("retry: %v", err)
	}
	stored, _ = store.Load(ctx, userID)
	if !stored[0].IsRated {
		t.Fatalf("rated flag not persisted on retry")
	}
}

func TestServiceRateRecoversFromFlagWriteFailure(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	ratings := NewMemoryRatingRepository()
	svc := NewService(store, ratings, &recordingPublisher{})
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", -2*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	store.failNext = true
	if _, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 3, Review: "Late"}, ledgerNow); err == nil {
		t.Fatalf("expected flag write error")
	}

	rating, err := svc.Rate(ctx, userID, "BG1", RateRequest{Stars: 5}, ledgerNow)
	if err != nil {
		t.Fatalf("retry should reuse the stored rating: %v", err)
	}
	if rating.Stars != 3 || rating.Review != "Late" {
		t.Fatalf("expected the first rating back, got %+v", rating)
	}
	stored, _ := store.Load(ctx, userID)
	if !stored[0].IsRated {
		t.Fatalf("rated flag not persisted on retry")
	}
}

func TestServiceTicket(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Append(ctx, userID, pendingBooking("BG1", 30*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := svc.Ticket(ctx, userID, "BG1", ledgerNow); err != nil {
		t.Fatalf("ticket: %v", err)
	}
	if _, _, err := svc.Cancel(ctx, userID, "BG1", ledgerNow); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Ticket(ctx, userID, "BG1", ledgerNow); !errors.Is(err, ErrNotPrintable) {
		t.Fatalf("expected ErrNotPrintable, got %v", err)
	}
}
