package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/inventory"
	"busgo/internal/notifications"
	"busgo/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type fakeTrips struct {
	trip   inventory.TripInstance
	params inventory.SearchParams
}

func (f *fakeTrips) Trip(_ context.Context, searchID, tripID string) (*inventory.TripInstance, *inventory.SearchParams, error) {
	if searchID != "search-1" {
		return nil, nil, inventory.ErrSearchNotFound
	}
	if tripID != f.trip.ID {
		return nil, nil, inventory.ErrTripNotFound
	}
	trip := f.trip
	params := f.params
	return &trip, &params, nil
}

type fakeUsers struct{}

func (fakeUsers) GetContact(context.Context, uuid.UUID) (string, string, error) {
	return "Asha Raman", "9876543210", nil
}

type recordingPublisher struct {
	sent []*notifications.BookingNotification
}

func (p *recordingPublisher) Publish(_ context.Context, n *notifications.BookingNotification) error {
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var checkoutNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testTrip() inventory.TripInstance {
	return inventory.TripInstance{
		ID:               "101-0-0",
		RouteNo:          "101",
		Name:             "SETC Route 101",
		From:             "Chennai",
		To:               "Madurai",
		DepartureTime:    "21:30",
		DepartureMinutes: 21*60 + 30,
		ArrivalTime:      "05:30",
		ArrivalDayOffset: 1,
		Duration:         "8h 0m",
		Price:            500,
		BusType:          inventory.BusTypeAC,
		Seats: []inventory.Seat{
			{ID: 1, Number: "S1", IsAvailable: true, ReservedFor: inventory.GenderFemale},
			{ID: 2, Number: "S2", IsAvailable: true},
			{ID: 3, Number: "S3", IsAvailable: true},
			{ID: 4, Number: "S4", IsAvailable: false, Gender: inventory.GenderMale},
		},
	}
}

type fixture struct {
	svc       Service
	ledger    bookings.Service
	publisher *recordingPublisher
	userID    uuid.UUID
}

// clashingLedger refuses booking ids already held elsewhere.
type clashingLedger struct {
	Ledger
	taken map[string]bool
	tried []string
}

func (l *clashingLedger) Append(ctx context.Context, userID uuid.UUID, booking bookings.Booking) (*bookings.Booking, error) {
	l.tried = append(l.tried, booking.BookingID)
	if l.taken[booking.BookingID] {
		return nil, bookings.ErrDuplicateID
	}
	return l.Ledger.Append(ctx, userID, booking)
}

func newFixture() *fixture {
	return newFixtureWithLedger(nil)
}

// newFixtureWithLedger lets wrap sit between checkout and the ledger.
func newFixtureWithLedger(wrap func(Ledger) Ledger) *fixture {
	ledger := bookings.NewService(bookings.NewMemoryStore(), bookings.NewMemoryRatingRepository(), nil)
	var into Ledger = ledger
	if wrap != nil {
		into = wrap(ledger)
	}
	pub := &recordingPublisher{}
	trips := &fakeTrips{
		trip:   testTrip(),
		params: inventory.SearchParams{From: "Chennai", To: "Madurai", Date: "2025-03-12"},
	}
	svc := NewService(trips, into, fakeUsers{}, cache.NewMemoryService(), pub, Config{
		SessionTTL: time.Hour,
		Location:   time.UTC,
		Coupons:    map[string]int{"FIRST10": 10},
	})
	return &fixture{svc: svc, ledger: ledger, publisher: pub, userID: uuid.New()}
}

func (f *fixture) toDetails(t *testing.T) *Draft {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.SelectTrip(ctx, f.userID, SelectTripRequest{SearchID: "search-1", TripID: "101-0-0"}); err != nil {
		t.Fatalf("select trip: %v", err)
	}
	if _, err := f.svc.SelectSeats(ctx, f.userID, SelectSeatsRequest{SeatIDs: []int{2, 3}, Adults: 1, Children: 1}); err != nil {
		t.Fatalf("select seats: %v", err)
	}
	draft, err := f.svc.SubmitDetails(ctx, f.userID, DetailsRequest{
		Passengers: []inventory.Passenger{
			{Name: "Asha Raman", Age: 34, Gender: "Female"},
			{Name: "Kavin", Age: 8, Gender: "Male"},
		},
	}, checkoutNow)
	if err != nil {
		t.Fatalf("submit details: %v", err)
	}
	return draft
}

func TestCheckoutFlowRecordsBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft := f.toDetails(t)
	if draft.BaseFare != 750 || draft.Booking.TotalPrice != 750 {
		t.Fatalf("expected fare 750, got base %v total %v", draft.BaseFare, draft.Booking.TotalPrice)
	}
	if !strings.HasPrefix(draft.Booking.BookingID, "BG") {
		t.Fatalf("unexpected booking id %q", draft.Booking.BookingID)
	}
	wantJourney := time.Date(2025, 3, 12, 21, 30, 0, 0, time.UTC)
	if !draft.Booking.JourneyTimestamp.Equal(wantJourney) {
		t.Fatalf("expected journey %v, got %v", wantJourney, draft.Booking.JourneyTimestamp)
	}
	if draft.Booking.PrimaryContact.Mobile != "9876543210" {
		t.Fatalf("expected contact from profile, got %+v", draft.Booking.PrimaryContact)
	}
	if draft.Booking.Passengers[1].SeatNumber != "S3" {
		t.Fatalf("expected second passenger on S3, got %q", draft.Booking.Passengers[1].SeatNumber)
	}

	draft, err := f.svc.ApplyCoupon(ctx, f.userID, " first10 ")
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if draft.Discount != 75 || draft.Booking.TotalPrice != 675 {
		t.Fatalf("expected 75 off to 675, got %v off to %v", draft.Discount, draft.Booking.TotalPrice)
	}

	intent, err := f.svc.PaymentIntent(ctx, f.userID)
	if err != nil {
		t.Fatalf("payment intent: %v", err)
	}
	wantURL := "upi://pay?pa=busgo@upi&am=675.00&tn=BookingID-" + draft.Booking.BookingID
	if intent.URL != wantURL || intent.ExpiresIn != 300 {
		t.Fatalf("unexpected intent %+v", intent)
	}

	booking, err := f.svc.Pay(ctx, f.userID, PaymentRequest{Method: MethodUPI, UPIID: "asha@okbank"}, checkoutNow)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if booking.Status != bookings.StatusConfirmed || booking.CouponCode != "FIRST10" || booking.PaymentMethod != MethodUPI {
		t.Fatalf("unexpected booking %+v", booking)
	}

	views, err := f.ledger.List(ctx, f.userID, checkoutNow)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Booking.BookingID != booking.BookingID {
		t.Fatalf("expected booking in ledger, got %+v", views)
	}

	state, err := f.svc.State(ctx, f.userID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.SelectedBus != nil || state.BookingDetails != nil || len(state.SelectedSeats) != 0 {
		t.Fatalf("expected empty session after payment, got %+v", state)
	}

	if len(f.publisher.sent) != 1 || f.publisher.sent[0].Type != notifications.NotificationTypeBookingConfirmed {
		t.Fatalf("expected one confirmation, got %+v", f.publisher.sent)
	}
}

func TestSelectSeatsRequiresTrip(t *testing.T) {
	f := newFixture()
	_, err := f.svc.SelectSeats(context.Background(), f.userID, SelectSeatsRequest{SeatIDs: []int{2}, Adults: 1})
	if !errors.Is(err, ErrNoTripSelected) {
		t.Fatalf("expected ErrNoTripSelected, got %v", err)
	}
}

func TestSelectSeatsRejects(t *testing.T) {
	tests := []struct {
		name string
		req  SelectSeatsRequest
		want error
	}{
		{"count mismatch", SelectSeatsRequest{SeatIDs: []int{2, 3}, Adults: 1}, ErrSeatCountMismatch},
		{"unaccompanied minor", SelectSeatsRequest{SeatIDs: []int{2}, Children: 1}, inventory.ErrUnaccompaniedMinor},
		{"occupied seat", SelectSeatsRequest{SeatIDs: []int{4}, Adults: 1}, inventory.ErrSeatUnavailable},
		{"unknown seat", SelectSeatsRequest{SeatIDs: []int{41}, Adults: 1}, inventory.ErrSeatNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			if _, err := f.svc.SelectTrip(ctx, f.userID, SelectTripRequest{SearchID: "search-1", TripID: "101-0-0"}); err != nil {
				t.Fatalf("select trip: %v", err)
			}
			if _, err := f.svc.SelectSeats(ctx, f.userID, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSubmitDetailsChecksReservedSeat(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.SelectTrip(ctx, f.userID, SelectTripRequest{SearchID: "search-1", TripID: "101-0-0"}); err != nil {
		t.Fatalf("select trip: %v", err)
	}
	if _, err := f.svc.SelectSeats(ctx, f.userID, SelectSeatsRequest{SeatIDs: []int{1}, Adults: 1}); err != nil {
		t.Fatalf("select seats: %v", err)
	}

	_, err := f.svc.SubmitDetails(ctx, f.userID, DetailsRequest{
		Passengers: []inventory.Passenger{{Name: "Ravi", Age: 40, Gender: "Male"}},
	}, checkoutNow)
	var mismatch *inventory.GenderMismatchError
	if !errors.As(err, &mismatch) || mismatch.SeatNumber != "S1" {
		t.Fatalf("expected gender mismatch on S1, got %v", err)
	}

	if _, err := f.svc.PaymentIntent(ctx, f.userID); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected no draft after rejected details, got %v", err)
	}
}

func TestSubmitDetailsValidatesPassengers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.SelectTrip(ctx, f.userID, SelectTripRequest{SearchID: "search-1", TripID: "101-0-0"}); err != nil {
		t.Fatalf("select trip: %v", err)
	}
	if _, err := f.svc.SelectSeats(ctx, f.userID, SelectSeatsRequest{SeatIDs: []int{2}, Adults: 1}); err != nil {
		t.Fatalf("select seats: %v", err)
	}

	_, err := f.svc.SubmitDetails(ctx, f.userID, DetailsRequest{
		Passengers: []inventory.Passenger{{Name: "A", Age: 30, Gender: "Male"}},
	}, checkoutNow)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCouponRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.ApplyCoupon(ctx, f.userID, "FIRST10"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft before details, got %v", err)
	}

	f.toDetails(t)
	if _, err := f.svc.ApplyCoupon(ctx, f.userID, "BOGUS"); !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon, got %v", err)
	}
	if _, err := f.svc.ApplyCoupon(ctx, f.userID, "FIRST10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if _, err := f.svc.ApplyCoupon(ctx, f.userID, "FIRST10"); !errors.Is(err, ErrCouponApplied) {
		t.Fatalf("expected ErrCouponApplied, got %v", err)
	}

	draft, err := f.svc.RemoveCoupon(ctx, f.userID)
	if err != nil {
		t.Fatalf("remove coupon: %v", err)
	}
	if draft.Booking.TotalPrice != 750 || draft.CouponCode != "" {
		t.Fatalf("expected full fare restored, got %+v", draft)
	}
}

func TestPayValidatesMethodDetails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.toDetails(t)

	_, err := f.svc.Pay(ctx, f.userID, PaymentRequest{Method: MethodCard, CardNumber: "4111111111111111"}, checkoutNow)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation error for missing card fields, got %v", err)
	}

	views, err := f.ledger.List(ctx, f.userID, checkoutNow)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected nothing recorded, got %d bookings", len(views))
	}
	if len(f.publisher.sent) != 0 {
		t.Fatalf("expected no notification, got %d", len(f.publisher.sent))
	}
}

func TestPayMovesPastTakenBookingID(t *testing.T) {
	base := checkoutNow.UnixMilli()
	clash := &clashingLedger{taken: map[string]bool{
		fmt.Sprintf("BG%d", base):   true,
		fmt.Sprintf("BG%d", base+1): true,
	}}
	f := newFixtureWithLedger(func(l Ledger) Ledger {
		clash.Ledger = l
		return clash
	})
	ctx := context.Background()
	f.toDetails(t)

	booking, err := f.svc.Pay(ctx, f.userID, PaymentRequest{Method: MethodUPI, UPIID: "asha@okbank"}, checkoutNow)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	want := fmt.Sprintf("BG%d", base+2)
	if booking.BookingID != want || len(clash.tried) != 3 {
		t.Fatalf("expected %s after 3 attempts, got %s after %v", want, booking.BookingID, clash.tried)
	}

	views, _ := f.ledger.List(ctx, f.userID, checkoutNow)
	if len(views) != 1 || views[0].Booking.BookingID != want {
		t.Fatalf("expected booking %s in ledger, got %+v", want, views)
	}
	if len(f.publisher.sent) != 1 || f.publisher.sent[0].BookingID != want {
		t.Fatalf("confirmation should carry the final id, got %+v", f.publisher.sent)
	}
}

func TestPayGivesUpOnRepeatedIDClash(t *testing.T) {
	base := checkoutNow.UnixMilli()
	clash := &clashingLedger{taken: map[string]bool{}}
	for i := int64(0); i < maxBookingIDAttempts; i++ {
		clash.taken[fmt.Sprintf("BG%d", base+i)] = true
	}
	f := newFixtureWithLedger(func(l Ledger) Ledger {
		clash.Ledger = l
		return clash
	})
	ctx := context.Background()
	f.toDetails(t)

	_, err := f.svc.Pay(ctx, f.userID, PaymentRequest{Method: MethodUPI, UPIID: "asha@okbank"}, checkoutNow)
	if !errors.Is(err, bookings.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if len(f.publisher.sent) != 0 {
		t.Fatalf("expected no notification, got %d", len(f.publisher.sent))
	}
	state, err := f.svc.State(ctx, f.userID)
	if err != nil || state.BookingDetails == nil {
		t.Fatalf("draft should survive a failed payment, got %+v (%v)", state, err)
	}
}

func TestSelectTripStartsFreshSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.toDetails(t)

	if _, err := f.svc.SelectTrip(ctx, f.userID, SelectTripRequest{SearchID: "search-1", TripID: "101-0-0"}); err != nil {
		t.Fatalf("select trip: %v", err)
	}
	state, err := f.svc.State(ctx, f.userID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.SelectedBus == nil || state.SearchID != "search-1" {
		t.Fatalf("expected trip in session, got %+v", state)
	}
	if state.BookingDetails != nil || state.PassengerCounts != nil {
		t.Fatalf("expected earlier selection cleared, got %+v", state)
	}
}

func TestSelectTripUnknownTrip(t *testing.T) {
	f := newFixture()
	_, err := f.svc.SelectTrip(context.Background(), f.userID, SelectTripRequest{SearchID: "search-1", TripID: "nope"})
	if !errors.Is(err, inventory.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}
