package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/inventory"
	"busgo/internal/notifications"
	"busgo/internal/shared/constants"
	"busgo/pkg/cache"
	"busgo/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// qrValidity is how long a payment QR stays valid on screen.
const qrValidity = 5 * time.Minute

// Service walks one user from a chosen trip to a paid booking. Each step
// reads what the previous one left in the session.
type Service interface {
	SelectTrip(ctx context.Context, userID uuid.UUID, req SelectTripRequest) (*inventory.TripInstance, error)
	SelectSeats(ctx context.Context, userID uuid.UUID, req SelectSeatsRequest) (*SeatSelection, error)
	SubmitDetails(ctx context.Context, userID uuid.UUID, req DetailsRequest, now time.Time) (*Draft, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*Draft, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*Draft, error)
	PaymentIntent(ctx context.Context, userID uuid.UUID) (*UPIIntent, error)
	Pay(ctx context.Context, userID uuid.UUID, req PaymentRequest, now time.Time) (*bookings.Booking, error)
	State(ctx context.Context, userID uuid.UUID) (*Session, error)
}

// TripFinder resolves a trip from a stored search.
type TripFinder interface {
	Trip(ctx context.Context, searchID, tripID string) (*inventory.TripInstance, *inventory.SearchParams, error)
}

// Ledger receives paid bookings.
type Ledger interface {
	Append(ctx context.Context, userID uuid.UUID, booking bookings.Booking) (*bookings.Booking, error)
}

// UserDirectory supplies the account holder's contact details
type UserDirectory interface {
	GetContact(ctx context.Context, userID uuid.UUID) (name, phone string, err error)
}

type Config struct {
	SessionTTL time.Duration
	Location   *time.Location
	Coupons    map[string]int
}

type service struct {
	trips     TripFinder
	ledger    Ledger
	users     UserDirectory
	session   cache.Service
	publisher notifications.Publisher
	validate  *validator.Validate
	cfg       Config
	log       *logger.Logger
}

func NewService(trips TripFinder, ledger Ledger, users UserDirectory, session cache.Service, publisher notifications.Publisher, cfg Config) Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = constants.TTL_SESSION_DEFAULT
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{
		trips:     trips,
		ledger:    ledger,
		users:     users,
		session:   session,
		publisher: publisher,
		validate:  validator.New(),
		cfg:       cfg,
		log:       logger.GetDefault(),
	}
}

// SelectTrip snapshots the trip and starts a fresh checkout.
func (s *service) SelectTrip(ctx context.Context, userID uuid.UUID, req SelectTripRequest) (*inventory.TripInstance, error) {
	trip, params, err := s.trips.Trip(ctx, req.SearchID, req.TripID)
	if err != nil {
		return nil, err
	}

	if err := s.clear(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.put(ctx, userID, constants.SESSION_FIELD_SEARCH_PARAMS, searchRef{SearchID: req.SearchID, Params: *params}); err != nil {
		return nil, err
	}
	if err := s.put(ctx, userID, constants.SESSION_FIELD_SELECTED_BUS, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *service) SelectSeats(ctx context.Context, userID uuid.UUID, req SelectSeatsRequest) (*SeatSelection, error) {
	var trip inventory.TripInstance
	if err := s.get(ctx, userID, constants.SESSION_FIELD_SELECTED_BUS, &trip, ErrNoTripSelected); err != nil {
		return nil, err
	}

	seats, err := inventory.ValidateSelection(trip, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	counts := inventory.PassengerCounts{Adults: req.Adults, Children: req.Children}
	if counts.Adults == 0 && counts.Children > 0 {
		return nil, inventory.ErrUnaccompaniedMinor
	}
	if counts.Total() != len(seats) {
		return nil, fmt.Errorf("%w: %d seats for %d passengers", ErrSeatCountMismatch, len(seats), counts.Total())
	}

	if err := s.put(ctx, userID, constants.SESSION_FIELD_SELECTED_SEATS, seats); err != nil {
		return nil, err
	}
	if err := s.put(ctx, userID, constants.SESSION_FIELD_PASSENGER_COUNTS, counts); err != nil {
		return nil, err
	}
	// a new selection invalidates any details entered for the old one
	if err := s.session.Delete(ctx, s.key(userID, constants.SESSION_FIELD_BOOKING_DETAILS)); err != nil {
		return nil, fmt.Errorf("failed to reset booking details: %w", err)
	}

	return &SeatSelection{
		Seats:  seats,
		Counts: counts,
		Fare:   inventory.ComputeFare(trip.Price, counts.Adults, counts.Children),
	}, nil
}

// SubmitDetails checks passengers against the selected seats and stores the
// draft booking that payment will finalize.
func (s *service) SubmitDetails(ctx context.Context, userID uuid.UUID, req DetailsRequest, now time.Time) (*Draft, error) {
	var (
		ref    searchRef
		trip   inventory.TripInstance
		seats  []inventory.Seat
		counts inventory.PassengerCounts
	)
	if err := s.get(ctx, userID, constants.SESSION_FIELD_SEARCH_PARAMS, &ref, ErrNoTripSelected); err != nil {
		return nil, err
	}
	if err := s.get(ctx, userID, constants.SESSION_FIELD_SELECTED_BUS, &trip, ErrNoTripSelected); err != nil {
		return nil, err
	}
	if err := s.get(ctx, userID, constants.SESSION_FIELD_SELECTED_SEATS, &seats, ErrNoSeatsSelected); err != nil {
		return nil, err
	}
	if err := s.get(ctx, userID, constants.SESSION_FIELD_PASSENGER_COUNTS, &counts, ErrNoSeatsSelected); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.contact(ctx, userID, req.PrimaryContact)
	if err != nil {
		return nil, err
	}

	passengers := append([]inventory.Passenger(nil), req.Passengers...)
	if err := inventory.AssignSeatsToPassengers(seats, passengers, counts); err != nil {
		return nil, err
	}

	journeyDate, err := ref.Params.JourneyDate(s.cfg.Location)
	if err != nil {
		return nil, err
	}

	fare := inventory.ComputeFare(trip.Price, counts.Adults, counts.Children)
	draft := &Draft{
		Booking: bookings.Booking{
			BookingID:        newBookingID(now),
			UserID:           userID,
			Bus:              bookings.BusSnapshot{TripInstance: trip},
			Passengers:       passengers,
			PassengerCounts:  counts,
			PrimaryContact:   contact,
			TotalPrice:       fare,
			JourneyTimestamp: trip.DepartureOn(journeyDate, s.cfg.Location),
			Status:           bookings.StatusConfirmed,
		},
		BaseFare: fare,
	}
	// layouts are not needed in the ledger once seats are assigned
	draft.Booking.Bus.Seats = nil

	if err := s.put(ctx, userID, constants.SESSION_FIELD_BOOKING_DETAILS, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *service) contact(ctx context.Context, userID uuid.UUID, given *bookings.Contact) (bookings.Contact, error) {
	var c bookings.Contact
	if given != nil {
		c = *given
	}
	if (c.Name == "" || c.Mobile == "") && s.users != nil {
		name, phone, err := s.users.GetContact(ctx, userID)
		if err != nil {
			return c, err
		}
		if c.Name == "" {
			c.Name = name
		}
		if c.Mobile == "" {
			c.Mobile = phone
		}
	}
	if err := s.validate.Struct(c); err != nil {
		return c, err
	}
	return c, nil
}

// ApplyCoupon discounts the draft total. Only one coupon applies at a time.
func (s *service) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*Draft, error) {
	draft, err := s.draft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft.CouponCode != "" {
		return nil, ErrCouponApplied
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	percent, ok := s.cfg.Coupons[code]
	if !ok || percent <= 0 {
		return nil, ErrInvalidCoupon
	}

	draft.CouponCode = code
	draft.DiscountPercent = percent
	draft.Discount = roundPaise(draft.BaseFare * float64(percent) / 100)
	draft.Booking.TotalPrice = roundPaise(draft.BaseFare - draft.Discount)
	draft.Booking.CouponCode = code

	if err := s.put(ctx, userID, constants.SESSION_FIELD_BOOKING_DETAILS, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *service) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	draft, err := s.draft(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft.CouponCode = ""
	draft.DiscountPercent = 0
	draft.Discount = 0
	draft.Booking.TotalPrice = draft.BaseFare
	draft.Booking.CouponCode = ""

	if err := s.put(ctx, userID, constants.SESSION_FIELD_BOOKING_DETAILS, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// PaymentIntent builds the UPI deep link for the current total.
func (s *service) PaymentIntent(ctx context.Context, userID uuid.UUID) (*UPIIntent, error) {
	draft, err := s.draft(ctx, userID)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("upi://pay?pa=%s&am=%s&tn=%s",
		UPIPayee,
		inventory.FormatFare(draft.Booking.TotalPrice),
		url.QueryEscape("BookingID-"+draft.Booking.BookingID),
	)
	return &UPIIntent{
		URL:       link,
		Amount:    draft.Booking.TotalPrice,
		ExpiresIn: int(qrValidity.Seconds()),
	}, nil
}

const maxBookingIDAttempts = 3

func newBookingID(t time.Time) string {
	return fmt.Sprintf("BG%d", t.UnixMilli())
}

// Pay accepts the simulated payment, appends the draft to the ledger and
// ends the checkout session.
func (s *service) Pay(ctx context.Context, userID uuid.UUID, req PaymentRequest, now time.Time) (*bookings.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	draft, err := s.draft(ctx, userID)
	if err != nil {
		return nil, err
	}

	booking := draft.Booking
	booking.PaymentMethod = req.Method
	booking.CreatedAt = now

	saved, err := s.ledger.Append(ctx, userID, booking)
	// ids are millisecond stamps, so a clash moves to the next free one
	for attempt := 1; errors.Is(err, bookings.ErrDuplicateID) && attempt < maxBookingIDAttempts; attempt++ {
		s.log.WarnWithContext(ctx, "Booking id taken, retrying", map[string]interface{}{
			"user_id":    userID.String(),
			"booking_id": booking.BookingID,
		})
		booking.BookingID = newBookingID(now.Add(time.Duration(attempt) * time.Millisecond))
		saved, err = s.ledger.Append(ctx, userID, booking)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record booking: %w", err)
	}

	if err := s.clear(ctx, userID); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to clear checkout session", err, map[string]interface{}{
			"user_id":    userID.String(),
			"booking_id": saved.BookingID,
		})
	}

	notifications.PublishAsync(ctx, s.publisher, notifications.NewNotificationBuilder().
		WithType(notifications.NotificationTypeBookingConfirmed).
		WithBooking(userID, saved.BookingID).
		WithData("total_price", saved.TotalPrice).
		WithData("journey_timestamp", saved.JourneyTimestamp).
		WithData("route", saved.Bus.From+" - "+saved.Bus.To).
		Build())

	return saved, nil
}

// State returns whatever the session currently holds.
func (s *service) State(ctx context.Context, userID uuid.UUID) (*Session, error) {
	out := &Session{}

	var ref searchRef
	if ok, err := s.lookup(ctx, userID, constants.SESSION_FIELD_SEARCH_PARAMS, &ref); err != nil {
		return nil, err
	} else if ok {
		out.SearchID = ref.SearchID
		out.SearchParams = &ref.Params
	}

	var trip inventory.TripInstance
	if ok, err := s.lookup(ctx, userID, constants.SESSION_FIELD_SELECTED_BUS, &trip); err != nil {
		return nil, err
	} else if ok {
		out.SelectedBus = &trip
	}

	if _, err := s.lookup(ctx, userID, constants.SESSION_FIELD_SELECTED_SEATS, &out.SelectedSeats); err != nil {
		return nil, err
	}

	var counts inventory.PassengerCounts
	if ok, err := s.lookup(ctx, userID, constants.SESSION_FIELD_PASSENGER_COUNTS, &counts); err != nil {
		return nil, err
	} else if ok {
		out.PassengerCounts = &counts
	}

	var draft Draft
	if ok, err := s.lookup(ctx, userID, constants.SESSION_FIELD_BOOKING_DETAILS, &draft); err != nil {
		return nil, err
	} else if ok {
		out.BookingDetails = &draft
	}
	return out, nil
}

func (s *service) draft(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	var draft Draft
	if err := s.get(ctx, userID, constants.SESSION_FIELD_BOOKING_DETAILS, &draft, ErrNoDraft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *service) key(userID uuid.UUID, field string) string {
	return constants.BuildUserSessionKey(userID.String(), field)
}

func (s *service) put(ctx context.Context, userID uuid.UUID, field string, value interface{}) error {
	if err := s.session.Set(ctx, s.key(userID, field), value, s.cfg.SessionTTL); err != nil {
		return fmt.Errorf("failed to store %s: %w", field, err)
	}
	return nil
}

// get maps a missing key to missing.
func (s *service) get(ctx context.Context, userID uuid.UUID, field string, dest interface{}, missing error) error {
	ok, err := s.lookup(ctx, userID, field, dest)
	if err != nil {
		return err
	}
	if !ok {
		return missing
	}
	return nil
}

func (s *service) lookup(ctx context.Context, userID uuid.UUID, field string, dest interface{}) (bool, error) {
	err := s.session.Get(ctx, s.key(userID, field), dest)
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", field, err)
	}
	return true, nil
}

func (s *service) clear(ctx context.Context, userID uuid.UUID) error {
	keys := []string{
		s.key(userID, constants.SESSION_FIELD_SEARCH_PARAMS),
		s.key(userID, constants.SESSION_FIELD_SELECTED_BUS),
		s.key(userID, constants.SESSION_FIELD_SELECTED_SEATS),
		s.key(userID, constants.SESSION_FIELD_PASSENGER_COUNTS),
		s.key(userID, constants.SESSION_FIELD_BOOKING_DETAILS),
	}
	if err := s.session.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func roundPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
