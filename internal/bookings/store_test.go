package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"busgo/internal/inventory"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func TestGormStoreLoad(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)
	userID := uuid.New()
	journey := time.Date(2025, 3, 12, 6, 30, 0, 0, time.UTC)

	bus, _ := json.Marshal(inventory.TripInstance{ID: "101-0-0", Name: "SETC Route 101", Price: 500})
	passengers, _ := json.Marshal([]inventory.Passenger{{Name: "Asha", Age: 30, Gender: "Female", SeatNumber: "1", SeatID: 1}})

	rows := sqlmock.NewRows([]string{
		"booking_id", "user_id", "bus", "passengers", "count_adults", "count_children",
		"total_price", "journey_timestamp", "status", "is_rated", "created_at", "updated_at",
	}).AddRow(
		"BG1", userID.String(), bus, passengers, 1, 0,
		500.0, journey, "Confirmed", false, journey.Add(-72*time.Hour), journey.Add(-72*time.Hour),
	)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE user_id = $1 ORDER BY created_at ASC,booking_id ASC`)).
		WithArgs(userID.String()).
		WillReturnRows(rows)

	got, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(got))
	}
	b := got[0]
	if b.Bus.Name != "SETC Route 101" || len(b.Passengers) != 1 || b.Passengers[0].Name != "Asha" {
		t.Fatalf("json columns not decoded: %+v", b)
	}
	if b.Status != StatusConfirmed || !b.JourneyTimestamp.Equal(journey) {
		t.Fatalf("unexpected booking %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStoreLoadError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnError(errors.New("connection reset"))

	if _, err := store.Load(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGormStoreSaveAllRejectsForeignBookings(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)

	owner := uuid.New()
	err := store.SaveAll(context.Background(), owner, []Booking{{BookingID: "BG1", UserID: uuid.New()}})
	if err == nil {
		t.Fatalf("expected ownership error")
	}
	if err := store.SaveAll(context.Background(), owner, nil); err != nil {
		t.Fatalf("empty save should be a no-op: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL expected: %v", err)
	}
}

func TestGormStoreSaveAllUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)
	userID := uuid.New()

	in := []Booking{
		{BookingID: "BG1", UserID: userID, Status: StatusConfirmed},
		{BookingID: "BG2", UserID: userID, Status: StatusCancelled},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "bookings" .* ON CONFLICT \("booking_id"\) DO UPDATE SET .* WHERE .*"user_id" = `).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := store.SaveAll(context.Background(), userID, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStoreSaveAllDetectsForeignID(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)
	userID := uuid.New()

	in := []Booking{
		{BookingID: "BG1", UserID: userID, Status: StatusConfirmed},
		{BookingID: "BG2", UserID: userID, Status: StatusConfirmed},
	}

	// BG2 is held by another user so the guarded upsert skips it
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := store.SaveAll(context.Background(), userID, in)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStoreSaveAllError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormStore(db)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.SaveAll(context.Background(), userID, []Booking{{BookingID: "BG1", UserID: userID}})
	if err == nil || errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected a plain save error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	in := []Booking{{BookingID: "BG1", UserID: userID, Status: StatusConfirmed}}
	if err := store.SaveAll(ctx, userID, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].Status = StatusCancelled

	out, _ := store.Load(ctx, userID)
	if out[0].Status != StatusConfirmed {
		t.Fatalf("store shares the caller's slice")
	}
}
