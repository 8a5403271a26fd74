package bookings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore holds each user's booking collection. Callers load the whole
// collection, change it and write all of it back. Two writers working from
// the same snapshot race and the last SaveAll wins.
type BookingStore interface {
	// Load returns the user's bookings in creation order.
	Load(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	// SaveAll writes back the full collection.
	SaveAll(ctx context.Context, userID uuid.UUID, bookings []Booking) error
}

// RatingRepository stores journey feedback.
type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByBooking(ctx context.Context, bookingID string) (*Rating, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a BookingStore backed by PostgreSQL
func NewGormStore(db *gorm.DB) BookingStore {
	return &gormStore{db: db}
}

func (s *gormStore) Load(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("booking_id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return bookings, nil
}

func (s *gormStore) SaveAll(ctx context.Context, userID uuid.UUID, bookings []Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	for i := range bookings {
		if bookings[i].UserID != userID {
			return fmt.Errorf("booking %s does not belong to user %s", bookings[i].BookingID, userID)
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			UpdateAll: true,
			// never take over a row that belongs to someone else
			Where: clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Table: "bookings", Name: "user_id"}, Value: userID}}},
		}).Create(&bookings)
		if res.Error != nil {
			return fmt.Errorf("failed to save bookings: %w", res.Error)
		}
		// a skipped row means the id is already held by another user
		if res.RowsAffected < int64(len(bookings)) {
			return fmt.Errorf("failed to save bookings: %d of %d rows written: %w", res.RowsAffected, len(bookings), ErrDuplicateID)
		}
		return nil
	})
}

// MemoryStore keeps collections in process. Used by tests and when
// STORAGE_DRIVER=memory.
type MemoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID][]Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID][]Booking)}
}

func (s *MemoryStore) Load(_ context.Context, userID uuid.UUID) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users[userID]), nil
}

func (s *MemoryStore) SaveAll(_ context.Context, userID uuid.UUID, bookings []Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = slices.Clone(bookings)
	return nil
}

type gormRatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &gormRatingRepository{db: db}
}

func (r *gormRatingRepository) Create(ctx context.Context, rating *Rating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

func (r *gormRatingRepository) GetByBooking(ctx context.Context, bookingID string) (*Rating, error) {
	var rating Rating
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

// MemoryRatingRepository is the in-process RatingRepository.
type MemoryRatingRepository struct {
	mu      sync.Mutex
	ratings map[string]Rating
}

func NewMemoryRatingRepository() *MemoryRatingRepository {
	return &MemoryRatingRepository{ratings: make(map[string]Rating)}
}

func (r *MemoryRatingRepository) Create(_ context.Context, rating *Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ratings[rating.BookingID]; exists {
		return ErrAlreadyRated
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	r.ratings[rating.BookingID] = *rating
	return nil
}

func (r *MemoryRatingRepository) GetByBooking(_ context.Context, bookingID string) (*Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.ratings[bookingID]
	if !ok {
		return nil, nil
	}
	return &rating, nil
}
