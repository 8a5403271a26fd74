package cancellation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCancellationNotFound = errors.New("cancellation not found")

// Repository interface defines the contract for cancellation data operations
type Repository interface {
	CreateCancellation(ctx context.Context, cancellation *Cancellation) error
	GetCancellationByID(ctx context.Context, id uuid.UUID) (*Cancellation, error)
	GetCancellationsByUserID(ctx context.Context, userID uuid.UUID) ([]Cancellation, error)
	GetCancellationByBookingID(ctx context.Context, bookingID string) (*Cancellation, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cancellation repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateCancellation stores an audit record
func (r *repository) CreateCancellation(ctx context.Context, cancellation *Cancellation) error {
	if cancellation.ID == uuid.Nil {
		cancellation.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Create(cancellation).Error
	if err != nil {
		return fmt.Errorf("failed to create cancellation: %w", err)
	}
	return nil
}

// GetCancellationByID retrieves a cancellation by its ID
func (r *repository) GetCancellationByID(ctx context.Context, id uuid.UUID) (*Cancellation, error) {
	var cancellation Cancellation
	err := r.db.WithContext(ctx).First(&cancellation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return &cancellation, nil
}

// GetCancellationsByUserID retrieves cancellations for a specific user
func (r *repository) GetCancellationsByUserID(ctx context.Context, userID uuid.UUID) ([]Cancellation, error) {
	var cancellations []Cancellation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("processed_at DESC").
		Find(&cancellations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user cancellations: %w", err)
	}
	return cancellations, nil
}

// GetCancellationByBookingID retrieves a cancellation by booking ID
func (r *repository) GetCancellationByBookingID(ctx context.Context, bookingID string) (*Cancellation, error) {
	var cancellation Cancellation
	err := r.db.WithContext(ctx).First(&cancellation, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation by booking ID: %w", err)
	}
	return &cancellation, nil
}

// MemoryRepository is the in-process Repository used with STORAGE_DRIVER=memory.
type MemoryRepository struct {
	mu      sync.Mutex
	records []Cancellation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) CreateCancellation(_ context.Context, cancellation *Cancellation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.records {
		if c.BookingID == cancellation.BookingID {
			return fmt.Errorf("failed to create cancellation: duplicate booking %s", c.BookingID)
		}
	}
	if cancellation.ID == uuid.Nil {
		cancellation.ID = uuid.New()
	}
	r.records = append(r.records, *cancellation)
	return nil
}

func (r *MemoryRepository) GetCancellationByID(_ context.Context, id uuid.UUID) (*Cancellation, error) {
	return r.find(func(c Cancellation) bool { return c.ID == id })
}

func (r *MemoryRepository) GetCancellationByBookingID(_ context.Context, bookingID string) (*Cancellation, error) {
	return r.find(func(c Cancellation) bool { return c.BookingID == bookingID })
}

func (r *MemoryRepository) GetCancellationsByUserID(_ context.Context, userID uuid.UUID) ([]Cancellation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Cancellation
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) find(match func(Cancellation) bool) (*Cancellation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.records, match)
	if i < 0 {
		return nil, ErrCancellationNotFound
	}
	c := r.records[i]
	return &c, nil
}
